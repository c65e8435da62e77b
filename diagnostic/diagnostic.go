// Copyright © 2024 The ELPS authors

// Package diagnostic renders findings as annotated source snippets. It does
// not depend on the lint package so that any command can render messages
// of its own.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column, in bytes
	EndCol int    // 1-based last column, inclusive (0 = auto-detect from source)
	Label  string // text shown after the underline

	// FadeOut marks text that the fix makes redundant. It is underlined
	// with ~ in a dim color instead of ^.
	FadeOut bool
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // rule name shown in brackets after the severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
	Help     string   // "= help:" line, e.g. the title of the fix
}
