// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"os"

	"golang.org/x/term"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps "auto", "always" and "never" to a ColorMode. Other
// values select ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// palette holds the ANSI escape sequences for diagnostic output.
type palette struct {
	bold       string
	dim        string
	boldRed    string
	boldYellow string
	boldBlue   string
	boldCyan   string
	boldGreen  string
	reset      string
}

var ansiPalette = palette{
	bold:       "\033[1m",
	dim:        "\033[2m",
	boldRed:    "\033[1;31m",
	boldYellow: "\033[1;33m",
	boldBlue:   "\033[1;34m",
	boldCyan:   "\033[1;36m",
	boldGreen:  "\033[1;32m",
	reset:      "\033[0m",
}

var noPalette = palette{}

// severityColor returns the color of the header and primary underline of
// a diagnostic with severity s.
func (p palette) severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return p.boldRed
	case SeverityWarning:
		return p.boldYellow
	default:
		return p.boldCyan
	}
}

// choosePalette selects the appropriate color palette based on the mode
// and the output file descriptor.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return noPalette
		}
		if !isTerminal(w) {
			return noPalette
		}
		return ansiPalette
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
