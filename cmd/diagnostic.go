// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"

	"github.com/luthersystems/fixkit/diagnostic"
	lintpkg "github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/text"
)

// lintDiagToDiagnostic converts a lint.Diagnostic to a diagnostic.Diagnostic.
// Spans are cut at the end of their first line.
func lintDiagToDiagnostic(ld lintpkg.Diagnostic, lines *text.Lines) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: severityOf(ld.Severity),
		Code:     ld.Analyzer,
		Message:  ld.Message,
	}
	if lines != nil && lines.Len() > 0 {
		d.Spans = append(d.Spans, spanOf(ld.Pos.File, lines, ld.Span, false))
		for _, s := range ld.FadeOut {
			d.Spans = append(d.Spans, spanOf(ld.Pos.File, lines, s, true))
		}
	} else if ld.Pos.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.Pos.File,
			Line: ld.Pos.Line,
			Col:  ld.Pos.Col,
		})
	}
	d.Notes = append(d.Notes, ld.Notes...)
	d.Notes = append(d.Notes, "to suppress: add \"// nolint:"+ld.Analyzer+"\" as a comment on this line")
	if ld.Fix != nil {
		d.Help = ld.Fix.Title
	}
	return d
}

func spanOf(file string, lines *text.Lines, s text.Span, fade bool) diagnostic.Span {
	line, col := lines.Position(s.Start)
	l := lines.LineAt(s.Start)
	end := s.End
	if end > l.Span.End {
		end = l.Span.End
	}
	endCol := end - l.Span.Start
	if endCol < col {
		endCol = col
	}
	return diagnostic.Span{File: file, Line: line, Col: col, EndCol: endCol, FadeOut: fade}
}

func severityOf(s lintpkg.Severity) diagnostic.Severity {
	switch s {
	case lintpkg.SeverityError:
		return diagnostic.SeverityError
	case lintpkg.SeverityInfo, lintpkg.SeverityHidden:
		return diagnostic.SeverityInfo
	}
	return diagnostic.SeverityWarning
}

// renderLintDiagnostics renders lint diagnostics with diagnostic formatting
// to w. Lines maps file names to their line tables.
func renderLintDiagnostics(w io.Writer, r *diagnostic.Renderer, diags []lintpkg.Diagnostic, lines map[string]*text.Lines) error {
	ds := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, ld := range diags {
		ds = append(ds, lintDiagToDiagnostic(ld, lines[ld.Pos.File]))
	}
	return r.RenderAll(w, ds)
}
