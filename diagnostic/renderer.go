// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// tabWidth is the number of columns a tab occupies in rendered source.
const tabWidth = 4

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, g := range groupSpans(d.Spans) {
		r.writeGroup(ew, g, d.Severity, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	if d.Help != "" {
		ew.printf("   %s=%s %shelp%s: %s\n", p.boldCyan, p.reset, p.boldGreen, p.reset, d.Help)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes. This avoids checking every fmt.Fprintf return value.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	ew.printf("%s%s%s:%s %s%s%s\n",
		p.severityColor(d.Severity), sev, p.reset,
		p.reset,
		p.bold, d.Message, p.reset)
}

// spanGroup holds the spans of one file. Lines keeps the order in which
// their lines first appear.
type spanGroup struct {
	file  string
	first Span
	lines []int
	spans map[int][]Span
}

func groupSpans(spans []Span) []*spanGroup {
	var groups []*spanGroup
	byFile := make(map[string]*spanGroup)
	for _, s := range spans {
		g := byFile[s.File]
		if g == nil {
			g = &spanGroup{file: s.File, first: s, spans: make(map[int][]Span)}
			byFile[s.File] = g
			groups = append(groups, g)
		}
		if _, ok := g.spans[s.Line]; !ok {
			g.lines = append(g.lines, s.Line)
		}
		g.spans[s.Line] = append(g.spans[s.Line], s)
	}
	return groups
}

func (r *Renderer) writeGroup(ew *errWriter, g *spanGroup, sev Severity, p palette) {
	// Location line: "  --> file:line:col"
	loc := g.file
	if g.first.Line > 0 {
		loc = fmt.Sprintf("%s:%d", g.file, g.first.Line)
		if g.first.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", g.file, g.first.Line, g.first.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	lines := r.readSource(g.file)
	width := 0
	for _, l := range g.lines {
		if n := len(strconv.Itoa(l)); n > width {
			width = n
		}
	}
	pad := strings.Repeat(" ", width)
	shown := false
	for _, l := range g.lines {
		if l <= 0 || l > len(lines) {
			continue
		}
		if !shown {
			ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
			shown = true
		}
		source := lines[l-1]
		ew.printf(" %s%*d |%s  %s\n", p.boldBlue, width, l, p.reset, expandTabs(source))
		ew.printf(" %s%s |%s  %s\n", p.boldBlue, pad, p.reset, markers(source, g.spans[l], sev, p))
	}
	// Trailing gutter, or the only one when no source is available.
	if shown {
		ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	} else {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
	}
}

// markers returns the underline row of source for spans. Primary spans
// are drawn last so that they win where a fade-out span overlaps them.
func markers(source string, spans []Span, sev Severity, p palette) string {
	type mark struct {
		start, end int // display columns, end exclusive
		fade       bool
		label      string
	}
	var marks []mark
	end := 0
	for _, s := range spans {
		col, last := s.Col, s.EndCol
		if col <= 0 {
			col = 1
		}
		if last <= 0 {
			last = detectEndCol(source, col)
		}
		if last < col {
			last = col
		}
		lo := clamp(col-1, len(source))
		hi := clamp(last, len(source))
		m := mark{start: displayWidth(source[:lo]), fade: s.FadeOut, label: s.Label}
		m.end = m.start + displayWidth(source[lo:hi])
		if m.end == m.start {
			m.end++
		}
		if m.end > end {
			end = m.end
		}
		marks = append(marks, m)
	}
	row := make([]byte, end)
	style := make([]int, end) // 0 blank, 1 fade, 2 primary
	for i := range row {
		row[i] = ' '
	}
	for pass := 1; pass <= 2; pass++ {
		for _, m := range marks {
			if m.fade != (pass == 1) {
				continue
			}
			ch := byte('^')
			if m.fade {
				ch = '~'
			}
			for i := m.start; i < m.end; i++ {
				row[i] = ch
				style[i] = pass
			}
		}
	}

	var b strings.Builder
	colors := [...]string{"", p.dim, p.severityColor(sev)}
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && style[j] == style[i] {
			j++
		}
		if style[i] == 0 || colors[style[i]] == "" {
			b.Write(row[i:j])
		} else {
			b.WriteString(colors[style[i]])
			b.Write(row[i:j])
			b.WriteString(p.reset)
		}
		i = j
	}
	var labels []string
	for _, m := range marks {
		if m.label != "" {
			labels = append(labels, m.label)
		}
	}
	if len(labels) > 0 {
		b.WriteString(" " + p.severityColor(sev) + strings.Join(labels, "; ") + p.reset)
	}
	return b.String()
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// readSource returns the lines of file, without line breaks.
func (r *Renderer) readSource(file string) []string {
	if file == "" {
		return nil
	}
	reader := r.SourceReader
	if reader == nil {
		reader = os.ReadFile
	}
	data, err := reader(file)
	if err != nil {
		return nil
	}
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(s, "\n")
}

// detectEndCol scans from col to find the end of the current word.
func detectEndCol(source string, col int) int {
	if col <= 0 || col > len(source) {
		return col
	}
	end := col - 1 // 0-based
	for end < len(source) {
		ch, size := utf8.DecodeRuneInString(source[end:])
		if ch == ' ' || ch == '\t' || ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == ';' || ch == ',' || ch == '.' {
			break
		}
		end += size
	}
	if end == col-1 {
		return col // single character
	}
	return end // convert back to 1-based end column
}

// displayWidth returns the number of terminal columns s occupies, with
// tabs expanded to tabWidth spaces.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// fileFromWriter attempts to extract an *os.File from a writer for terminal
// detection. Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
