// Copyright © 2024 The ELPS authors

// Package lint runs the rule catalog over syntax trees and applies the code
// fixes its diagnostics carry.
//
// The linter is modeled after go vet: each rule is an independent Analyzer
// that declares the node kinds it inspects and reports diagnostics through
// a Pass. The framework dispatches nodes by kind, runs analyzers
// concurrently, suppresses findings on lines marked with a nolint comment
// and sorts the result by position.
//
// Embedders can define custom analyzers alongside the built-in set.
package lint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

const tracerName = "github.com/luthersystems/fixkit/lint"

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityHidden
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hidden":
		return SeverityHidden, nil
	}
	return severityUnset, fmt.Errorf("unknown severity: %q", s)
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "add-braces").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Kinds lists the node kinds passed to Visit.
	Kinds []syntax.Kind

	// Visit inspects one node of a kind listed in Kinds.
	Visit func(pass *Pass, n *syntax.Node)

	// Run, when set, is called once per file after the nodes have been
	// visited. Checks that are not tied to node kinds use it.
	Run func(pass *Pass) error

	// Options holds the default option values of the analyzer.
	Options Options

	// Disabled analyzers only run when a Config enables them.
	Disabled bool
}

// DefaultSeverity returns the severity of the analyzer's diagnostics when
// no configuration overrides it.
func (a *Analyzer) DefaultSeverity() Severity {
	if a.Severity == severityUnset {
		return SeverityWarning
	}
	return a.Severity
}

// File is one syntax tree to analyze.
type File struct {
	// Name is used in diagnostic positions.
	Name string

	Root *syntax.Node

	// Model answers semantic questions about Root. It may be nil, in which
	// case semantic analyzers report nothing.
	Model semantic.Model

	WellKnown semantic.WellKnown

	lines *text.Lines
}

// NewFile returns a File for root.
func NewFile(name string, root *syntax.Node, model semantic.Model, wk semantic.WellKnown) *File {
	return &File{Name: name, Root: root.Root(), Model: model, WellKnown: wk}
}

// Lines returns the line table of the file's text.
func (f *File) Lines() *text.Lines {
	if f.lines == nil {
		f.lines = text.NewLines(f.Root.FullText())
	}
	return f.lines
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	File *File

	// Options holds the analyzer's defaults merged with the configured
	// values.
	Options Options

	// Severity is the severity of reported diagnostics.
	Severity Severity

	ctx context.Context

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Context returns the context of the run.
func (p *Pass) Context() context.Context { return p.ctx }

// Model returns the semantic model of the file, or nil.
func (p *Pass) Model() semantic.Model { return p.File.Model }

// WellKnown returns the well-known types of the file's compilation.
func (p *Pass) WellKnown() semantic.WellKnown { return p.File.WellKnown }

// Report records a diagnostic finding. The position is derived from the
// span when it is not set.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Severity
	}
	if d.Pos.Line == 0 {
		line, col := p.File.Lines().Position(d.Span.Start)
		d.Pos = Position{File: p.File.Name, Line: line, Col: col}
	}
	if d.Pos.File == "" {
		d.Pos.File = p.File.Name
	}
	p.diagnostics = append(p.diagnostics, d)
}

// ReportSpan reports a diagnostic at span.
func (p *Pass) ReportSpan(span text.Span, msg string, fix *Fix) {
	p.Report(Diagnostic{Span: span, Message: msg, Fix: fix})
}

// ReportNode reports a diagnostic at the span of n.
func (p *Pass) ReportNode(n *syntax.Node, msg string, fix *Fix) {
	p.ReportSpan(n.Span(), msg, fix)
}

// ReportFadeOut reports a diagnostic at n whose fadeOut nodes become
// redundant once the fix is applied.
func (p *Pass) ReportFadeOut(n *syntax.Node, fadeOut []*syntax.Node, msg string, fix *Fix) {
	d := Diagnostic{Span: n.Span(), Message: msg, Fix: fix}
	for _, f := range fadeOut {
		if f != nil {
			d.FadeOut = append(d.FadeOut, f.Span())
		}
	}
	p.Report(d)
}

// ReportWithProperties reports a diagnostic at n carrying properties for
// the host.
func (p *Pass) ReportWithProperties(n *syntax.Node, msg string, props map[string]string, fix *Fix) {
	p.Report(Diagnostic{Span: n.Span(), Message: msg, Properties: props, Fix: fix})
}

// ReportWithNotes records a diagnostic with additional hint text.
func (p *Pass) ReportWithNotes(d Diagnostic, notes ...string) {
	d.Notes = append(d.Notes, notes...)
	p.Report(d)
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Pos is the source location of the problem.
	Pos Position `json:"pos"`

	// Span is the reported region of the tree text.
	Span text.Span `json:"span"`

	// FadeOut lists regions that the fix makes redundant.
	FadeOut []text.Span `json:"fadeOut,omitempty"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty"`

	// Properties carry rule specific data, such as the undefined flag
	// value of a composite enum member.
	Properties map[string]string `json:"properties,omitempty"`

	// Fix rewrites the tree to address the problem, or is nil.
	Fix *Fix `json:"-"`
}

// HasFix reports whether the diagnostic offers a code fix.
func (d Diagnostic) HasFix() bool { return d.Fix != nil }

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style: file:line: message (analyzer)
// with optional note lines appended.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Analyzer)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over syntax trees.
type Linter struct {
	Analyzers []*Analyzer

	// Config selects analyzers and overrides severities and options. A
	// nil Config runs every analyzer that is not disabled by default.
	Config *Config

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	// Concurrency bounds the number of analyzers running at once. Zero or
	// less means no bound.
	Concurrency int
}

func (l *Linter) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(discardHandler{})
	}
	return l.Logger
}

// Run analyzes f and returns its diagnostics sorted by position. When ctx
// is cancelled Run returns the context's error and no diagnostics.
func (l *Linter) Run(ctx context.Context, f *File) ([]Diagnostic, error) {
	analyzers := l.Config.Enabled(l.Analyzers)
	index := kindIndex(f.Root, analyzers)
	f.Lines()

	log := l.logger().With("file", f.Name)
	tracer := otel.GetTracerProvider().Tracer(tracerName)
	results := make([][]Diagnostic, len(analyzers))

	g, gctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, a := range analyzers {
		i, a := i, a
		g.Go(func() error {
			pass := &Pass{
				Analyzer: a,
				File:     f,
				Options:  l.Config.options(a),
				Severity: l.Config.severity(a),
				ctx:      gctx,
			}
			sctx, span := tracer.Start(gctx, a.Name, trace.WithAttributes(
				semconv.CodeFunction(a.Name),
				semconv.CodeNamespace(tracerName),
				semconv.CodeFilepath(f.Name),
			))
			defer span.End()
			pass.ctx = sctx

			log.Debug("analyzer start", "analyzer", a.Name)
			err := runAnalyzer(pass, index)
			if errors.Is(err, ErrAnalyzerPanic) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				log.Warn("analyzer skipped", "analyzer", a.Name, "error", err)
				return nil
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("%s: analyzer %s: %w", f.Name, a.Name, err)
			}
			span.SetAttributes(attribute.Int("fixkit.diagnostics", len(pass.diagnostics)))
			log.Debug("analyzer finish", "analyzer", a.Name, "diagnostics", len(pass.diagnostics))
			results[i] = pass.diagnostics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	all = filterSuppressed(all, f)
	SortDiagnostics(all)
	return all, nil
}

// ErrAnalyzerPanic is logged for an analyzer that panicked. Its
// diagnostics for the file are dropped and the other analyzers still run.
var ErrAnalyzerPanic = errors.New("analyzer panicked")

func runAnalyzer(pass *Pass, index map[syntax.Kind][]*syntax.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAnalyzerPanic, r)
		}
	}()
	a := pass.Analyzer
	if a.Visit != nil {
		for _, k := range a.Kinds {
			for _, n := range index[k] {
				if err := pass.ctx.Err(); err != nil {
					return err
				}
				a.Visit(pass, n)
			}
		}
	}
	if a.Run != nil {
		if err := pass.ctx.Err(); err != nil {
			return err
		}
		return a.Run(pass)
	}
	return nil
}

// kindIndex collects in one walk the nodes of root with a kind that one of
// analyzers visits.
func kindIndex(root *syntax.Node, analyzers []*Analyzer) map[syntax.Kind][]*syntax.Node {
	wanted := make(map[syntax.Kind]bool)
	for _, a := range analyzers {
		for _, k := range a.Kinds {
			wanted[k] = true
		}
	}
	index := make(map[syntax.Kind][]*syntax.Node, len(wanted))
	if len(wanted) == 0 {
		return index
	}
	root.Walk(func(n *syntax.Node) bool {
		if wanted[n.Kind()] {
			index[n.Kind()] = append(index[n.Kind()], n)
		}
		return true
	})
	return index
}

// SortDiagnostics orders diagnostics by file, line, column, analyzer and
// message.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Pos.File != b.Pos.File {
			return a.Pos.File < b.Pos.File
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Col != b.Pos.Col {
			return a.Pos.Col < b.Pos.Col
		}
		if a.Analyzer != b.Analyzer {
			return a.Analyzer < b.Analyzer
		}
		return a.Message < b.Message
	})
}

// filterSuppressed removes diagnostics on lines with // nolint comments.
func filterSuppressed(diags []Diagnostic, f *File) []Diagnostic {
	// line -> "" (all) or "analyzer1,analyzer2"
	nolintLines := make(map[int]string)
	f.Root.EachTrivia(func(t syntax.Trivia, span text.Span) {
		if t.Kind != syntax.SingleLineCommentTrivia {
			return
		}
		if directive, ok := parseNolint(t.Text); ok {
			line, _ := f.Lines().Position(span.Start)
			nolintLines[line] = directive
		}
	})
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		// Empty directive = suppress all
		if directive == "" {
			continue
		}
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			if strings.TrimSpace(name) == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func parseNolint(comment string) (string, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(s, "nolint") {
		return "", false
	}
	rest := strings.TrimPrefix(s, "nolint")
	if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
		return "", true
	}
	if rest[0] != ':' {
		return "", false
	}
	ids, _, _ := strings.Cut(rest[1:], " ")
	return ids, true
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
