// Copyright © 2024 The ELPS authors

// Package fixtest runs analyzers and their fixes against small syntax
// trees in tests.
package fixtest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// FileName is the file name diagnostics are reported against.
const FileName = "test.cs"

// Format lays out n with the default formatter settings.
func Format(n *syntax.Node) *syntax.Node { return formatter.Format(n, nil) }

// Block returns the formatted block of stmts.
func Block(stmts ...*syntax.Node) *syntax.Node { return Format(syntax.BlockOf(stmts...)) }

// Table returns a semantic table holding the standard library.
func Table() *semantic.Table {
	tbl := semantic.NewTable()
	tbl.AddStandardLibrary()
	return tbl
}

// Case is one analyzer test.
type Case struct {
	Name string

	// Root is analyzed as given. Use Format or Block for laid out input.
	Root *syntax.Node

	// Model defaults to nil, which leaves semantic analyzers silent.
	Model *semantic.Table

	// Options override the analyzer's defaults.
	Options lint.Options

	// Want lists one message substring per expected diagnostic, in
	// position order. An empty Want expects no diagnostics.
	Want []string

	// Fixed is the text after every fix is applied. It is only checked
	// when set.
	Fixed string

	// Idempotent additionally checks that linting the fixed tree reports
	// nothing that carries a fix.
	Idempotent bool
}

// Runner tests one analyzer.
type Runner struct {
	Analyzer *lint.Analyzer
}

// Lint runs the analyzer on root, enabled even when it is off by default.
func (r *Runner) Lint(t testing.TB, root *syntax.Node, model *semantic.Table, opts lint.Options) []lint.Diagnostic {
	t.Helper()
	cfg := &lint.Config{Enable: []string{r.Analyzer.Name}}
	if opts != nil {
		cfg.Options = map[string]lint.Options{r.Analyzer.Name: opts}
	}
	f := lint.NewFile(FileName, root, nil, semantic.WellKnown{})
	if model != nil {
		f = lint.NewFile(FileName, root, model, model.WellKnown())
	}
	l := &lint.Linter{Analyzers: []*lint.Analyzer{r.Analyzer}, Config: cfg, Logger: Slog(t)}
	diags, err := l.Run(context.Background(), f)
	require.NoError(t, err)
	return diags
}

// Run runs each case as a subtest.
func (r *Runner) Run(t *testing.T, cases []Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r.check(t, c)
		})
	}
}

func (r *Runner) check(t *testing.T, c Case) {
	t.Helper()
	diags := r.Lint(t, c.Root, c.Model, c.Options)
	if !AssertMessages(t, diags, c.Want...) || c.Fixed == "" {
		return
	}
	fixed := Fix(t, c.Root, diags)
	if !assert.Equal(t, c.Fixed, fixed.FullText()) || !c.Idempotent {
		return
	}
	for _, d := range r.Lint(t, fixed, c.Model, c.Options) {
		assert.False(t, d.HasFix(), "fix is not idempotent: %s", d)
	}
}

// Fix applies every fix of diags to root and returns the fixed root.
func Fix(t testing.TB, root *syntax.Node, diags []lint.Diagnostic) *syntax.Node {
	t.Helper()
	res, err := (&lint.Fixer{Logger: Slog(t)}).Fix(context.Background(), root, diags)
	require.NoError(t, err)
	return res.Root
}

// AssertMessages checks that there is one diagnostic per entry of want and
// that each message contains its entry.
func AssertMessages(t testing.TB, diags []lint.Diagnostic, want ...string) bool {
	t.Helper()
	if !assert.Len(t, diags, len(want), "diagnostics:\n%s", describe(diags)) {
		return false
	}
	ok := true
	for i, w := range want {
		ok = assert.Contains(t, diags[i].Message, w) && ok
	}
	return ok
}

// AssertHasDiagnostic checks that some diagnostic message contains substr.
func AssertHasDiagnostic(t testing.TB, diags []lint.Diagnostic, substr string) bool {
	t.Helper()
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return assert.Fail(t, "missing diagnostic", "no diagnostic contains %q:\n%s", substr, describe(diags))
}

// AssertOnLine checks that some diagnostic on line contains substr.
func AssertOnLine(t testing.TB, diags []lint.Diagnostic, line int, substr string) bool {
	t.Helper()
	for _, d := range diags {
		if d.Pos.Line == line && strings.Contains(d.Message, substr) {
			return true
		}
	}
	return assert.Fail(t, "missing diagnostic", "no diagnostic on line %d contains %q:\n%s", line, substr, describe(diags))
}

// AssertSpanText checks that the span of d covers want in root's text.
func AssertSpanText(t testing.TB, root *syntax.Node, d lint.Diagnostic, want string) bool {
	t.Helper()
	src := root.Root().FullText()
	if !assert.LessOrEqual(t, d.Span.End, len(src)) {
		return false
	}
	return assert.Equal(t, want, src[d.Span.Start:d.Span.End])
}

func describe(diags []lint.Diagnostic) string {
	if len(diags) == 0 {
		return "  (none)"
	}
	var b strings.Builder
	for _, d := range diags {
		b.WriteString("  " + d.String() + "\n")
	}
	return b.String()
}
