// Copyright © 2024 The ELPS authors

package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// ErrFixPanic is recorded for a fix that panicked. The fix is skipped.
var ErrFixPanic = errors.New("fix panicked")

// Fix is a code fix attached to a diagnostic.
type Fix struct {
	// Title describes the change, e.g. "Add braces".
	Title string

	// Span covers every character of the tree text the fix may change,
	// trivia included. Fixes with overlapping spans are never applied in
	// the same pass.
	Span text.Span

	// Apply rewrites the tree whose root is given and returns the new
	// root. The tree may differ from the analyzed one after the span of
	// the fix.
	Apply func(root *syntax.Node) (*syntax.Node, error)
}

// nodeFix returns a fix that locates n in the tree it is applied to and
// calls build with the located node.
func nodeFix(title string, region text.Span, n *syntax.Node, build func(cur *syntax.Node) (*syntax.Node, error)) *Fix {
	return &Fix{
		Title: title,
		Span:  region,
		Apply: func(root *syntax.Node) (*syntax.Node, error) {
			cur := rewrite.Find(root, n)
			if cur == nil {
				return nil, rewrite.ErrNoMatch
			}
			return build(cur)
		},
	}
}

// region returns the full span from the first to the last of nodes.
func region(nodes ...*syntax.Node) text.Span {
	var out text.Span
	for i, n := range nodes {
		if i == 0 {
			out = n.FullSpan()
			continue
		}
		out = out.Cover(n.FullSpan())
	}
	return out
}

// Fixer applies the fixes of one file's diagnostics.
type Fixer struct {
	// Format configures the layout of rewritten nodes. Nil uses the
	// formatter defaults.
	Format *formatter.Config

	// Logger receives debug output about skipped fixes. Nil discards it.
	Logger *slog.Logger
}

// FixResult describes the outcome of Fixer.Fix.
type FixResult struct {
	// Root is the root of the fixed tree.
	Root *syntax.Node

	// Applied and Skipped partition the diagnostics that carry a fix.
	Applied []Diagnostic
	Skipped []Diagnostic
}

// Fix applies the fixes of diags to root in a single pass, last region
// first. A fix whose region overlaps one already applied is skipped, as is
// one that fails; running the linter again picks those up. Rewritten nodes
// are laid out by the formatter at the end.
func (x *Fixer) Fix(ctx context.Context, root *syntax.Node, diags []Diagnostic) (*FixResult, error) {
	log := x.Logger
	if log == nil {
		log = slog.New(discardHandler{})
	}
	tracer := otel.GetTracerProvider().Tracer(tracerName)

	var pending []Diagnostic
	for _, d := range diags {
		if d.Fix != nil {
			pending = append(pending, d)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].Fix.Span, pending[j].Fix.Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.End > b.End
	})

	res := &FixResult{Root: root.Root()}
	applied := make([]text.Span, 0, len(pending))
	for _, d := range pending {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if overlapsAny(d.Fix.Span, applied) {
			log.Debug("fix skipped", "analyzer", d.Analyzer, "pos", d.Pos.String(), "reason", "overlap")
			res.Skipped = append(res.Skipped, d)
			continue
		}
		next, err := x.apply(ctx, tracer, res.Root, d)
		if err != nil {
			log.Debug("fix skipped", "analyzer", d.Analyzer, "pos", d.Pos.String(), "error", err)
			res.Skipped = append(res.Skipped, d)
			continue
		}
		res.Root = next.Root()
		applied = append(applied, d.Fix.Span)
		res.Applied = append(res.Applied, d)
	}
	res.Root = formatter.FormatAnnotated(res.Root, x.Format)
	return res, nil
}

func (x *Fixer) apply(ctx context.Context, tracer trace.Tracer, root *syntax.Node, d Diagnostic) (next *syntax.Node, err error) {
	_, span := tracer.Start(ctx, d.Fix.Title, trace.WithAttributes(
		semconv.CodeFunction(d.Analyzer),
		semconv.CodeFilepath(d.Pos.File),
		semconv.CodeLineNumber(d.Pos.Line),
	))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, fmt.Errorf("%w: %v", ErrFixPanic, r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	next, err = d.Fix.Apply(root)
	if err == nil && next == nil {
		err = errors.New("fix returned no tree")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("fixkit.applied", true))
	return next, nil
}

// overlapsAny reports whether s shares a character with one of spans.
func overlapsAny(s text.Span, spans []text.Span) bool {
	for _, o := range spans {
		if s.OverlapsWith(o) {
			return true
		}
	}
	return false
}
