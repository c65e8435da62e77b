// Copyright © 2024 The ELPS authors

// Package refactor implements refactorings scoped to a user selection.
//
// Tree refactorings select sibling statements and return a rewritten tree.
// Line refactorings select whole source lines and return text edits that
// insert preprocessor directives around them.
package refactor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

const tracerName = "github.com/luthersystems/fixkit/refactor"

// ErrNotApplicable is returned when the selection does not have the shape a
// refactoring needs.
var ErrNotApplicable = errors.New("refactor: not applicable to the selection")

// Request is the input of a refactoring.
type Request struct {
	// Root is the root of the tree being edited.
	Root *syntax.Node

	// Span is the selection. An empty span is a caret.
	Span text.Span

	// Name is the region name for wrap-in-region and the condition for
	// wrap-in-condition.
	Name string

	// Format lays out rewritten nodes. Nil uses the formatter defaults.
	Format *formatter.Config
}

// Result is the outcome of a refactoring. Exactly one of Root and Edits is
// set.
type Result struct {
	Root   *syntax.Node
	Edits  []text.Edit
	source string
}

// Text returns the source text after the refactoring.
func (r *Result) Text() (string, error) {
	if r.Root != nil {
		return r.Root.FullText(), nil
	}
	return text.ApplyEdits(r.source, r.Edits)
}

// Refactoring is a named change offered for a selection.
type Refactoring struct {
	Name  string
	Title string
	Doc   string

	apply func(req *Request) (*Result, error)
}

// Apply runs the refactoring. Errors wrap ErrNotApplicable, a selection
// error or rewrite.ErrDirective.
func (r *Refactoring) Apply(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, r.Title)
	span.SetAttributes(
		semconv.CodeFunction(r.Name),
		attribute.Int("fixkit.span.start", req.Span.Start),
		attribute.Int("fixkit.span.end", req.Span.End),
	)
	defer span.End()
	res, err := r.apply(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: %w", r.Name, err)
	}
	if res.Root != nil {
		res.Root = formatter.FormatAnnotated(res.Root, req.Format)
	}
	return res, nil
}

// All lists the refactorings in name order.
var All = []*Refactoring{
	WrapInCondition,
	WrapInElseClause,
	WrapInRegion,
	WrapInTryCatch,
}

// Lookup returns the refactoring called name, or nil.
func Lookup(name string) *Refactoring {
	i := sort.Search(len(All), func(i int) bool { return All[i].Name >= name })
	if i < len(All) && All[i].Name == name {
		return All[i]
	}
	return nil
}

// Available returns the refactorings that apply to req.
func Available(ctx context.Context, req *Request) ([]*Refactoring, error) {
	var out []*Refactoring
	for _, r := range All {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := r.apply(req); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}
