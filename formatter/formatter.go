// Copyright © 2024 The ELPS authors

// Package formatter normalizes the whitespace of syntax trees.
//
// Rewrites build replacement nodes without layout and mark them with
// syntax.FormatterAnnotation. FormatAnnotated re-lays the whitespace between
// the tokens of every marked node and leaves the rest of the tree exactly as
// it was. Format does the same for a whole tree. Comments and directives
// are never dropped: a gap holding a directive is kept verbatim and
// comments are re-indented in place.
package formatter

import (
	"github.com/luthersystems/fixkit/syntax"
)

// Config holds formatting configuration.
type Config struct {
	IndentSize    int    // spaces per indent level (default: 4)
	MaxBlankLines int    // max consecutive blank lines (default: 1)
	Newline       string // line break written by the formatter (default: "\n")
	UseTabs       bool   // indent with one tab per level
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() *Config {
	return &Config{
		IndentSize:    4,
		MaxBlankLines: 1,
		Newline:       "\n",
	}
}

func (c *Config) normalized() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	if out.IndentSize <= 0 {
		out.IndentSize = 4
	}
	if out.MaxBlankLines < 0 {
		out.MaxBlankLines = 0
	}
	if out.Newline == "" {
		out.Newline = "\n"
	}
	return &out
}

// Format lays out the whole tree containing root. If cfg is nil,
// DefaultConfig() is used.
func Format(root *syntax.Node, cfg *Config) *syntax.Node {
	return FormatAnnotated(root.Root().WithAnnotations(syntax.FormatterAnnotation), cfg)
}

// FormatAnnotated lays out the inside of every node carrying the formatter
// annotation and returns the root of the resulting tree with the
// annotations removed. The trivia before the first token and after the
// last token of a marked node is left alone.
func FormatAnnotated(root *syntax.Node, cfg *Config) *syntax.Node {
	root = root.Root()
	if !root.ContainsAnnotations() {
		return root
	}
	p := newPrinter(cfg.normalized())
	root.Walk(func(n *syntax.Node) bool {
		if n.HasAnnotation(syntax.FormatterAnnotation) {
			p.layout(n)
			return false
		}
		return n.ContainsAnnotations()
	})
	out := syntax.RewriteTokens(root, p.apply)
	return out.WithoutAnnotations(syntax.FormatterAnnotation)
}

// FormatText lays out root and returns its full text.
func FormatText(root *syntax.Node, cfg *Config) string {
	return Format(root, cfg).FullText()
}
