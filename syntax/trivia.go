// Copyright © 2024 The ELPS authors

package syntax

import "strings"

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

const (
	WhitespaceTrivia TriviaKind = iota
	EndOfLineTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia
	DocCommentTrivia
	DirectiveTrivia
	DisabledTextTrivia
)

var triviaKindNames = []string{
	WhitespaceTrivia:        "Whitespace",
	EndOfLineTrivia:         "EndOfLine",
	SingleLineCommentTrivia: "SingleLineComment",
	MultiLineCommentTrivia:  "MultiLineComment",
	DocCommentTrivia:        "DocComment",
	DirectiveTrivia:         "Directive",
	DisabledTextTrivia:      "DisabledText",
}

func (k TriviaKind) String() string {
	if int(k) >= len(triviaKindNames) {
		return "Unknown"
	}
	return triviaKindNames[k]
}

// IsWhitespace reports whether k is a space, tab or line break.
func (k TriviaKind) IsWhitespace() bool {
	return k == WhitespaceTrivia || k == EndOfLineTrivia
}

// IsComment reports whether k is any kind of comment.
func (k TriviaKind) IsComment() bool {
	return k == SingleLineCommentTrivia || k == MultiLineCommentTrivia || k == DocCommentTrivia
}

// IsDirective reports whether k is preprocessor trivia. Disabled text only
// exists between directives, so it counts as directive trivia.
func (k TriviaKind) IsDirective() bool {
	return k == DirectiveTrivia || k == DisabledTextTrivia
}

// Trivia is a piece of non-semantic source text attached to a token.
// Directive trivia holds the directive line without its line break.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Space returns a single space of whitespace trivia.
func Space() Trivia { return Trivia{Kind: WhitespaceTrivia, Text: " "} }

// Whitespace returns whitespace trivia.
func Whitespace(s string) Trivia { return Trivia{Kind: WhitespaceTrivia, Text: s} }

// EndOfLine returns a line break trivia.
func EndOfLine(s string) Trivia { return Trivia{Kind: EndOfLineTrivia, Text: s} }

// Comment returns comment trivia, choosing the kind from its spelling.
func Comment(s string) Trivia {
	switch {
	case strings.HasPrefix(s, "///"):
		return Trivia{Kind: DocCommentTrivia, Text: s}
	case strings.HasPrefix(s, "/*"):
		return Trivia{Kind: MultiLineCommentTrivia, Text: s}
	default:
		return Trivia{Kind: SingleLineCommentTrivia, Text: s}
	}
}

// Directive returns directive trivia such as "#region Name".
func Directive(s string) Trivia { return Trivia{Kind: DirectiveTrivia, Text: s} }

// DirectiveName returns the directive keyword of directive trivia ("if",
// "region", "pragma", ...), or "".
func (t Trivia) DirectiveName() string {
	if t.Kind != DirectiveTrivia {
		return ""
	}
	s := strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(t.Text), "#"), " \t")
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	return s
}

// TriviaText concatenates the text of ts.
func TriviaText(ts []Trivia) string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Text)
	}
	return b.String()
}

func triviaWidth(ts []Trivia) int {
	n := 0
	for _, t := range ts {
		n += len(t.Text)
	}
	return n
}
