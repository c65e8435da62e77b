// Copyright © 2024 The ELPS authors

package syntax

import (
	"fmt"
	"strings"

	parsec "github.com/prataprc/goparsec"
)

type triviaPattern struct {
	kind    TriviaKind
	pattern string
	// lineStart patterns only match when nothing but whitespace precedes
	// them on the line.
	lineStart bool
}

// Patterns are anchored: the scanner searches ahead of its cursor. Order
// matters: doc comments before line comments.
var triviaPatterns = []triviaPattern{
	{kind: EndOfLineTrivia, pattern: `^(?:\r\n|\n|\r)`},
	{kind: WhitespaceTrivia, pattern: `^[ \t\f\v\x{00A0}\x{FEFF}]+`},
	{kind: DocCommentTrivia, pattern: `^///[^\r\n]*`},
	{kind: SingleLineCommentTrivia, pattern: `^//[^\r\n]*`},
	{kind: MultiLineCommentTrivia, pattern: `^(?s:/\*.*?\*/)`},
	{kind: DirectiveTrivia, pattern: `^#[^\r\n]*`, lineStart: true},
}

const (
	restOfLine      = `^[^\r\n]+`
	lineIndentChars = " \t\f\v\u00a0\ufeff"
)

// condition is the value of an #if or #elif condition. Only the literals
// true and false are known; symbols depend on the host's compilation.
type condition uint8

const (
	condUnknown condition = iota
	condTrue
	condFalse
)

// branch is one open #if group.
type branch struct {
	// inactive is set while the current branch is known to be skipped.
	inactive bool
	// taken is set once a branch of the group is known to be active.
	taken bool
	// outerInactive is set when the whole group sits in a skipped branch.
	outerInactive bool
}

type triviaLexer struct {
	s           parsec.Scanner
	out         []Trivia
	atLineStart bool
	branches    []branch
}

// ParseTrivia splits raw trivia text into pieces. Lines inside an #if group
// whose branch is known to be skipped (#if false, #else after #if true)
// become disabled text, as does text inside any #if group that does not lex
// as trivia. Anywhere else ParseTrivia fails on text that is not
// whitespace, a comment or a directive line, and on an unterminated block
// comment.
func ParseTrivia(src string) ([]Trivia, error) {
	l := &triviaLexer{s: parsec.NewScanner([]byte(src)), atLineStart: true}
	for !l.s.Endof() {
		if l.atLineStart && l.inactive() {
			l.disabledLine()
			continue
		}
		if l.next() {
			continue
		}
		if len(l.branches) > 0 {
			l.emit(DisabledTextTrivia, l.match(restOfLine))
			continue
		}
		rest := l.match(`^[^\r\n]{1,16}`)
		return nil, fmt.Errorf("offset %d: unexpected trivia text: %q", l.s.GetCursor()-len(rest), rest)
	}
	return l.out, nil
}

func (l *triviaLexer) match(pattern string) string {
	b, next := l.s.Match(pattern)
	l.s = next
	return string(b)
}

func (l *triviaLexer) emit(k TriviaKind, text string) {
	l.out = append(l.out, Trivia{Kind: k, Text: text})
	switch k {
	case EndOfLineTrivia:
		l.atLineStart = true
	case WhitespaceTrivia:
	default:
		l.atLineStart = false
	}
}

// next lexes one piece of trivia and reports whether one matched.
func (l *triviaLexer) next() bool {
	for _, p := range triviaPatterns {
		if p.lineStart && !l.atLineStart {
			continue
		}
		text := l.match(p.pattern)
		if text == "" {
			continue
		}
		l.emit(p.kind, text)
		if p.kind == DirectiveTrivia {
			l.directive(l.out[len(l.out)-1])
		}
		return true
	}
	return false
}

// disabledLine consumes one line of a skipped branch. Directive lines are
// still lexed so that the group can end.
func (l *triviaLexer) disabledLine() {
	if eol := l.match(triviaPatterns[0].pattern); eol != "" {
		l.emit(EndOfLineTrivia, eol)
		return
	}
	line := l.match(restOfLine)
	body := strings.TrimLeft(line, lineIndentChars)
	if !strings.HasPrefix(body, "#") {
		l.emit(DisabledTextTrivia, line)
		return
	}
	if indent := line[:len(line)-len(body)]; indent != "" {
		l.emit(WhitespaceTrivia, indent)
	}
	l.emit(DirectiveTrivia, body)
	l.directive(l.out[len(l.out)-1])
}

func (l *triviaLexer) inactive() bool {
	return len(l.branches) > 0 && l.branches[len(l.branches)-1].inactive
}

// directive updates the open #if groups.
func (l *triviaLexer) directive(t Trivia) {
	switch t.DirectiveName() {
	case "if":
		outer := l.inactive()
		c := directiveCondition(t)
		l.branches = append(l.branches, branch{
			inactive:      outer || c == condFalse,
			taken:         c == condTrue,
			outerInactive: outer,
		})
	case "elif":
		if len(l.branches) == 0 {
			return
		}
		b := &l.branches[len(l.branches)-1]
		c := directiveCondition(t)
		b.inactive = b.outerInactive || b.taken || c == condFalse
		b.taken = b.taken || c == condTrue
	case "else":
		if len(l.branches) == 0 {
			return
		}
		b := &l.branches[len(l.branches)-1]
		b.inactive = b.outerInactive || b.taken
		b.taken = true
	case "endif":
		if len(l.branches) > 0 {
			l.branches = l.branches[:len(l.branches)-1]
		}
	}
}

func directiveCondition(t Trivia) condition {
	s := strings.TrimSpace(t.Text)
	s = strings.TrimSpace(strings.TrimPrefix(s, "#"))
	s = strings.TrimSpace(s[len(t.DirectiveName()):])
	if i := strings.Index(s, "//"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch strings.Trim(s, "()") {
	case "true":
		return condTrue
	case "false":
		return condFalse
	}
	return condUnknown
}
