// Copyright © 2024 The ELPS authors

package formatter

import (
	"strings"

	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/trivia"
)

// printer computes new trivia for the gaps between tokens. Trivia up to
// and including the line break belongs to the token before a gap; the
// indentation belongs to the token after it.
type printer struct {
	cfg      *Config
	leading  map[*syntax.Node][]syntax.Trivia
	trailing map[*syntax.Node][]syntax.Trivia
}

func newPrinter(cfg *Config) *printer {
	return &printer{
		cfg:      cfg,
		leading:  make(map[*syntax.Node][]syntax.Trivia),
		trailing: make(map[*syntax.Node][]syntax.Trivia),
	}
}

// layout computes every gap strictly inside n.
func (p *printer) layout(n *syntax.Node) {
	toks := n.Tokens()
	if len(toks) < 2 {
		return
	}
	base := lineIndent(toks[0])
	baseLevel := level(toks[0])
	for i := 1; i < len(toks); i++ {
		p.gap(toks[i-1], toks[i], base, baseLevel)
	}
}

func (p *printer) gap(prev, cur *syntax.Node, base string, baseLevel int) {
	existing := make([]syntax.Trivia, 0, len(prev.TrailingTrivia())+len(cur.LeadingTrivia()))
	existing = append(existing, prev.TrailingTrivia()...)
	existing = append(existing, cur.LeadingTrivia()...)
	cl := trivia.ClassifyTrivia(existing)
	if cl.Veto() {
		return
	}
	if !newlineBefore(prev, cur) {
		if cl.ContainsComment {
			return
		}
		p.trailing[prev] = nil
		if spaceBetween(prev, cur) {
			p.trailing[prev] = []syntax.Trivia{syntax.Space()}
		}
		p.leading[cur] = nil
		return
	}
	indent := p.indent(base, level(cur)-baseLevel)
	var trail, lead []syntax.Trivia
	eols := 0
	onLine := true
	for _, t := range existing {
		switch {
		case t.Kind == syntax.EndOfLineTrivia:
			eols++
			onLine = false
		case t.Kind.IsComment():
			if onLine {
				trail = append(trail, syntax.Space(), t)
				continue
			}
			lead = append(lead, p.blankLines(eols)...)
			lead = appendIndent(lead, indent)
			lead = append(lead, t, syntax.EndOfLine(p.cfg.Newline))
			eols = 0
		}
	}
	trail = append(trail, syntax.EndOfLine(p.cfg.Newline))
	if cur.Kind() != syntax.EndOfFileToken {
		lead = append(lead, p.blankLines(eols)...)
		lead = appendIndent(lead, indent)
	}
	p.trailing[prev] = trail
	p.leading[cur] = lead
}

// blankLines returns the line breaks kept for a gap that had eols breaks.
func (p *printer) blankLines(eols int) []syntax.Trivia {
	n := eols - 1
	if n > p.cfg.MaxBlankLines {
		n = p.cfg.MaxBlankLines
	}
	var out []syntax.Trivia
	for i := 0; i < n; i++ {
		out = append(out, syntax.EndOfLine(p.cfg.Newline))
	}
	return out
}

func (p *printer) indent(base string, depth int) string {
	if depth <= 0 {
		return base
	}
	if p.cfg.UseTabs {
		return base + strings.Repeat("\t", depth)
	}
	return base + strings.Repeat(" ", depth*p.cfg.IndentSize)
}

func (p *printer) apply(tok *syntax.Node) *syntax.Node {
	lead, hasLead := p.leading[tok]
	trail, hasTrail := p.trailing[tok]
	if !hasLead && !hasTrail {
		return tok
	}
	if !hasLead {
		lead = tok.LeadingTrivia()
	}
	if !hasTrail {
		trail = tok.TrailingTrivia()
	}
	return tok.WithTokenTrivia(lead, trail)
}

func appendIndent(ts []syntax.Trivia, indent string) []syntax.Trivia {
	if indent == "" {
		return ts
	}
	return append(ts, syntax.Whitespace(indent))
}

// lineIndent returns the indentation of the line tok is on.
func lineIndent(tok *syntax.Node) string {
	for t := tok; t != nil; {
		lead := t.LeadingTrivia()
		if i := lastEndOfLine(lead); i >= 0 {
			return leadingWhitespace(lead[i+1:])
		}
		prev := t.PreviousToken()
		if prev == nil || lastEndOfLine(prev.TrailingTrivia()) >= 0 {
			return leadingWhitespace(lead)
		}
		t = prev
	}
	return ""
}

func lastEndOfLine(ts []syntax.Trivia) int {
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].Kind == syntax.EndOfLineTrivia {
			return i
		}
	}
	return -1
}

func leadingWhitespace(ts []syntax.Trivia) string {
	var sb strings.Builder
	for _, t := range ts {
		if t.Kind != syntax.WhitespaceTrivia {
			break
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}
