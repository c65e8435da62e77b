// Copyright © 2024 The ELPS authors

package hostio

import (
	"fmt"
	"strconv"

	"github.com/luthersystems/fixkit/syntax"
)

// Root builds the syntax tree of the document.
func (d *Document) Root() (*syntax.Node, error) {
	return BuildNode(d.Tree)
}

// SetTree replaces the tree of the document with root. The semantic
// sections are kept as they are.
func (d *Document) SetTree(root *syntax.Node) {
	d.Tree = NodeOf(root)
}

// BuildNode builds a detached syntax node from its wire form.
func BuildNode(n *Node) (*syntax.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: no tree", ErrMalformed)
	}
	return buildNode(n, "tree")
}

func buildNode(n *Node, path string) (*syntax.Node, error) {
	if n == nil {
		return nil, nil
	}
	k, ok := syntax.KindFromString(n.Kind)
	if !ok || k == syntax.None {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownKind, n.Kind)
	}
	var out *syntax.Node
	if k.IsToken() {
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%s: %w: token %s has children", path, ErrMalformed, k)
		}
		leading, err := syntax.ParseTrivia(n.Leading)
		if err != nil {
			return nil, fmt.Errorf("%s: leading trivia: %w", path, err)
		}
		trailing, err := syntax.ParseTrivia(n.Trailing)
		if err != nil {
			return nil, fmt.Errorf("%s: trailing trivia: %w", path, err)
		}
		switch {
		case n.Missing:
			if n.Text != "" {
				return nil, fmt.Errorf("%s: %w: missing token with text", path, ErrMalformed)
			}
			out = syntax.MissingToken(k).WithTokenTrivia(leading, trailing)
		default:
			text := n.Text
			if fixed, ok := syntax.DefaultText(k); ok {
				if text == "" {
					text = fixed
				} else if text != fixed {
					return nil, fmt.Errorf("%s: %w: %s spelled %q", path, ErrMalformed, k, text)
				}
			}
			if text == "" && k != syntax.EndOfFileToken {
				return nil, fmt.Errorf("%s: %w: empty %s", path, ErrMalformed, k)
			}
			if !syntax.WellFormedLiteral(k, text) {
				return nil, fmt.Errorf("%s: %w: %s spelled %q", path, ErrMalformed, k, text)
			}
			out = syntax.TokenWithText(k, text, leading, trailing)
		}
	} else {
		if n.Text != "" || n.Leading != "" || n.Trailing != "" || n.Missing {
			return nil, fmt.Errorf("%s: %w: node %s has token fields", path, ErrMalformed, k)
		}
		slots := make([]*syntax.Node, len(n.Children))
		for i, c := range n.Children {
			child, err := buildNode(c, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			slots[i] = child
		}
		out = syntax.NewNode(k, slots...)
	}
	if n.Error {
		out = out.WithError()
	}
	return out, nil
}

// NodeOf returns the wire form of n.
func NodeOf(n *syntax.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind().String(), Error: n.HasError()}
	if n.IsToken() {
		out.Missing = n.IsMissing()
		if _, fixed := syntax.DefaultText(n.Kind()); !fixed {
			out.Text = n.Text()
		}
		out.Leading = syntax.TriviaText(n.LeadingTrivia())
		out.Trailing = syntax.TriviaText(n.TrailingTrivia())
		return out
	}
	out.Children = make([]*Node, n.SlotCount())
	for i := range out.Children {
		out.Children[i] = NodeOf(n.Child(i))
	}
	return out
}
