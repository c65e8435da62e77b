// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/fixkit/hostio"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// stdinName is the argument that reads a JSON document from stdin.
const stdinName = "-"

// input is one loaded host document.
type input struct {
	path  string
	doc   *hostio.Document
	root  *syntax.Node
	table *semantic.Table
}

// file returns the lint view of the document.
func (in *input) file() *lint.File {
	return lint.NewFile(in.doc.File, in.root, in.table, in.table.WellKnown())
}

// source returns the full text of the tree.
func (in *input) source() string { return in.root.FullText() }

func loadInput(path string, stdin io.Reader) (*input, error) {
	var doc *hostio.Document
	var err error
	if path == stdinName {
		doc, err = hostio.Decode(stdin, hostio.JSON)
		if err == nil && doc.File == "" {
			doc.File = "<stdin>"
		}
	} else {
		doc, err = hostio.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	root, err := doc.Root()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table, err := doc.Table()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &input{path: path, doc: doc, root: root, table: table}, nil
}

// save writes root back to the document of in, keeping its semantic
// sections.
func (in *input) save(root *syntax.Node) error {
	if in.path == stdinName {
		return fmt.Errorf("cannot write back a document read from stdin")
	}
	in.doc.SetTree(root)
	return hostio.WriteFile(in.path, in.doc)
}

// sourceReader serves the text of loaded documents to the renderer by
// their file names and falls back to the file system.
func sourceReader(inputs []*input) func(string) ([]byte, error) {
	texts := make(map[string]string, len(inputs))
	for _, in := range inputs {
		texts[in.doc.File] = in.source()
	}
	return func(name string) ([]byte, error) {
		if s, ok := texts[name]; ok {
			return []byte(s), nil
		}
		return os.ReadFile(name) //nolint:gosec // renders user-specified sources
	}
}
