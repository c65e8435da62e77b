// Copyright © 2024 The ELPS authors

// Package hostio reads and writes host documents: a syntax tree together
// with the semantic information of one source file, as produced by the
// compiler host. Documents are JSON or msgpack with the same field names.
package hostio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrUnknownKind is returned for a node, type or symbol kind name that
	// does not exist.
	ErrUnknownKind = errors.New("hostio: unknown kind")

	// ErrUnknownFormat is returned for a file whose extension is neither
	// .json nor .msgpack.
	ErrUnknownFormat = errors.New("hostio: unknown document format")

	// ErrMalformed is returned for a document that does not describe a
	// valid tree or model.
	ErrMalformed = errors.New("hostio: malformed document")
)

// Format is the encoding of a document.
type Format int

const (
	JSON Format = iota
	Msgpack
)

func (f Format) String() string {
	if f == Msgpack {
		return "msgpack"
	}
	return "json"
}

// FormatOf returns the format of the document at path by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".msgpack", ".mpk":
		return Msgpack, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// IsDocument reports whether path has the extension of a host document.
func IsDocument(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Document is the wire form of one analyzed source file.
type Document struct {
	// File is the name of the source file, used in diagnostics.
	File      string         `json:"file"`
	Tree      *Node          `json:"tree"`
	Types     []TypeInfo     `json:"types,omitempty"`
	Symbols   []SymbolInfo   `json:"symbols,omitempty"`
	Facts     []FactInfo     `json:"facts,omitempty"`
	WellKnown *WellKnownInfo `json:"wellKnown,omitempty"`
}

// Node is a syntax node or token. Nodes set Children, with null for an
// absent optional slot. Tokens set Text and their raw trivia; a token of a
// fixed-spelling kind may leave Text empty.
type Node struct {
	Kind     string  `json:"kind"`
	Children []*Node `json:"children,omitempty"`
	Text     string  `json:"text,omitempty"`
	Leading  string  `json:"leading,omitempty"`
	Trailing string  `json:"trailing,omitempty"`
	Missing  bool    `json:"missing,omitempty"`
	Error    bool    `json:"error,omitempty"`
}

// TypeInfo describes a type. References to other types and symbols are
// ids within the document or names of standard library types.
type TypeInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Namespace      string   `json:"namespace,omitempty"`
	Kind           string   `json:"kind,omitempty"`
	Special        string   `json:"special,omitempty"`
	Base           string   `json:"base,omitempty"`
	Interfaces     []string `json:"interfaces,omitempty"`
	Attributes     []string `json:"attributes,omitempty"`
	Members        []string `json:"members,omitempty"`
	EnumUnderlying string   `json:"enumUnderlying,omitempty"`
	TypeArguments  []string `json:"typeArguments,omitempty"`
	HasIndexer     bool     `json:"hasIndexer,omitempty"`
	IsStatic       bool     `json:"isStatic,omitempty"`
	// Span is the [start, end) declaration span of a type declared in the
	// document.
	Span []int `json:"span,omitempty"`
}

// SymbolInfo describes a symbol. A null constant needs HasConstant.
type SymbolInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Type           string   `json:"type,omitempty"`
	ContainingType string   `json:"containingType,omitempty"`
	RefKind        string   `json:"refKind,omitempty"`
	MethodKind     string   `json:"methodKind,omitempty"`
	Parameters     []string `json:"parameters,omitempty"`
	IsStatic       bool     `json:"isStatic,omitempty"`
	IsReadOnly     bool     `json:"isReadOnly,omitempty"`
	IsConst        bool     `json:"isConst,omitempty"`
	IsExtension    bool     `json:"isExtension,omitempty"`
	Constant       any      `json:"constant,omitempty"`
	HasConstant    bool     `json:"hasConstant,omitempty"`
	Accessibility  string   `json:"accessibility,omitempty"`
}

// FactInfo binds a symbol, type or constant to the node with the given
// span and kind.
type FactInfo struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Kind        string `json:"kind"`
	Symbol      string `json:"symbol,omitempty"`
	Type        string `json:"type,omitempty"`
	Constant    any    `json:"constant,omitempty"`
	HasConstant bool   `json:"hasConstant,omitempty"`
}

// WellKnownInfo names the framework types. Empty fields keep the standard
// library types.
type WellKnownInfo struct {
	Exception      string `json:"exception,omitempty"`
	FlagsAttribute string `json:"flagsAttribute,omitempty"`
	Enumerable     string `json:"enumerable,omitempty"`
	String         string `json:"string,omitempty"`
	Object         string `json:"object,omitempty"`
}

// Decode reads a document in format f.
func Decode(r io.Reader, f Format) (*Document, error) {
	doc := new(Document)
	switch f {
	case Msgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		dec.UseLooseInterfaceDecoding(true)
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if doc.Tree == nil {
		return nil, fmt.Errorf("%w: no tree", ErrMalformed)
	}
	return doc, nil
}

// Encode writes doc in format f.
func Encode(w io.Writer, f Format, doc *Document) error {
	switch f {
	case Msgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.SetOmitEmpty(true)
		return enc.Encode(doc)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
}

// ReadFile reads the document at path. Its format follows the extension.
func ReadFile(path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // reads user-specified documents
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.File == "" {
		doc.File = strings.TrimSuffix(path, filepath.Ext(path))
	}
	return doc, nil
}

// WriteFile writes doc to path in the format its extension names.
func WriteFile(path string, doc *Document) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644) //nolint:gosec // documents are not secret
}
