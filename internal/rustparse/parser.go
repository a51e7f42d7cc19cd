package rustparse

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// rustLanguage is shared by every parse; tree-sitter languages are immutable.
var rustLanguage = sitter.NewLanguage(rust.Language())

// File is one parsed Rust source file. The syntax tree borrows from Source,
// so callers must Close the file only after they are done with its nodes.
type File struct {
	Path   string
	Source []byte
	tree   *sitter.Tree
}

// ParseFile reads and parses the Rust file at path. An unreadable file or a
// file the grammar cannot parse cleanly is an error: the caller treats both
// as structural failures, never as something to degrade around.
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file %s: %w", path, err)
	}
	return Parse(path, source)
}

// Parse parses Rust source that has already been read.
func Parse(path string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(rustLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse Rust module %s", path)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("failed to parse Rust module %s: source contains syntax errors", path)
	}

	return &File{
		Path:   path,
		Source: source,
		tree:   tree,
	}, nil
}

// Root returns the source_file node.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text covered by node.
func (f *File) Text(node *sitter.Node) string {
	return NodeText(node, f.Source)
}

// Close releases the syntax tree. Nodes obtained from this file must not be
// used afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}
