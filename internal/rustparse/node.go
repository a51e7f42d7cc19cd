package rustparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeText extracts the text content of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// FindChildByKind finds the first child node with the given kind.
func FindChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// NamedChildren returns all named children of a node in order.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(uint(i)))
	}
	return children
}

// IsPublic reports whether an item node carries a plain `pub` modifier.
// Restricted forms (pub(crate), pub(super), pub(in ...)) scope an item to the
// crate and are treated as private, matching how the output schema defines
// the public surface.
func IsPublic(node *sitter.Node, source []byte) bool {
	vis := FindChildByKind(node, "visibility_modifier")
	return vis != nil && NodeText(vis, source) == "pub"
}

// Item is one item node together with the outer attributes that decorate it.
// The Rust grammar emits `#[...]` as sibling attribute_item nodes preceding
// the item, so iteration has to reassemble the pairing.
type Item struct {
	Node  *sitter.Node
	Attrs []*sitter.Node
}

// Items groups the named children of a source_file or declaration_list node
// into items with their attached outer attributes. Comments and inner
// attributes (#![...]) are skipped.
func Items(body *sitter.Node) []Item {
	var items []Item
	var pending []*sitter.Node

	for _, child := range NamedChildren(body) {
		switch child.Kind() {
		case "attribute_item":
			pending = append(pending, child)
		case "line_comment", "block_comment", "inner_attribute_item":
			// Not attached to anything.
		default:
			items = append(items, Item{Node: child, Attrs: pending})
			pending = nil
		}
	}
	return items
}

// HasAttr reports whether one of the item's outer attributes has the given
// path, e.g. "macro_export" for #[macro_export].
func (it Item) HasAttr(source []byte, name string) bool {
	for _, attr := range it.Attrs {
		inner := FindChildByKind(attr, "attribute")
		if inner == nil {
			continue
		}
		// The attribute's first named child is its path; arguments follow.
		if path := inner.NamedChild(0); path != nil && NodeText(path, source) == name {
			return true
		}
	}
	return false
}
