package surface

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// collectImpl gathers the public methods of one inherent impl block. Trait
// impl blocks contribute nothing. A block whose self type is not a simple
// nominal path (a reference, tuple, etc.) is skipped whole with one "impl"
// issue. A block that yields zero public methods returns no entry at all.
//
// Blocks for the same target are deliberately kept separate; merging them
// into their owning type happens in a later phase.
func collectImpl(node *sitter.Node, source []byte, file string, issues *[]Issue) (PendingMethods, bool) {
	if node.ChildByFieldName("trait") != nil {
		return PendingMethods{}, false
	}

	selfType := node.ChildByFieldName("type")
	target, ok := nominalTargetName(selfType, source)
	if !ok {
		*issues = append(*issues, Issue{
			File:    file,
			Kind:    IssueImpl,
			Snippet: typeText(selfType, source),
			Reason:  "Unsupported impl target (expected a nominal path type).",
		})
		return PendingMethods{}, false
	}

	methods := []Function{}
	if body := node.ChildByFieldName("body"); body != nil {
		for _, member := range rustparse.Items(body) {
			if member.Node.Kind() != "function_item" || !rustparse.IsPublic(member.Node, source) {
				continue
			}
			methods = append(methods, extractSignature(member.Node, source, file, issues))
		}
	}
	if len(methods) == 0 {
		return PendingMethods{}, false
	}

	return PendingMethods{Target: target, Methods: methods}, true
}

// nominalTargetName resolves the last path segment of a nominal self type:
// `Point` -> Point, `geo::Point` -> Point, `Wrapper<T>` -> Wrapper.
func nominalTargetName(selfType *sitter.Node, source []byte) (string, bool) {
	if selfType == nil {
		return "", false
	}
	switch selfType.Kind() {
	case "type_identifier":
		return rustparse.NodeText(selfType, source), true
	case "scoped_type_identifier":
		return rustparse.NodeText(selfType.ChildByFieldName("name"), source), true
	case "generic_type":
		return nominalTargetName(selfType.ChildByFieldName("type"), source)
	default:
		return "", false
	}
}
