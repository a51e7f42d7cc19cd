package surface

import (
	"slices"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// extractTrait builds a Trait from a trait_item node. Associated types are
// folded into the type-parameter list (deduplicated) so downstream treats
// them like ordinary generics. Supertrait bounds are kept as normalized
// opaque text, never structurally parsed. Any other trait member kind is
// dropped with one "trait" issue.
func extractTrait(node *sitter.Node, source []byte, file string, issues *[]Issue) Trait {
	name := rustparse.NodeText(node.ChildByFieldName("name"), source)
	typeParams := typeParamNames(node.ChildByFieldName("type_parameters"), source, file, "Trait", name, issues)

	methods := []Function{}
	if body := node.ChildByFieldName("body"); body != nil {
		for _, member := range rustparse.Items(body) {
			switch member.Node.Kind() {
			case "function_item", "function_signature_item":
				methods = append(methods, extractSignature(member.Node, source, file, issues))
			case "associated_type":
				assoc := rustparse.NodeText(member.Node.ChildByFieldName("name"), source)
				if !slices.Contains(typeParams, assoc) {
					typeParams = append(typeParams, assoc)
				}
			default:
				*issues = append(*issues, Issue{
					File:    file,
					Kind:    IssueTrait,
					Snippet: normalizeWS(rustparse.NodeText(member.Node, source)),
					Reason:  "Unsupported trait member kind was skipped.",
				})
			}
		}
	}

	superTraits := []string{}
	if bounds := node.ChildByFieldName("bounds"); bounds != nil {
		for _, bound := range rustparse.NamedChildren(bounds) {
			superTraits = append(superTraits, normalizeWS(rustparse.NodeText(bound, source)))
		}
	}

	return Trait{
		Name:        name,
		TypeParams:  typeParams,
		SuperTraits: superTraits,
		Methods:     methods,
	}
}
