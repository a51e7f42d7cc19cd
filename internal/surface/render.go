package surface

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// normalizeWS collapses all runs of whitespace to single spaces so type text
// is canonical regardless of source formatting.
func normalizeWS(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// typeText renders a type expression node as canonical text.
func typeText(node *sitter.Node, source []byte) string {
	return normalizeWS(rustparse.NodeText(node, source))
}

// typeParamNames extracts the declared type-parameter names from a
// type_parameters node, in order. Lifetime and const generic parameters have
// no facade representation: each is dropped with one "generic" issue naming
// the construct that owns it.
//
// The grammar has shipped two shapes for generic parameters over time (bare
// type_identifier children vs wrapper type_parameter nodes), so both are
// handled.
func typeParamNames(node *sitter.Node, source []byte, file, ownerKind, ownerName string, issues *[]Issue) []string {
	out := []string{}
	if node == nil {
		return out
	}
	for _, param := range rustparse.NamedChildren(node) {
		switch param.Kind() {
		case "type_identifier", "metavariable":
			out = append(out, rustparse.NodeText(param, source))
		case "type_parameter", "optional_type_parameter", "constrained_type_parameter":
			if name := typeParamName(param, source); name != "" {
				out = append(out, name)
			}
		case "lifetime", "lifetime_parameter":
			*issues = append(*issues, Issue{
				File:    file,
				Kind:    IssueGeneric,
				Snippet: normalizeWS(rustparse.NodeText(param, source)),
				Reason: fmt.Sprintf(
					"%s '%s' lifetime generic parameters are not representable in facades and were skipped.",
					ownerKind, ownerName),
			})
		case "const_parameter":
			*issues = append(*issues, Issue{
				File:    file,
				Kind:    IssueGeneric,
				Snippet: normalizeWS(rustparse.NodeText(param, source)),
				Reason: fmt.Sprintf(
					"%s '%s' const generic parameters are not representable in facades and were skipped.",
					ownerKind, ownerName),
			})
		}
	}
	return out
}

// typeParamName digs the bare name out of a wrapped generic parameter such
// as `T`, `T: Clone`, or `T = Default`.
func typeParamName(param *sitter.Node, source []byte) string {
	if name := param.ChildByFieldName("name"); name != nil {
		return rustparse.NodeText(name, source)
	}
	if name := param.ChildByFieldName("left"); name != nil {
		return rustparse.NodeText(name, source)
	}
	if name := rustparse.FindChildByKind(param, "type_identifier"); name != nil {
		return rustparse.NodeText(name, source)
	}
	return ""
}
