package surface

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// Receiver parameters have no ordinary name/type pair; they are recorded
// with one of three sentinel names and a fixed sentinel type marker.
const (
	receiverType    = "self"
	unsupportedName = "unsupported"
	unitType        = "()"
)

// extractSignature builds a Function from a function_item or
// function_signature_item node. Unrepresentable pieces (lifetime/const
// generics, non-identifier parameter patterns) degrade into issues while
// extraction continues.
func extractSignature(node *sitter.Node, source []byte, file string, issues *[]Issue) Function {
	name := rustparse.NodeText(node.ChildByFieldName("name"), source)
	typeParams := typeParamNames(node.ChildByFieldName("type_parameters"), source, file, "Function", name, issues)

	params := []Field{}
	for _, param := range rustparse.NamedChildren(node.ChildByFieldName("parameters")) {
		switch param.Kind() {
		case "self_parameter":
			params = append(params, Field{
				Name: receiverName(param, source),
				Type: receiverType,
			})
		case "parameter":
			// A typed receiver (`self: Box<Self>`) parses as an ordinary
			// parameter whose pattern is the bare `self` keyword. It is
			// still the by-value receiver.
			if pat := param.ChildByFieldName("pattern"); pat != nil && pat.Kind() == "self" {
				params = append(params, Field{Name: "self", Type: receiverType})
				continue
			}
			params = append(params, extractParameter(param, source, file, issues))
		}
	}

	returnType := unitType
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		returnType = typeText(ret, source)
	}

	return Function{
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		ReturnType: returnType,
	}
}

// receiverName classifies a self parameter as by-value, by-reference, or by
// mutable reference. A `mut self` receiver without a reference is still
// by-value.
func receiverName(param *sitter.Node, source []byte) string {
	text := rustparse.NodeText(param, source)
	byRef := strings.HasPrefix(text, "&")
	mutable := rustparse.FindChildByKind(param, "mutable_specifier") != nil

	switch {
	case byRef && mutable:
		return "&mut self"
	case byRef:
		return "&self"
	default:
		return "self"
	}
}

// extractParameter handles one ordinary (typed) parameter. A pattern that is
// not a simple identifier, such as a destructuring or wildcard binding, has
// no stable facade name: it is replaced with a sentinel and reported.
func extractParameter(param *sitter.Node, source []byte, file string, issues *[]Issue) Field {
	name := unsupportedName
	pattern := param.ChildByFieldName("pattern")
	if pattern != nil && pattern.Kind() == "identifier" {
		name = rustparse.NodeText(pattern, source)
	} else {
		*issues = append(*issues, Issue{
			File:    file,
			Kind:    IssueParam,
			Snippet: normalizeWS(rustparse.NodeText(pattern, source)),
			Reason:  "Non-identifier function parameters are not representable in facades and were replaced by an 'unsupported' name.",
		})
	}
	return Field{
		Name: name,
		Type: typeText(param.ChildByFieldName("type"), source),
	}
}
