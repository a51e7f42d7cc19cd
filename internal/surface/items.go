package surface

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// extractConst builds a Field from a const_item node.
func extractConst(node *sitter.Node, source []byte) Field {
	return Field{
		Name: rustparse.NodeText(node.ChildByFieldName("name"), source),
		Type: typeText(node.ChildByFieldName("type"), source),
	}
}

// extractStruct builds a Struct from a struct_item node. Only public named
// fields survive; a tuple-style field list cannot be expressed as named
// facade fields, so the struct is emitted with zero fields plus one issue.
// Unit structs need no diagnostic.
func extractStruct(node *sitter.Node, source []byte, file string, issues *[]Issue) Struct {
	name := rustparse.NodeText(node.ChildByFieldName("name"), source)
	typeParams := typeParamNames(node.ChildByFieldName("type_parameters"), source, file, "Struct", name, issues)

	fields := []Field{}
	switch body := node.ChildByFieldName("body"); {
	case body == nil:
		// Unit struct.
	case body.Kind() == "field_declaration_list":
		for _, decl := range rustparse.NamedChildren(body) {
			if decl.Kind() != "field_declaration" || !rustparse.IsPublic(decl, source) {
				continue
			}
			fields = append(fields, Field{
				Name: rustparse.NodeText(decl.ChildByFieldName("name"), source),
				Type: typeText(decl.ChildByFieldName("type"), source),
			})
		}
	default:
		*issues = append(*issues, Issue{
			File:    file,
			Kind:    IssueStruct,
			Snippet: name,
			Reason:  "Tuple structs are not representable as named facade fields and were emitted without fields.",
		})
	}

	return Struct{Name: name, TypeParams: typeParams, Fields: fields}
}

// extractEnum builds an Enum from an enum_item node. Every variant
// contributes its bare name; a variant carrying payload data additionally
// produces one issue, since only unit variants are representable.
func extractEnum(node *sitter.Node, source []byte, file string, issues *[]Issue) Enum {
	name := rustparse.NodeText(node.ChildByFieldName("name"), source)
	typeParams := typeParamNames(node.ChildByFieldName("type_parameters"), source, file, "Enum", name, issues)

	variants := []string{}
	if body := node.ChildByFieldName("body"); body != nil {
		for _, variant := range rustparse.NamedChildren(body) {
			if variant.Kind() != "enum_variant" {
				continue
			}
			variantName := rustparse.NodeText(variant.ChildByFieldName("name"), source)
			if variant.ChildByFieldName("body") != nil {
				*issues = append(*issues, Issue{
					File:    file,
					Kind:    IssueEnum,
					Snippet: variantName,
					Reason:  "Enum variants with payload fields are currently represented as unit variants in facades.",
				})
			}
			variants = append(variants, variantName)
		}
	}

	return Enum{Name: name, TypeParams: typeParams, Variants: variants}
}

// macroStub synthesizes a function record for an exported macro. Macro
// bodies carry no typed signature, so the stub takes and returns an opaque
// token stream.
func macroStub(name string) Function {
	return Function{
		Name:       name,
		TypeParams: []string{},
		Params: []Field{{
			Name: "tokens",
			Type: "Tokens",
		}},
		ReturnType: "Tokens",
	}
}
