// Package surface extracts the public API surface of a Rust crate into a
// deterministic JSON document for the downstream binding generator. The
// extraction is intentionally lossy: constructs the facade schema cannot
// express are degraded into per-module issues instead of failing the run.
package surface

// SchemaVersion tags the output document so consumers can detect contract
// changes without guessing from shape.
const SchemaVersion = 1

// Issue kinds. Each names the construct class that could not be represented.
const (
	IssueGeneric = "generic"
	IssueParam   = "param"
	IssueStruct  = "struct"
	IssueEnum    = "enum"
	IssueTrait   = "trait"
	IssueImpl    = "impl"
	IssueMacro   = "macro"
)

// Issue records one construct that was skipped or degraded because the
// output schema has no representation for it. Issues are diagnostics, never
// failures.
type Issue struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
	Reason  string `json:"reason"`
}

// Field is a named value with canonical type text. It doubles as a constant,
// a struct field, and a function parameter.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Function is an extracted function or method signature.
type Function struct {
	Name       string   `json:"name"`
	TypeParams []string `json:"typeParams"`
	Params     []Field  `json:"params"`
	ReturnType string   `json:"returnType"`
}

// Struct is a struct with its public named fields in declaration order.
type Struct struct {
	Name       string   `json:"name"`
	TypeParams []string `json:"typeParams"`
	Fields     []Field  `json:"fields"`
}

// Enum lists variant names only; payloads are not representable and are
// reported as issues by the extractor.
type Enum struct {
	Name       string   `json:"name"`
	TypeParams []string `json:"typeParams"`
	Variants   []string `json:"variants"`
}

// Trait carries its methods plus type parameters, where associated types are
// folded into the type-parameter list for uniform downstream handling.
// Supertrait bounds are opaque display strings.
type Trait struct {
	Name        string     `json:"name"`
	TypeParams  []string   `json:"typeParams"`
	SuperTraits []string   `json:"superTraits"`
	Methods     []Function `json:"methods"`
}

// PendingMethods is the public method set of one inherent impl block, keyed
// by the name of the type it extends. Blocks for the same target are kept
// separate here; merging them into their owning type is a later phase.
type PendingMethods struct {
	Target  string     `json:"target"`
	Methods []Function `json:"methods"`
}

// Module is everything extracted from one module of the crate. File is the
// canonical path of the file the module was read from; Parts is the module
// path from the crate root, empty for the root module itself.
type Module struct {
	File           string           `json:"file"`
	Parts          []string         `json:"parts"`
	Consts         []Field          `json:"consts"`
	Enums          []Enum           `json:"enums"`
	Structs        []Struct         `json:"structs"`
	Traits         []Trait          `json:"traits"`
	Functions      []Function       `json:"functions"`
	PendingMethods []PendingMethods `json:"pendingMethods"`
	Issues         []Issue          `json:"issues"`
}

// Output is the complete extraction result.
type Output struct {
	Schema  int      `json:"schema"`
	Modules []Module `json:"modules"`
}

// newModule returns a module with every collection non-nil so empty
// collections serialize as [] rather than null.
func newModule(file string, parts []string) *Module {
	if parts == nil {
		parts = []string{}
	}
	return &Module{
		File:           file,
		Parts:          parts,
		Consts:         []Field{},
		Enums:          []Enum{},
		Structs:        []Struct{},
		Traits:         []Trait{},
		Functions:      []Function{},
		PendingMethods: []PendingMethods{},
		Issues:         []Issue{},
	}
}
