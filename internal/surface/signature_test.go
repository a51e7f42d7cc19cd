package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// Test Plan for signature extraction:
// - Plain functions keep name, parameters, and return type
// - Missing return-type annotation canonicalizes to "()"
// - Type parameters are kept in declared order
// - Lifetime and const generic parameters are dropped with "generic" issues
// - Receiver parameters, including typed `self: Box<Self>`, map to the
//   self/&self/&mut self sentinels
// - Non-identifier parameter patterns get the sentinel name plus a "param" issue
// - Type text is whitespace-normalized

// parseItems parses inline Rust source and returns its top-level items.
func parseItems(t *testing.T, source string) (*rustparse.File, []rustparse.Item) {
	t.Helper()
	f, err := rustparse.Parse("test.rs", []byte(source))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f, rustparse.Items(f.Root())
}

// Test: Plain function signature
func TestExtractSignature_Plain(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn add(a: i32, b: i32) -> i32 { a + b }\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	assert.Equal(t, "add", fn.Name)
	assert.Empty(t, fn.TypeParams)
	assert.Equal(t, []Field{{Name: "a", Type: "i32"}, {Name: "b", Type: "i32"}}, fn.Params)
	assert.Equal(t, "i32", fn.ReturnType)
	assert.Empty(t, issues)
}

// Test: Missing return type becomes the empty tuple
func TestExtractSignature_DefaultReturnType(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn fire() {}\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	assert.Equal(t, "()", fn.ReturnType)
}

// Test: Lifetime parameter dropped with an issue, type parameter kept
func TestExtractSignature_LifetimeGeneric(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn first<'a, T>(value: &'a str) -> &'a str { value }\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	assert.Equal(t, []string{"T"}, fn.TypeParams)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueGeneric, issues[0].Kind)
	assert.Contains(t, issues[0].Reason, "Function 'first'")
	assert.Contains(t, issues[0].Reason, "lifetime")
}

// Test: Bounded type parameters keep their bare name
func TestExtractSignature_BoundedGeneric(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn sort<T: Ord>(values: Vec<T>) -> Vec<T> { values }\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	assert.Equal(t, []string{"T"}, fn.TypeParams)
	assert.Empty(t, issues)
}

// Test: Receiver sentinel forms
func TestExtractSignature_Receivers(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, `
impl Counter {
    pub fn by_value(self) -> i32 { 0 }
    pub fn by_ref(&self) -> i32 { 0 }
    pub fn by_mut_ref(&mut self) -> i32 { 0 }
    pub fn by_mut_value(mut self) -> i32 { 0 }
    pub fn by_box(self: Box<Self>) -> i32 { 0 }
}
`)

	body := items[0].Node.ChildByFieldName("body")
	require.NotNil(t, body)

	want := map[string]string{
		"by_value":     "self",
		"by_ref":       "&self",
		"by_mut_ref":   "&mut self",
		"by_mut_value": "self",
		"by_box":       "self",
	}
	issues := []Issue{}
	for _, member := range rustparse.Items(body) {
		fn := extractSignature(member.Node, f.Source, "test.rs", &issues)
		require.Len(t, fn.Params, 1, fn.Name)
		assert.Equal(t, want[fn.Name], fn.Params[0].Name, fn.Name)
		assert.Equal(t, "self", fn.Params[0].Type, fn.Name)
	}
	assert.Empty(t, issues)
}

// Test: Destructuring parameter degrades to the sentinel name
func TestExtractSignature_DestructuredParam(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn swap((a, b): (i32, i32)) -> i32 { b - a }\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	require.Len(t, fn.Params, 1)
	assert.Equal(t, "unsupported", fn.Params[0].Name)
	assert.Equal(t, "(i32, i32)", fn.Params[0].Type)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueParam, issues[0].Kind)
	assert.Equal(t, "(a, b)", issues[0].Snippet)
}

// Test: Wildcard parameter is not an identifier either
func TestExtractSignature_WildcardParam(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, "pub fn consume(_: String) {}\n")
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	require.Len(t, fn.Params, 1)
	assert.Equal(t, "unsupported", fn.Params[0].Name)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueParam, issues[0].Kind)
}

// Test: Multi-line type text collapses to single spaces
func TestExtractSignature_NormalizedTypeText(t *testing.T) {
	t.Parallel()

	f, items := parseItems(t, `
pub fn lookup(
    key: Option<
        String,
    >,
) -> Result<i32,
    String> { Err(String::new()) }
`)
	issues := []Issue{}

	fn := extractSignature(items[0].Node, f.Source, "test.rs", &issues)

	require.Len(t, fn.Params, 1)
	assert.Equal(t, "Option< String, >", fn.Params[0].Type)
	assert.Equal(t, "Result<i32, String>", fn.ReturnType)
}
