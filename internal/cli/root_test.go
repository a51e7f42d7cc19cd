package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the CLI:
// - Without --output the document is the sole stdout content
// - Extracting a fixture crate writes the document to --output
// - --pretty indents the document
// - Zero or multiple positional arguments is a usage error
// - A missing crate root surfaces as a command error
// - --watch without --output fails before anything reaches stdout
//
// Subtests run sequentially because the root command and its flag values are
// package globals.

func resetFlags() {
	prettyFlag = false
	outputFlag = ""
	watchFlag = false
	quietFlag = false
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestRootCommand(t *testing.T) {
	manifest := filepath.Join("..", "..", "testdata", "crates", "simple", "Cargo.toml")

	t.Run("writes the document to stdout by default", func(t *testing.T) {
		resetFlags()
		rootCmd.SetArgs([]string{manifest})

		var execErr error
		out := captureStdout(t, func() {
			execErr = rootCmd.Execute()
		})

		require.NoError(t, execErr)
		var doc struct {
			Schema  int               `json:"schema"`
			Modules []json.RawMessage `json:"modules"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, 1, doc.Schema)
		assert.Len(t, doc.Modules, 2)
	})

	t.Run("extracts to output file", func(t *testing.T) {
		resetFlags()
		outPath := filepath.Join(t.TempDir(), "surface.json")
		rootCmd.SetArgs([]string{manifest, "--output", outPath})

		require.NoError(t, rootCmd.Execute())

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)

		var doc struct {
			Schema  int `json:"schema"`
			Modules []struct {
				Parts []string `json:"parts"`
			} `json:"modules"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, 1, doc.Schema)
		require.Len(t, doc.Modules, 2)
		assert.Empty(t, doc.Modules[0].Parts)
		assert.Equal(t, []string{"math"}, doc.Modules[1].Parts)
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		resetFlags()
		outPath := filepath.Join(t.TempDir(), "surface.json")
		rootCmd.SetArgs([]string{manifest, "--output", outPath, "--pretty"})

		require.NoError(t, rootCmd.Execute())

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"schema\": 1")
	})

	t.Run("rejects multiple arguments", func(t *testing.T) {
		resetFlags()
		rootCmd.SetArgs([]string{manifest, "extra"})

		err := rootCmd.Execute()

		require.Error(t, err)
	})

	t.Run("missing crate root is fatal", func(t *testing.T) {
		resetFlags()
		noroot := filepath.Join("..", "..", "testdata", "crates", "noroot", "Cargo.toml")
		outPath := filepath.Join(t.TempDir(), "surface.json")
		rootCmd.SetArgs([]string{noroot, "--output", outPath})

		err := rootCmd.Execute()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected src/lib.rs")
		assert.NoFileExists(t, outPath)
	})

	t.Run("watch without output is rejected before extraction", func(t *testing.T) {
		resetFlags()
		rootCmd.SetArgs([]string{manifest, "--watch"})

		var execErr error
		out := captureStdout(t, func() {
			execErr = rootCmd.Execute()
		})

		require.Error(t, execErr)
		assert.Contains(t, execErr.Error(), "--watch requires --output")
		assert.Empty(t, out)
	})
}
