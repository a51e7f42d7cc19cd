package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// sortModules orders modules by the dotted string form of their module
// path, file identity as tie-break. The root module's path is the empty
// string, so it sorts first. Declaration and filesystem order never leak
// into the output.
func sortModules(modules []Module) {
	sort.SliceStable(modules, func(i, j int) bool {
		left := strings.Join(modules[i].Parts, "::")
		right := strings.Join(modules[j].Parts, "::")
		if left != right {
			return left < right
		}
		return modules[i].File < modules[j].File
	})
}

// WriteJSON serializes the output document to w, compact by default and
// indented with two spaces when pretty is set. A serialization or write
// failure is fatal to the run.
func (o *Output) WriteJSON(w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("failed to serialize extractor output: %w", err)
	}
	return nil
}
