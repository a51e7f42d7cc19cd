package surface

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/crate-surface/internal/rustparse"
)

// Extract walks the crate whose Cargo manifest lives at manifestPath and
// returns the extracted surface of every module reachable from the crate
// root through public module declarations.
//
// The traversal is a one-shot, single-threaded batch transform: it either
// runs to completion or fails on the first structural error (missing root,
// unresolvable module reference, unreadable or unparseable file).
func Extract(manifestPath string) (*Output, error) {
	crateRoot := filepath.Dir(manifestPath)
	rootFile := filepath.Join(crateRoot, "src", "lib.rs")
	if _, err := os.Stat(rootFile); err != nil {
		return nil, fmt.Errorf("missing library root %s (expected src/lib.rs)", rootFile)
	}

	w := &walker{seen: make(map[string]struct{})}
	if err := w.walkFile(rootFile, nil); err != nil {
		return nil, err
	}

	sortModules(w.modules)
	return &Output{Schema: SchemaVersion, Modules: w.modules}, nil
}

// walker carries the only state shared across the traversal: the visited
// file set and the module records accumulated so far.
type walker struct {
	seen    map[string]struct{}
	modules []Module
}

// walkFile parses one module file and collects its items. A file reachable
// via multiple module declarations is processed at most once; revisits
// short-circuit to success with no new module record.
func (w *walker) walkFile(path string, parts []string) error {
	canonical, err := canonicalPath(path)
	if err != nil {
		return fmt.Errorf("failed to canonicalize module path %s: %w", path, err)
	}
	if _, visited := w.seen[canonical]; visited {
		return nil
	}
	w.seen[canonical] = struct{}{}

	file, err := rustparse.ParseFile(canonical)
	if err != nil {
		return err
	}
	defer file.Close()

	return w.walkItems(file, file.Root(), parts, moduleBaseDir(canonical))
}

// walkItems classifies the items of one module body and recurses into the
// files or inline bodies its public module declarations name. Each call
// produces exactly one module record.
func (w *walker) walkItems(file *rustparse.File, body *sitter.Node, parts []string, baseDir string) error {
	mod := newModule(file.Path, parts)
	source := file.Source

	for _, item := range rustparse.Items(body) {
		node := item.Node
		public := rustparse.IsPublic(node, source)

		switch node.Kind() {
		case "mod_item":
			// A private module is never descended into.
			if !public {
				continue
			}
			name := file.Text(node.ChildByFieldName("name"))
			childParts := append(append([]string{}, parts...), name)

			if inline := node.ChildByFieldName("body"); inline != nil {
				if err := w.walkItems(file, inline, childParts, filepath.Join(baseDir, name)); err != nil {
					return err
				}
				continue
			}
			childFile, err := resolveChildModule(baseDir, name)
			if err != nil {
				return err
			}
			if err := w.walkFile(childFile, childParts); err != nil {
				return err
			}

		case "const_item":
			if public {
				mod.Consts = append(mod.Consts, extractConst(node, source))
			}

		case "function_item":
			if public {
				mod.Functions = append(mod.Functions, extractSignature(node, source, file.Path, &mod.Issues))
			}

		case "struct_item":
			if public {
				mod.Structs = append(mod.Structs, extractStruct(node, source, file.Path, &mod.Issues))
			}

		case "enum_item":
			if public {
				mod.Enums = append(mod.Enums, extractEnum(node, source, file.Path, &mod.Issues))
			}

		case "trait_item":
			if public {
				mod.Traits = append(mod.Traits, extractTrait(node, source, file.Path, &mod.Issues))
			}

		case "impl_item":
			if pending, ok := collectImpl(node, source, file.Path, &mod.Issues); ok {
				mod.PendingMethods = append(mod.PendingMethods, pending)
			}

		case "macro_definition":
			if !item.HasAttr(source, "macro_export") {
				continue
			}
			if name := node.ChildByFieldName("name"); name != nil {
				mod.Functions = append(mod.Functions, macroStub(file.Text(name)))
			} else {
				mod.Issues = append(mod.Issues, unnamedMacroIssue(file, node))
			}

		case "macro_invocation":
			// An export-marked item macro has no stable resolvable name.
			if item.HasAttr(source, "macro_export") {
				mod.Issues = append(mod.Issues, unnamedMacroIssue(file, node))
			}
		}
	}

	sort.SliceStable(mod.PendingMethods, func(i, j int) bool {
		return mod.PendingMethods[i].Target < mod.PendingMethods[j].Target
	})
	w.modules = append(w.modules, *mod)
	return nil
}

func unnamedMacroIssue(file *rustparse.File, node *sitter.Node) Issue {
	return Issue{
		File:    file.Path,
		Kind:    IssueMacro,
		Snippet: normalizeWS(file.Text(node)),
		Reason:  "Encountered #[macro_export] macro without a stable name.",
	}
}

// resolveChildModule maps a public `mod name;` declaration to a file,
// mirroring rustc's layout rules: a sibling file named after the module
// wins, then a subdirectory of that name containing mod.rs. Neither
// existing means the crate's declared structure does not match its on-disk
// layout, which is fatal.
func resolveChildModule(baseDir, name string) (string, error) {
	direct := filepath.Join(baseDir, name+".rs")
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}
	nested := filepath.Join(baseDir, name, "mod.rs")
	if _, err := os.Stat(nested); err == nil {
		return nested, nil
	}
	return "", fmt.Errorf("could not resolve pub mod '%s' from base directory %s", name, baseDir)
}

// moduleBaseDir is the directory a file's own child modules resolve
// against: the parent directory for root and module-root files, otherwise a
// subdirectory named after the file's stem.
func moduleBaseDir(path string) string {
	parent := filepath.Dir(path)
	name := filepath.Base(path)
	switch name {
	case "lib.rs", "main.rs", "mod.rs":
		return parent
	}
	stem := name[:len(name)-len(filepath.Ext(name))]
	return filepath.Join(parent, stem)
}

// canonicalPath resolves a path to canonical absolute form (symlinks
// included) so the visited set keys on file identity, not spelling.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
