package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/crate-surface/internal/config"
	"github.com/mvp-joe/crate-surface/internal/surface"
	"github.com/mvp-joe/crate-surface/internal/watcher"
)

var (
	prettyFlag bool
	outputFlag string
	watchFlag  bool
	quietFlag  bool
)

// rootCmd is the extractor itself: one crate manifest in, one JSON document
// out.
var rootCmd = &cobra.Command{
	Use:   "crate-surface <crate-manifest>",
	Short: "Extract the public API surface of a Rust crate",
	Long: `crate-surface walks a Rust crate's module tree from src/lib.rs and emits a
deterministic JSON description of its public API surface: constants,
functions, structs, enums, traits, inherent-impl method groups, and exported
macros. Constructs the schema cannot express are reported as issues in the
document instead of failing the run.

The document is written to stdout (or --output) and is consumed by the
downstream binding generator.

Examples:
  # Extract a crate
  crate-surface path/to/Cargo.toml

  # Human-readable output
  crate-surface --pretty path/to/Cargo.toml

  # Keep an output file up to date as the crate changes
  crate-surface --watch --output surface.json path/to/Cargo.toml
`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

// Execute runs the root command. Any fatal condition prints a single line on
// stderr and exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&prettyFlag, "pretty", false, "Indent the JSON document")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the document to a file instead of stdout")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-extract whenever the crate's source changes (requires --output)")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-error output in watch mode")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	pretty := prettyFlag || cfg.Output.Pretty
	outputPath := outputFlag
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}

	// Usage errors must fail before anything reaches stdout.
	if watchFlag && outputPath == "" {
		return fmt.Errorf("--watch requires --output so stdout stays a single document")
	}

	manifest := args[0]

	// The initial extraction is fatal on any structural error, watch mode
	// or not: a crate that does not form a valid module tree has no surface
	// to keep up to date.
	doc, err := surface.Extract(manifest)
	if err != nil {
		return err
	}
	if err := writeDocument(doc, outputPath, pretty); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	return watchCrate(manifest, outputPath, pretty, cfg)
}

// watchCrate blocks, re-extracting the crate on every debounced batch of
// source changes until interrupted. Re-extraction failures are logged and
// the watcher keeps running; only the initial extraction aborts the process.
func watchCrate(manifest, outputPath string, pretty bool, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if !quietFlag {
			log.Println("Interrupted, stopping watch mode")
		}
		cancel()
	}()

	srcDir := filepath.Join(filepath.Dir(manifest), "src")
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond

	cw, err := watcher.New(srcDir, debounce, cfg.CompiledIgnores())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", srcDir, err)
	}
	defer cw.Stop()

	err = cw.Start(ctx, func(files []string) {
		if !quietFlag {
			log.Printf("Detected %d changed file(s), re-extracting", len(files))
		}
		doc, err := surface.Extract(manifest)
		if err != nil {
			log.Printf("Extraction failed: %v", err)
			return
		}
		if err := writeDocument(doc, outputPath, pretty); err != nil {
			log.Printf("Write failed: %v", err)
			return
		}
		if !quietFlag {
			log.Printf("Updated %s (%d modules)", outputPath, len(doc.Modules))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !quietFlag {
		log.Printf("Watching %s for changes", srcDir)
	}
	<-ctx.Done()
	return nil
}

// writeDocument serializes the document to outputPath, or stdout when the
// path is empty.
func writeDocument(doc *surface.Output, outputPath string, pretty bool) error {
	if outputPath == "" {
		return doc.WriteJSON(os.Stdout, pretty)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	if err := doc.WriteJSON(f, pretty); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
