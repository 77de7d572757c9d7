package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termtip/termtip/internal/annotate"
	"github.com/termtip/termtip/internal/progress"
	"github.com/termtip/termtip/internal/walker"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [files...]",
	Short: "Annotate HTML documents with glossary tooltips",
	Long: `Loads the glossary, scans the configured regions of each HTML document
for term occurrences, and wraps them in tooltip markup. With no arguments,
documents are discovered under docs_dir using the configured include and
exclude patterns. The pass is idempotent: regions already annotated are
skipped.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringSlice("selector", nil, "region selectors to scan (overrides configured regions)")
	annotateCmd.Flags().String("output", "", "write annotated copies to this directory instead of in place")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dict := loadGlossary(cmd.Context(), cfg)

	selectors, _ := cmd.Flags().GetStringSlice("selector")
	if len(selectors) == 0 {
		selectors = cfg.Regions
	}
	outputDir, _ := cmd.Flags().GetString("output")

	// Resolve the documents to annotate.
	var paths []string
	if len(args) > 0 {
		paths = args
	} else {
		files, err := walker.Walk(walker.WalkerConfig{
			RootDir: cfg.DocsDir,
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		})
		if err != nil {
			return fmt.Errorf("discovering documents: %w", err)
		}
		for _, f := range files {
			if f.Type == walker.DocHTML {
				paths = append(paths, f.Path)
			}
		}
	}
	if len(paths) == 0 {
		fmt.Println("No HTML documents to annotate.")
		return nil
	}

	annotator := annotate.New(dict,
		annotate.WithExcludedTags(cfg.ExcludeTags),
		annotate.WithGlossaryLink(cfg.GlossaryLink),
	)

	reporter := progress.NewReporter()
	reporter.Start(len(paths))

	total := 0
	for i, path := range paths {
		reporter.Update(i+1, path)
		n, err := annotateFile(annotator, path, outputDir, selectors)
		if err != nil {
			return fmt.Errorf("annotating %s: %w", path, err)
		}
		total += n
	}
	reporter.Finish()

	fmt.Printf("Annotated %d occurrences across %d documents\n", total, len(paths))
	return nil
}

// annotateFile rewrites one document, either in place or into outputDir.
func annotateFile(annotator *annotate.Annotator, path, outputDir string, selectors []string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var out bytes.Buffer
	count, err := annotator.AnnotateHTML(bytes.NewReader(content), &out, selectors)
	if err != nil {
		return 0, err
	}

	dest := path
	if outputDir != "" {
		dest = filepath.Join(outputDir, filepath.Base(path))
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return 0, err
		}
	}
	return count, os.WriteFile(dest, out.Bytes(), 0o644)
}
