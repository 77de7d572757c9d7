package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termtip/termtip/internal/annotate"
	"github.com/termtip/termtip/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate an annotated static documentation site",
	Long: `Renders the markdown documents under docs_dir to HTML, annotates
glossary term occurrences, and writes a self-contained static site including
a glossary page and the tooltip stylesheet and script.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local dev server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DocsDir); os.IsNotExist(err) {
		return fmt.Errorf("docs directory not found at %s", cfg.DocsDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	// Derive the project name from the working directory.
	projectName := "Documentation"
	if wd, wdErr := os.Getwd(); wdErr == nil && wd != "" {
		projectName = projectNameFromDir(wd)
	}

	dict := loadGlossary(cmd.Context(), cfg)
	annotator := annotate.New(dict,
		annotate.WithExcludedTags(cfg.ExcludeTags),
		annotate.WithGlossaryLink(cfg.GlossaryLink),
	)

	generator := site.NewGenerator(cfg.DocsDir, outputDir, projectName, dict, annotator)
	generator.Regions = cfg.Regions
	generator.Include = cfg.Include
	generator.Exclude = cfg.Exclude

	pages, annotations, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Annotated site generated: %s (%d pages, %d annotations)\n", outputDir, pages, annotations)

	serve, _ := cmd.Flags().GetBool("serve")
	if serve {
		port, _ := cmd.Flags().GetInt("port")
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}
	return nil
}

// projectNameFromDir turns a directory name into a display title.
func projectNameFromDir(dir string) string {
	words := strings.FieldsFunc(filepath.Base(dir), func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	if len(words) == 0 {
		return "Documentation"
	}
	return strings.Join(words, " ")
}
