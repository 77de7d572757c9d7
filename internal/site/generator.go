// Package site renders markdown documentation into a static HTML site whose
// pages carry glossary term annotations.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/termtip/termtip/internal/annotate"
	"github.com/termtip/termtip/internal/glossary"
	"github.com/termtip/termtip/internal/progress"
	"github.com/termtip/termtip/internal/walker"
)

// Generator converts documentation sources into an annotated static site.
// Markdown files are rendered to HTML first; HTML files pass through the
// annotator directly.
type Generator struct {
	DocsDir     string
	OutputDir   string
	ProjectName string
	Regions     []string
	Include     []string
	Exclude     []string
	Reporter    progress.Reporter

	dict      *glossary.Dictionary
	annotator *annotate.Annotator
}

// NewGenerator creates a Generator. The annotator may be inert (empty
// dictionary); the site still renders, just without annotations.
func NewGenerator(docsDir, outputDir, projectName string, dict *glossary.Dictionary, annotator *annotate.Annotator) *Generator {
	return &Generator{
		DocsDir:     docsDir,
		OutputDir:   outputDir,
		ProjectName: projectName,
		dict:        dict,
		annotator:   annotator,
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	TreeHTML    template.HTML
	BasePath    string
}

// Generate builds the full annotated site. Returns the number of pages
// written and the total number of annotations added.
func (g *Generator) Generate() (int, int, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.DocsDir,
		Include: g.Include,
		Exclude: g.Exclude,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("discovering documents: %w", err)
	}
	if len(files) == 0 {
		return 0, 0, fmt.Errorf("no markdown or HTML files found in %s", g.DocsDir)
	}

	// Build title map from H1 headings for sidebar display names.
	titleMap := make(map[string]string)
	var relPaths []string
	for _, f := range files {
		relPaths = append(relPaths, f.RelPath)
		if f.Type == walker.DocMarkdown {
			if content, err := os.ReadFile(f.Path); err == nil {
				titleMap[f.RelPath] = extractTitle(string(content), f.RelPath)
			}
		}
	}

	tree := BuildTree(relPaths, titleMap)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, 0, err
	}

	// Static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "termtip.js"), []byte(InteractionScript()), 0o644); err != nil {
		return 0, 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing page template: %w", err)
	}

	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.NewReporter()
	}
	reporter.Start(len(files))

	annotations := 0
	for i, f := range files {
		reporter.Update(i+1, f.RelPath)
		n, err := g.renderPage(md, tmpl, tree, f)
		if err != nil {
			return 0, annotations, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		annotations += n
	}
	reporter.Finish()

	// The glossary page is the fixed target of every annotation's link.
	if err := g.writeGlossaryPage(tmpl, tree); err != nil {
		return 0, annotations, fmt.Errorf("writing glossary page: %w", err)
	}

	return len(files) + 1, annotations, nil
}

// renderPage converts a single source file to an annotated HTML page.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, tree *FileTree, f walker.FileInfo) (int, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}

	var page bytes.Buffer
	var htmlRelPath string

	switch f.Type {
	case walker.DocMarkdown:
		var htmlBuf bytes.Buffer
		if err := md.Convert(content, &htmlBuf); err != nil {
			return 0, fmt.Errorf("converting markdown: %w", err)
		}

		htmlRelPath = sourcePathToHTML(f.RelPath)
		basePath := basePathFor(htmlRelPath)
		title := extractTitle(string(content), f.RelPath)

		// The article wrapper carries the report-section class so the
		// default region selectors find the rendered content.
		body := `<div class="report-section">` + htmlBuf.String() + `</div>`

		data := pageData{
			Title:       title,
			ProjectName: g.ProjectName,
			Content:     template.HTML(body),
			TreeHTML:    template.HTML(tree.ToHTML(f.RelPath, basePath)),
			BasePath:    basePath,
		}
		if err := tmpl.Execute(&page, data); err != nil {
			return 0, err
		}

	case walker.DocHTML:
		// Standalone HTML files pass through the annotator unchanged
		// apart from annotation markup.
		htmlRelPath = f.RelPath
		page.Write(content)
	}

	// Annotate the assembled page. Failure to annotate degrades to the
	// unannotated page rather than losing it.
	var annotated bytes.Buffer
	count, err := g.annotator.AnnotateHTML(bytes.NewReader(page.Bytes()), &annotated, g.regions())
	if err != nil {
		annotated.Reset()
		annotated.Write(page.Bytes())
		count = 0
	}

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}
	return count, os.WriteFile(outPath, annotated.Bytes(), 0o644)
}

// writeGlossaryPage emits glossary.html listing every term.
func (g *Generator) writeGlossaryPage(tmpl *template.Template, tree *FileTree) error {
	var b strings.Builder
	b.WriteString("<h1>Glossary</h1>\n")
	if g.dict.Len() == 0 {
		b.WriteString("<p>No glossary terms are configured.</p>\n")
	} else {
		b.WriteString(`<dl class="termtip-glossary">` + "\n")
		for _, t := range g.dict.Terms() {
			// HTML attribute quoting, not Go %q: non-ASCII keys must render
			// as-is, not as Go escape sequences.
			fmt.Fprintf(&b, "<dt id=\"%s\">%s</dt>\n<dd>%s</dd>\n",
				template.HTMLEscapeString(t.Key),
				template.HTMLEscapeString(t.FullName),
				template.HTMLEscapeString(t.ShortDefinition))
		}
		b.WriteString("</dl>\n")
	}

	data := pageData{
		Title:       "Glossary",
		ProjectName: g.ProjectName,
		Content:     template.HTML(b.String()),
		TreeHTML:    template.HTML(tree.ToHTML("", "")),
		BasePath:    "",
	}

	f, err := os.Create(filepath.Join(g.OutputDir, "glossary.html"))
	if err != nil {
		return err
	}
	defer f.Close()
	return tmpl.Execute(f, data)
}

// regions returns the configured region selectors, defaulting to the
// annotator's report-section conventions.
func (g *Generator) regions() []string {
	if len(g.Regions) > 0 {
		return g.Regions
	}
	return []string{".report-section"}
}

// basePathFor computes the relative prefix back to the site root.
func basePathFor(htmlRelPath string) string {
	depth := strings.Count(htmlRelPath, "/")
	return strings.Repeat("../", depth)
}

// extractTitle pulls the first # heading from markdown content, or falls
// back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return cleanDisplayName(filepath.Base(relPath))
}
