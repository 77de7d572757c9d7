package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/termtip/termtip/internal/annotate"
	"github.com/termtip/termtip/internal/glossary"
	"github.com/termtip/termtip/internal/progress"
)

func testDict() *glossary.Dictionary {
	return glossary.New([]glossary.Term{
		{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	})
}

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func newTestGenerator(t *testing.T, docs string, dict *glossary.Dictionary) (*Generator, string) {
	t.Helper()
	out := t.TempDir()
	g := NewGenerator(docs, out, "Test Project", dict, annotate.New(dict))
	g.Reporter = &progress.CIReporter{}
	return g, out
}

func TestGenerateAnnotatedSite(t *testing.T) {
	docs := t.TempDir()
	writeDoc(t, docs, "index.md", "# Welcome\n\nOur SLA covers uptime.\n")
	writeDoc(t, docs, "guide/usage.md", "# Usage\n\nNothing relevant here.\n")

	g, out := newTestGenerator(t, docs, testDict())
	pages, annotations, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pages != 3 { // two documents plus the glossary page
		t.Errorf("pages = %d, want 3", pages)
	}
	if annotations != 1 {
		t.Errorf("annotations = %d, want 1", annotations)
	}

	index := readOutput(t, out, "index.html")
	if !strings.Contains(index, `data-term="SLA"`) {
		t.Error("index.html missing annotation wrapper")
	}
	if !strings.Contains(index, annotate.ClassPopup) {
		t.Error("index.html missing popup markup")
	}
	if !strings.Contains(index, "termtip.js") {
		t.Error("index.html does not load the interaction script")
	}

	usage := readOutput(t, out, "guide/usage.html")
	if strings.Contains(usage, `data-term=`) {
		t.Error("usage.html gained annotations without occurrences")
	}

	for _, asset := range []string{"style.css", "termtip.js", "glossary.html"} {
		if _, err := os.Stat(filepath.Join(out, asset)); err != nil {
			t.Errorf("missing asset %s: %v", asset, err)
		}
	}
}

func TestGenerateGlossaryPage(t *testing.T) {
	docs := t.TempDir()
	writeDoc(t, docs, "index.md", "# Home\n\nplain\n")

	g, out := newTestGenerator(t, docs, testDict())
	if _, _, err := g.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	page := readOutput(t, out, "glossary.html")
	if !strings.Contains(page, `<dt id="SLA">`) {
		t.Error("glossary page missing term anchor")
	}
	if !strings.Contains(page, "Uptime promise.") {
		t.Error("glossary page missing definition")
	}
}

func TestGlossaryPageEscapesKeys(t *testing.T) {
	docs := t.TempDir()
	writeDoc(t, docs, "index.md", "# Home\n\nplain\n")

	dict := glossary.New([]glossary.Term{
		{Key: `café "au lait"`, FullName: "Café au lait", ShortDefinition: "Coffee with milk."},
	})
	g, out := newTestGenerator(t, docs, dict)
	if _, _, err := g.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	page := readOutput(t, out, "glossary.html")
	if !strings.Contains(page, `<dt id="café &#34;au lait&#34;">`) {
		t.Errorf("key not rendered with HTML attribute escaping: %s", page)
	}
	if strings.Contains(page, `\u`) || strings.Contains(page, `\"`) {
		t.Error("glossary page contains Go escape sequences")
	}
}

func TestGenerateWithEmptyDictionary(t *testing.T) {
	docs := t.TempDir()
	writeDoc(t, docs, "index.md", "# Home\n\nThe SLA applies.\n")

	dict := glossary.New(nil)
	g, out := newTestGenerator(t, docs, dict)
	pages, annotations, err := g.Generate()
	if err != nil {
		t.Fatalf("site generation must survive an empty glossary: %v", err)
	}
	if pages != 2 {
		t.Errorf("pages = %d, want 2", pages)
	}
	if annotations != 0 {
		t.Errorf("annotations = %d, want 0", annotations)
	}

	index := readOutput(t, out, "index.html")
	if strings.Contains(index, "data-term=") {
		t.Error("empty glossary produced annotations")
	}
	if !strings.Contains(index, "The SLA applies.") {
		t.Error("page content lost")
	}
}

func TestGenerateHTMLPassthrough(t *testing.T) {
	docs := t.TempDir()
	writeDoc(t, docs, "report.html",
		`<html><body><div class="report-section"><p>The SLA applies.</p></div></body></html>`)

	g, out := newTestGenerator(t, docs, testDict())
	if _, annotations, err := g.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	} else if annotations != 1 {
		t.Errorf("annotations = %d, want 1", annotations)
	}

	report := readOutput(t, out, "report.html")
	if !strings.Contains(report, `data-term="SLA"`) {
		t.Error("HTML file not annotated")
	}
}

func TestGenerateEmptyDocsDir(t *testing.T) {
	g, _ := newTestGenerator(t, t.TempDir(), testDict())
	if _, _, err := g.Generate(); err == nil {
		t.Error("expected error for a docs dir with no documents")
	}
}

func TestInteractionScriptEmbedsContract(t *testing.T) {
	js := InteractionScript()
	for _, want := range []string{
		annotate.ClassTerm,
		annotate.ClassIndicator,
		annotate.ClassPopup,
		"900",
	} {
		if !strings.Contains(js, want) {
			t.Errorf("interaction script missing %q", want)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	if got := extractTitle("# My Title\n\nbody", "x.md"); got != "My Title" {
		t.Errorf("extractTitle = %q", got)
	}
	if got := extractTitle("no heading", "getting_started.md"); got == "" {
		t.Error("fallback title empty")
	}
}
