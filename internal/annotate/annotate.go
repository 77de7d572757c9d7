package annotate

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/termtip/termtip/internal/glossary"
)

// Annotator applies one compiled glossary to document subtrees. The pattern
// is compiled once from the dictionary and reused for every leaf; the
// dictionary is read-only after construction.
type Annotator struct {
	dict    *glossary.Dictionary
	pattern *Pattern
	scanner *Scanner
	factory *Factory
	marker  *Marker

	warned bool
}

// Option configures an Annotator.
type Option func(*settings)

type settings struct {
	excludedTags []string
	glossaryHref string
}

// WithExcludedTags replaces the default set of element names whose subtrees
// are never annotated.
func WithExcludedTags(tags []string) Option {
	return func(s *settings) {
		if len(tags) > 0 {
			s.excludedTags = tags
		}
	}
}

// WithGlossaryLink sets the target of every annotation's reference link.
func WithGlossaryLink(href string) Option {
	return func(s *settings) { s.glossaryHref = href }
}

// New creates an Annotator for the given dictionary. A nil or empty
// dictionary produces an inert annotator: scans log a warning and perform
// no mutation.
func New(dict *glossary.Dictionary, opts ...Option) *Annotator {
	s := settings{
		excludedTags: DefaultExcludedTags,
		glossaryHref: DefaultGlossaryHref,
	}
	for _, opt := range opts {
		opt(&s)
	}

	marker := NewMarker()
	return &Annotator{
		dict:    dict,
		pattern: Compile(dict),
		scanner: NewScanner(s.excludedTags, marker),
		factory: NewFactory(s.glossaryHref),
		marker:  marker,
	}
}

// AnnotateDocument annotates every region of doc matched by the given
// selectors. A selector matching no elements is a valid, silently accepted
// outcome. Returns the number of annotations added.
func (a *Annotator) AnnotateDocument(doc *html.Node, selectors []string) (int, error) {
	if a.inert() {
		return 0, nil
	}

	total := 0
	for _, selector := range selectors {
		sel, err := cascadia.Parse(selector)
		if err != nil {
			return total, fmt.Errorf("parsing selector %q: %w", selector, err)
		}
		for _, region := range cascadia.QueryAll(doc, sel) {
			total += a.AnnotateSubtree(region)
		}
	}
	return total, nil
}

// AnnotateSubtree annotates one region root and marks it processed. Invoking
// it twice on the same root performs work at most once; the second call is a
// no-op and the tree is unchanged.
func (a *Annotator) AnnotateSubtree(root *html.Node) int {
	if a.inert() || a.marker.Processed(root) {
		return 0
	}

	count := 0
	for _, leaf := range a.scanner.TextLeaves(root) {
		count += a.annotateLeaf(leaf)
	}
	a.marker.Mark(root)
	return count
}

// annotateLeaf matches and rewrites a single text leaf. Failures are
// isolated here so one malformed leaf cannot abort the remaining traversal.
func (a *Annotator) annotateLeaf(leaf *html.Node) (count int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("termtip: skipping leaf after error: %v", r)
			count = 0
		}
	}()

	matches := a.pattern.FindAll(leaf.Data)
	if len(matches) == 0 {
		return 0
	}
	return a.rewriteLeaf(leaf, matches)
}

// AnnotateHTML parses a full HTML document from r, annotates the regions
// matched by selectors, and renders the result to w.
func (a *Annotator) AnnotateHTML(r io.Reader, w io.Writer, selectors []string) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parsing document: %w", err)
	}
	count, err := a.AnnotateDocument(doc, selectors)
	if err != nil {
		return count, err
	}
	if err := html.Render(w, doc); err != nil {
		return count, fmt.Errorf("rendering document: %w", err)
	}
	return count, nil
}

// AnnotateFragment annotates an HTML fragment (anything valid inside <body>)
// and returns the rewritten fragment. With no selectors the whole fragment
// is treated as a single region.
func (a *Annotator) AnnotateFragment(fragment string, selectors []string) (string, int, error) {
	body := elem(atom.Body, "body")
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", 0, fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var count int
	if len(selectors) == 0 {
		count = a.AnnotateSubtree(body)
	} else {
		count, err = a.AnnotateDocument(body, selectors)
		if err != nil {
			return "", count, err
		}
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", count, fmt.Errorf("rendering fragment: %w", err)
		}
	}
	return buf.String(), count, nil
}

// inert reports whether annotation should be skipped outright, logging the
// reason once.
func (a *Annotator) inert() bool {
	if a.dict.Len() > 0 {
		return false
	}
	if !a.warned {
		log.Printf("termtip: no glossary terms loaded; skipping annotation")
		a.warned = true
	}
	return true
}
