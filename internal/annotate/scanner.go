package annotate

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultExcludedTags lists element names whose subtrees are never scanned.
// Code and preformatted blocks keep their text literal, links keep their
// navigable text intact, and script-bearing elements carry no prose.
var DefaultExcludedTags = []string{
	"a", "code", "pre", "kbd", "samp", "script", "style", "textarea",
}

// Scanner enumerates the text leaves of a subtree that are eligible for
// annotation, in document order.
type Scanner struct {
	excluded map[string]bool
	marker   *Marker
}

// NewScanner creates a Scanner that skips the given element names and any
// subtree the marker reports as processed.
func NewScanner(excludedTags []string, marker *Marker) *Scanner {
	excluded := make(map[string]bool, len(excludedTags))
	for _, tag := range excludedTags {
		excluded[strings.ToLower(tag)] = true
	}
	return &Scanner{excluded: excluded, marker: marker}
}

// TextLeaves returns the eligible text leaves beneath root. A root already
// marked processed yields nothing, and the exclusion rules apply to the root
// itself: selecting an excluded element as a region does not override them.
// Leaves are collected before any rewriting happens, so nodes spliced in by
// the rewriter are never re-visited within the same pass.
func (s *Scanner) TextLeaves(root *html.Node) []*html.Node {
	if s.marker.Processed(root) {
		return nil
	}

	var leaves []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if s.skip(n) {
				return
			}
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				leaves = append(leaves, n)
			}
			return
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return leaves
}

// skip reports whether the element and everything beneath it is ineligible:
// excluded tag, an existing annotation (re-annotating annotated content
// would nest tooltips), or a subtree already processed in an earlier pass.
func (s *Scanner) skip(n *html.Node) bool {
	if s.excluded[strings.ToLower(n.Data)] {
		return true
	}
	if IsAnnotation(n) {
		return true
	}
	return s.marker.Processed(n)
}
