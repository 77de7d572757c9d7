package annotate

import "golang.org/x/net/html"

// ProcessedAttr marks a subtree root whose annotation pass has completed.
// It survives serialization, so re-running the tool over already-annotated
// output skips those regions too.
const ProcessedAttr = "data-termtip-processed"

// Marker tracks which subtree roots have already been annotated. Identity is
// kept both in a side table (for roots visited within this process) and as
// an attribute on the root element (for roots round-tripped through files).
//
// Once a root is marked it is never re-scanned, even if new matching content
// is later inserted beneath it. That staleness is deliberate: re-scanning a
// processed root would change the idempotency contract.
type Marker struct {
	done map[*html.Node]struct{}
}

// NewMarker returns an empty Marker.
func NewMarker() *Marker {
	return &Marker{done: make(map[*html.Node]struct{})}
}

// Mark records that annotation of root has completed.
func (m *Marker) Mark(root *html.Node) {
	m.done[root] = struct{}{}
	if root.Type != html.ElementNode {
		return
	}
	for _, attr := range root.Attr {
		if attr.Key == ProcessedAttr {
			return
		}
	}
	root.Attr = append(root.Attr, html.Attribute{Key: ProcessedAttr, Val: "true"})
}

// Processed reports whether root has already been annotated.
func (m *Marker) Processed(root *html.Node) bool {
	if _, ok := m.done[root]; ok {
		return true
	}
	if root.Type != html.ElementNode {
		return false
	}
	for _, attr := range root.Attr {
		if attr.Key == ProcessedAttr {
			return true
		}
	}
	return false
}
