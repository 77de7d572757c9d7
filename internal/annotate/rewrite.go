package annotate

import "golang.org/x/net/html"

// rewriteLeaf replaces one text leaf with a fragment interleaving untouched
// text runs and annotation nodes, walking matches in ascending order. The
// rewrite is lossless: concatenating the emitted text segments and the
// annotation trigger texts reproduces the original leaf text exactly. Only
// the matched leaf is detached; no other node is touched.
func (a *Annotator) rewriteLeaf(leaf *html.Node, matches []Match) int {
	parent := leaf.Parent
	if parent == nil || len(matches) == 0 {
		return 0
	}

	original := leaf.Data
	cursor := 0
	count := 0
	for _, m := range matches {
		if m.Start > cursor {
			parent.InsertBefore(text(original[cursor:m.Start]), leaf)
		}
		term, ok := a.dict.Lookup(m.Key)
		if !ok {
			// The pattern is derived from the dictionary, so this should not
			// happen; emit the matched text verbatim to keep the rewrite
			// lossless regardless.
			parent.InsertBefore(text(original[m.Start:m.End]), leaf)
		} else {
			parent.InsertBefore(a.factory.Build(m.Key, term), leaf)
			count++
		}
		cursor = m.End
	}
	if cursor < len(original) {
		parent.InsertBefore(text(original[cursor:]), leaf)
	}

	parent.RemoveChild(leaf)
	return count
}
