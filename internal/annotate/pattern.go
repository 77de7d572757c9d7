// Package annotate locates glossary term occurrences in parsed HTML and
// rewrites the tree to wrap each occurrence in an interactive annotation,
// leaving all untouched text verbatim.
package annotate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/termtip/termtip/internal/glossary"
)

// Match is one term occurrence within a single text leaf. Offsets are byte
// positions into the leaf's text. Matches returned for a leaf never overlap
// and are ordered by Start ascending.
type Match struct {
	Key   string
	Start int
	End   int
}

// Pattern is the matcher compiled from a dictionary. Matching is
// case-sensitive and anchored on word boundaries; keys are matched as
// literal text.
type Pattern struct {
	re   *regexp.Regexp
	keys []string
}

// Compile builds a Pattern from all dictionary keys. Keys are sorted longest
// first with a stable tie-break on dictionary order; Go's regexp alternation
// is leftmost-first, so listing "SLA Credit" before "SLA" guarantees the
// longer key wins at any shared position. An empty dictionary compiles to a
// pattern that matches nothing.
func Compile(dict *glossary.Dictionary) *Pattern {
	keys := dict.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	if len(keys) == 0 {
		return &Pattern{}
	}

	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = regexp.QuoteMeta(k)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
	return &Pattern{re: re, keys: keys}
}

// Empty reports whether the pattern can never match.
func (p *Pattern) Empty() bool {
	return p == nil || p.re == nil
}

// FindAll returns all term occurrences in text, left to right. The scan is
// global and non-overlapping, so no two matches share any offset. A text
// without occurrences yields an empty result, not an error.
func (p *Pattern) FindAll(text string) []Match {
	if p.Empty() {
		return nil
	}
	locs := p.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Key:   text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return matches
}

// Keys returns the compiled key order, longest first.
func (p *Pattern) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}
