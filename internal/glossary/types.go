// Package glossary defines the term vocabulary consumed by the annotation
// engine, plus loaders for the supported glossary sources (JSON, YAML, HTTP).
package glossary

// Term is one glossary entry: a key as it appears in document text, a
// display name, and a short definition shown in the tooltip popup.
type Term struct {
	Key             string `json:"-" yaml:"-"`
	FullName        string `json:"full_name" yaml:"full_name"`
	ShortDefinition string `json:"short_definition" yaml:"short_definition"`
}

// Dictionary is an immutable key → Term mapping. The order in which terms
// appeared in the source is preserved; the pattern compiler uses it to break
// ties between keys of equal length.
type Dictionary struct {
	entries map[string]Term
	keys    []string
}

// New builds a Dictionary from terms in the given order. Terms with empty
// keys are dropped; on duplicate keys the first occurrence wins.
func New(terms []Term) *Dictionary {
	d := &Dictionary{entries: make(map[string]Term, len(terms))}
	for _, t := range terms {
		if t.Key == "" {
			continue
		}
		if _, exists := d.entries[t.Key]; exists {
			continue
		}
		d.entries[t.Key] = t
		d.keys = append(d.keys, t.Key)
	}
	return d
}

// Lookup returns the term for the given key. Matching is case-sensitive.
func (d *Dictionary) Lookup(key string) (Term, bool) {
	if d == nil {
		return Term{}, false
	}
	t, ok := d.entries[key]
	return t, ok
}

// Keys returns all term keys in source order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of terms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Terms returns all entries in source order.
func (d *Dictionary) Terms() []Term {
	if d == nil {
		return nil
	}
	out := make([]Term, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.entries[k])
	}
	return out
}
