package glossary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// The wire shape of a glossary resource is:
//
//	{ "terms": { "<key>": { "full_name": "...", "short_definition": "..." }, ... } }
//
// YAML files use the same structure. Decoding preserves the order in which
// keys appear in the source, since the pattern compiler tie-breaks on it.

// LoadFile reads a glossary from a local JSON or YAML file, chosen by
// extension.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glossary %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseYAML(data)
	default:
		return Parse(strings.NewReader(string(data)))
	}
}

// Fetch retrieves the glossary resource from a URL. A failure leaves the
// caller without a dictionary; the annotation pipeline stays inert in that
// case rather than erroring the host.
func Fetch(ctx context.Context, url string) (*Dictionary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building glossary request: %w", err)
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching glossary %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching glossary %s: status %s", url, resp.Status)
	}
	return Parse(resp.Body)
}

// Load resolves a glossary location that is either a URL or a file path.
func Load(ctx context.Context, location string) (*Dictionary, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return Fetch(ctx, location)
	}
	return LoadFile(location)
}

// Parse decodes the JSON glossary wire shape token by token so that the
// original key order survives (encoding/json map decoding would lose it).
// Every consumer of the resource, including the server import endpoint,
// must decode through it to keep ordering deterministic.
func Parse(r io.Reader) (*Dictionary, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing glossary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing glossary: expected object, got %v", tok)
	}

	var terms []Term
	sawTerms := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing glossary: %w", err)
		}
		key, _ := keyTok.(string)
		if key != "terms" {
			// Skip unrecognized top-level fields.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("parsing glossary: %w", err)
			}
			continue
		}
		sawTerms = true

		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing glossary terms: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, fmt.Errorf("parsing glossary: terms must be an object")
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parsing glossary terms: %w", err)
			}
			name, _ := nameTok.(string)
			var t Term
			if err := dec.Decode(&t); err != nil {
				return nil, fmt.Errorf("parsing glossary term %q: %w", name, err)
			}
			t.Key = name
			terms = append(terms, t)
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, fmt.Errorf("parsing glossary terms: %w", err)
		}
	}

	if !sawTerms {
		return nil, fmt.Errorf("parsing glossary: missing terms object")
	}
	return New(terms), nil
}

// parseYAML decodes the same structure from YAML via yaml.Node, which keeps
// mapping keys in document order.
func parseYAML(data []byte) (*Dictionary, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing glossary yaml: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing glossary yaml: expected mapping document")
	}

	root := doc.Content[0]
	var termsNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "terms" {
			termsNode = root.Content[i+1]
			break
		}
	}
	if termsNode == nil {
		return nil, fmt.Errorf("parsing glossary yaml: missing terms mapping")
	}
	if termsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing glossary yaml: terms must be a mapping")
	}

	var terms []Term
	for i := 0; i+1 < len(termsNode.Content); i += 2 {
		keyNode, valNode := termsNode.Content[i], termsNode.Content[i+1]
		var t Term
		if err := valNode.Decode(&t); err != nil {
			return nil, fmt.Errorf("parsing glossary term %q: %w", keyNode.Value, err)
		}
		t.Key = keyNode.Value
		terms = append(terms, t)
	}
	return New(terms), nil
}
