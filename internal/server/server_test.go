package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/termtip/termtip/internal/db"
	"github.com/termtip/termtip/internal/glossary"
)

func newTestServer(t *testing.T, cfg Config, terms ...glossary.Term) (*Server, *httptest.Server) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := glossary.NewStore(database)
	if len(terms) > 0 {
		if err := store.Import(glossary.New(terms), "test"); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	srv, err := New(cfg, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	resp := getJSON(t, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestListTerms(t *testing.T) {
	_, ts := newTestServer(t, Config{},
		glossary.Term{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	)

	var resource termsResource
	resp := getJSON(t, ts.URL+"/api/terms", &resource)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	p, ok := resource.Terms["SLA"]
	if !ok {
		t.Fatalf("SLA missing from %v", resource.Terms)
	}
	if p.FullName != "Service Level Agreement" {
		t.Errorf("full_name = %q", p.FullName)
	}
}

func TestGetTerm(t *testing.T) {
	_, ts := newTestServer(t, Config{},
		glossary.Term{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	)

	var payload map[string]termPayload
	resp := getJSON(t, ts.URL+"/api/terms/SLA", &payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, ok := payload["SLA"]; !ok {
		t.Errorf("unexpected payload %v", payload)
	}

	resp = getJSON(t, ts.URL+"/api/terms/Missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing term status = %d, want 404", resp.StatusCode)
	}
}

func TestImportTermsSwapsVocabulary(t *testing.T) {
	srv, ts := newTestServer(t, Config{})

	body := termsResource{Terms: map[string]termPayload{
		"Quorum": {FullName: "Quorum", ShortDefinition: "Minimum votes."},
	}}
	var result map[string]int
	resp := postJSON(t, ts.URL+"/api/terms/import", body, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if result["imported"] != 1 {
		t.Errorf("imported = %d, want 1", result["imported"])
	}

	if _, ok := srv.dictionary().Lookup("Quorum"); !ok {
		t.Error("live vocabulary not swapped after import")
	}

	// The store holds the new vocabulary too.
	n, err := srv.store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("stored count = %d, want 1", n)
	}
}

func TestImportPreservesWireOrder(t *testing.T) {
	srv, ts := newTestServer(t, Config{})

	// Equal-length keys so the pattern compiler's tie-break depends entirely
	// on the stored position order.
	keys := []string{"aa1", "aa2", "aa3", "aa4", "aa5", "aa6", "aa7", "aa8"}
	var body strings.Builder
	body.WriteString(`{"terms":{`)
	for i, k := range keys {
		if i > 0 {
			body.WriteString(",")
		}
		fmt.Fprintf(&body, `%q:{"full_name":%q,"short_definition":"d"}`, k, k)
	}
	body.WriteString(`}}`)

	resp, err := http.Post(ts.URL+"/api/terms/import", "application/json", strings.NewReader(body.String()))
	if err != nil {
		t.Fatalf("POST import: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	dict, err := srv.store.Dictionary()
	if err != nil {
		t.Fatal(err)
	}
	if got := dict.Keys(); !reflect.DeepEqual(got, keys) {
		t.Errorf("stored order %v, want source order %v", got, keys)
	}
	if got := srv.dictionary().Keys(); !reflect.DeepEqual(got, keys) {
		t.Errorf("live vocabulary order %v, want source order %v", got, keys)
	}
}

func TestImportRejectsMissingTerms(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	resp := postJSON(t, ts.URL+"/api/terms/import", map[string]int{"version": 1}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnnotateEndpoint(t *testing.T) {
	_, ts := newTestServer(t, Config{},
		glossary.Term{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	)

	var result annotateResponse
	resp := postJSON(t, ts.URL+"/api/annotate", annotateRequest{
		HTML: `<p>The SLA applies.</p>`,
	}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if result.Annotations != 1 {
		t.Errorf("annotations = %d, want 1", result.Annotations)
	}
	if !strings.Contains(result.HTML, `data-term="SLA"`) {
		t.Errorf("annotated output missing wrapper: %s", result.HTML)
	}
}

func TestAnnotateEndpointSelectors(t *testing.T) {
	_, ts := newTestServer(t, Config{Regions: []string{".report-section"}},
		glossary.Term{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	)

	// Only the configured region is annotated by default.
	var result annotateResponse
	postJSON(t, ts.URL+"/api/annotate", annotateRequest{
		HTML: `<div class="report-section"><p>SLA here.</p></div><div class="other"><p>SLA there.</p></div>`,
	}, &result)
	if result.Annotations != 1 {
		t.Errorf("annotations = %d, want 1 (configured region only)", result.Annotations)
	}

	// Explicit selectors override the configured regions.
	postJSON(t, ts.URL+"/api/annotate", annotateRequest{
		HTML:      `<div class="report-section"><p>SLA here.</p></div><div class="other"><p>SLA there.</p></div>`,
		Selectors: []string{".other"},
	}, &result)
	if result.Annotations != 1 {
		t.Errorf("annotations = %d, want 1 (explicit selector)", result.Annotations)
	}
	if !strings.Contains(result.HTML, "data-termtip-processed") {
		t.Errorf("selected region not marked processed: %s", result.HTML)
	}
}

func TestAnnotateEndpointValidation(t *testing.T) {
	_, ts := newTestServer(t, Config{},
		glossary.Term{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
	)

	resp := postJSON(t, ts.URL+"/api/annotate", annotateRequest{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty html status = %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/annotate", annotateRequest{
		HTML:      "<p>x</p>",
		Selectors: []string{"[[["},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad selector status = %d, want 400", resp.StatusCode)
	}
}
