package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/termtip/termtip/internal/glossary"
)

// termPayload is the wire form of one glossary entry, matching the
// {"terms": {...}} resource shape.
type termPayload struct {
	FullName        string `json:"full_name"`
	ShortDefinition string `json:"short_definition"`
}

// termsResource is the glossary resource served to pages and accepted by
// the import endpoint.
type termsResource struct {
	Terms map[string]termPayload `json:"terms"`
}

// annotateRequest is the JSON body for POST /api/annotate.
type annotateRequest struct {
	HTML      string   `json:"html"`
	Selectors []string `json:"selectors,omitempty"`
}

// annotateResponse is the JSON response for POST /api/annotate.
type annotateResponse struct {
	HTML        string `json:"html"`
	Annotations int    `json:"annotations"`
}

// registerRoutes wires the glossary and annotation API onto the router.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/terms", s.handleListTerms)
		r.Get("/terms/{key}", s.handleGetTerm)
		r.Post("/terms/import", s.handleImportTerms)
		r.Post("/annotate", s.handleAnnotate)
	})
}

// handleListTerms serves the full glossary resource.
func (s *Server) handleListTerms(w http.ResponseWriter, r *http.Request) {
	dict := s.dictionary()
	resource := termsResource{Terms: make(map[string]termPayload, dict.Len())}
	for _, t := range dict.Terms() {
		resource.Terms[t.Key] = termPayload{
			FullName:        t.FullName,
			ShortDefinition: t.ShortDefinition,
		}
	}
	writeJSON(w, http.StatusOK, resource)
}

// handleGetTerm serves a single term by key.
func (s *Server) handleGetTerm(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	term, ok := s.dictionary().Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("term %q not found", key))
		return
	}
	writeJSON(w, http.StatusOK, map[string]termPayload{
		term.Key: {FullName: term.FullName, ShortDefinition: term.ShortDefinition},
	})
}

// handleImportTerms replaces the stored vocabulary. Connected pages are
// told to reload so they pick up the new annotations. The body is decoded
// with the order-preserving parser: the position column must record the
// order keys appeared on the wire, not map iteration order.
func (s *Server) handleImportTerms(w http.ResponseWriter, r *http.Request) {
	dict, err := glossary.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return
	}

	if err := s.store.Import(dict, r.RemoteAddr); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("importing terms: %s", err))
		return
	}
	s.swapDictionary(dict)
	s.reload.broadcast("glossary-updated")

	writeJSON(w, http.StatusOK, map[string]int{"imported": dict.Len()})
}

// handleAnnotate runs the scan-and-annotate pass over a submitted HTML
// fragment. With no selectors the whole fragment is one region.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HTML == "" {
		writeError(w, http.StatusBadRequest, "html is required")
		return
	}

	// Explicit selectors win; otherwise fall back to the configured region
	// set, and with neither the whole fragment is one region.
	selectors := req.Selectors
	if len(selectors) == 0 {
		selectors = s.cfg.Regions
	}

	annotated, count, err := s.freshAnnotator().AnnotateFragment(req.HTML, selectors)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("annotating: %s", err))
		return
	}
	writeJSON(w, http.StatusOK, annotateResponse{HTML: annotated, Annotations: count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
