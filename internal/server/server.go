// Package server exposes the annotated site, the glossary resource, and an
// annotation endpoint over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/termtip/termtip/internal/annotate"
	"github.com/termtip/termtip/internal/glossary"
)

// Config holds server configuration.
type Config struct {
	Port         int
	SiteDir      string   // directory containing the generated site ("" disables static serving)
	Regions      []string // default region selectors for the annotate endpoint
	ExcludeTags  []string
	GlossaryLink string
	AllowAll     bool // allow all CORS origins (dev mode)
}

// Server serves the glossary API and static annotated documentation. The
// stored vocabulary can be re-imported at runtime; each import swaps in a
// freshly compiled annotator and notifies connected pages to reload.
type Server struct {
	cfg        Config
	store      *glossary.Store
	router     chi.Router
	httpServer *http.Server
	reload     *reloadHub

	mu        sync.RWMutex
	dict      *glossary.Dictionary
	annotator *annotate.Annotator
}

// New creates a Server backed by the given term store. The initial
// vocabulary is loaded from the store; an empty store yields an inert
// annotator until an import arrives.
func New(cfg Config, store *glossary.Store) (*Server, error) {
	dict, err := store.Dictionary()
	if err != nil {
		return nil, fmt.Errorf("loading stored glossary: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		reload: newReloadHub(),
	}
	s.swapDictionary(dict)
	s.router = s.buildRouter()
	return s, nil
}

// swapDictionary installs a new vocabulary and a matching annotator.
func (s *Server) swapDictionary(dict *glossary.Dictionary) {
	annotator := annotate.New(dict,
		annotate.WithExcludedTags(s.cfg.ExcludeTags),
		annotate.WithGlossaryLink(s.cfg.GlossaryLink),
	)
	s.mu.Lock()
	s.dict = dict
	s.annotator = annotator
	s.mu.Unlock()
}

// dictionary returns the current vocabulary.
func (s *Server) dictionary() *glossary.Dictionary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dict
}

// freshAnnotator compiles a new annotator from the current vocabulary.
// Each request gets its own so processed-subtree state never leaks between
// unrelated documents.
func (s *Server) freshAnnotator() *annotate.Annotator {
	s.mu.RLock()
	dict := s.dict
	s.mu.RUnlock()
	return annotate.New(dict,
		annotate.WithExcludedTags(s.cfg.ExcludeTags),
		annotate.WithGlossaryLink(s.cfg.GlossaryLink),
	)
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerRoutes(r)

	r.Get("/ws/reload", s.reload.handleWebsocket)

	if s.cfg.SiteDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("termtip server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
