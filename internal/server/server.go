// Package server implements the canopy HTTP service: a small JSON API
// for storing named graphs and rendering them as mermaid flowchart
// text. Rendered diagrams are cached by graph content and render flags.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/canopy/pkg/cache"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/mermaid"
	"github.com/matzehuels/canopy/pkg/observability"
)

// Server wires the graph store, the diagram cache, and the render
// handlers behind a chi router.
type Server struct {
	store    Store
	diagrams cache.Cache
	ttl      time.Duration
	flags    []string
	log      *log.Logger
}

// New creates a Server. defaultFlags are renderer config names applied
// when a request carries no flag parameters; ttl bounds cached diagram
// lifetime.
func New(store Store, diagrams cache.Cache, ttl time.Duration, defaultFlags []string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    store,
		diagrams: diagrams,
		ttl:      ttl,
		flags:    defaultFlags,
		log:      logger,
	}
}

// Handler returns the HTTP handler for the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/graphs", s.handleListGraphs)
		r.Route("/graphs/{name}", func(r chi.Router) {
			r.Put("/", s.handlePutGraph)
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteGraph)
			r.Get("/diagram", s.handleGetDiagram)
		})
	})
	return r
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger assigns each request an ID, logs it at debug level, and
// reports it to the registered API hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		s.log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)

		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders the graph document in the request body without
// storing it. Render flags come from repeated "flag" query parameters.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var doc graph.Doc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid graph document"))
		return
	}
	s.renderDoc(w, r, doc)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var doc graph.Doc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid graph document"))
		return
	}
	// Reject documents with dangling edge references before storing.
	if _, err := graph.FromDoc(doc); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidDocument, "%v", err))
		return
	}

	if err := s.store.Put(r.Context(), name, doc); err != nil {
		s.log.Error("store put failed", "name", name, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeStore, "store failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if stderrors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGraphNotFound, "no graph named %q", name))
		return
	}
	if err != nil {
		s.log.Error("store get failed", "name", name, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeStore, "store failed"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.log.Error("store delete failed", "name", name, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeStore, "store failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("store list failed", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeStore, "store failed"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if stderrors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeGraphNotFound, "no graph named %q", name))
		return
	}
	if err != nil {
		s.log.Error("store get failed", "name", name, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeStore, "store failed"))
		return
	}
	s.renderDoc(w, r, doc)
}

// renderDoc renders doc as mermaid text, consulting the diagram cache
// first. The cache key covers both graph content and render flags.
func (s *Server) renderDoc(w http.ResponseWriter, r *http.Request, doc graph.Doc) {
	flags := r.URL.Query()["flag"]
	if len(flags) == 0 {
		flags = s.flags
	}

	configs := make([]mermaid.Config, 0, len(flags))
	for _, name := range flags {
		c, ok := mermaid.ParseConfig(name)
		if !ok {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidFlag, "unknown render flag: %s", name))
			return
		}
		configs = append(configs, c)
	}

	ctx := r.Context()
	key, ok := s.cacheKey(doc, flags)
	if ok {
		if data, hit, err := s.diagrams.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "diagram")
			writeDiagram(w, data)
			return
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	g, err := graph.FromDoc(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidDocument, "%v", err))
		return
	}

	observability.Render().OnRenderStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	text := mermaid.WithConfig(g, configs...).String()
	observability.Render().OnRenderComplete(ctx, len(text), time.Since(start), nil)

	if ok {
		if err := s.diagrams.Set(ctx, key, []byte(text), s.ttl); err != nil {
			s.log.Warn("diagram cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "diagram", len(text))
		}
	}
	writeDiagram(w, []byte(text))
}

// cacheKey derives a stable cache key from graph content and flags.
// Reports false when the document cannot be hashed.
func (s *Server) cacheKey(doc graph.Doc, flags []string) (string, bool) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}
	sorted := append([]string(nil), flags...)
	sort.Strings(sorted)
	return cache.DiagramKey(cache.Hash(data), sorted), true
}

func writeDiagram(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits a JSON error body with the human-readable message
// and, when the error carries one, its machine-readable code.
func writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]string{"error": errors.UserMessage(err)}
	if code := errors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}
