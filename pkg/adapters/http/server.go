// Package http exposes a read-only introspection surface over the fabric:
// registered components, their health, the capability catalog and Prometheus
// metrics. It is an operational debug endpoint, not the library boundary —
// collaborators interact with the fabric in-process.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/mycelium/pkg/catalog"
	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the introspection API.
type Server struct {
	Registry *discovery.Registry
	Catalog  *catalog.Catalog
}

// NewHandler builds the HTTP handler.
// The gatherer backs GET /metrics; pass nil to disable the endpoint.
func NewHandler(registry *discovery.Registry, cat *catalog.Catalog, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{Registry: registry, Catalog: cat}

	r := chi.NewRouter()
	r.Get("/components", s.listComponents)
	r.Get("/components/{id}", s.getComponent)
	r.Get("/components/{id}/health", s.getHealth)
	r.Get("/catalog", s.listCatalog)
	r.Get("/catalog/{id}", s.getCatalogEntry)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) listComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.List())
}

func (s *Server) getComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.Registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "component not registered")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	health := s.Registry.Health(id)
	status := http.StatusOK
	if health == ports.HealthUnknown {
		if _, ok := s.Registry.Get(id); !ok {
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, map[string]any{"id": id, "health": health})
}

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, s.Catalog.Discover(q))
		return
	}
	writeJSON(w, http.StatusOK, s.Catalog.ListAll())
}

func (s *Server) getCatalogEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
