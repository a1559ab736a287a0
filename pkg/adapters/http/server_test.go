package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/aretw0/mycelium/pkg/adapters/http"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/catalog"
	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/observability"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) http.Handler {
	t.Helper()

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)

	reg := discovery.NewRegistry(capability.DefaultLattice(), discovery.WithMetrics(metrics))
	t.Cleanup(reg.Close)

	handler := ports.HandlerFunc(func(_ context.Context, in intent.Intent) (any, error) {
		return in.Payload, nil
	})
	require.NoError(t, reg.Register("file-service", handler, map[string]any{"type": "file", "version": "1.2.0"}))

	cat := catalog.New()
	t.Cleanup(cat.Close)
	require.NoError(t, cat.Register(catalog.Entry{
		ID:     "file.reader",
		Intent: "Reads files from the workspace",
	}))

	return httpadapter.NewHandler(reg, cat, promReg)
}

func TestListComponents(t *testing.T) {
	h := fixture(t)

	req := httptest.NewRequest(http.MethodGet, "/components", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "file-service", records[0]["id"])
}

func TestGetComponent_NotFound(t *testing.T) {
	h := fixture(t)

	req := httptest.NewRequest(http.MethodGet, "/components/ghost", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	h := fixture(t)

	req := httptest.NewRequest(http.MethodGet, "/components/file-service/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["health"])
}

func TestCatalogEndpoints(t *testing.T) {
	h := fixture(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog?q=files", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "file.reader", entries[0]["id"])

	req = httptest.NewRequest(http.MethodGet, "/catalog/ghost", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := fixture(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mycelium_registered_components")
}
