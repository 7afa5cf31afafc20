package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/halocline/station-map-etl/internal/adapter/http"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockInventory struct {
	labels []string
}

func (m *mockInventory) Labels() []string { return m.labels }
func (m *mockInventory) Len() int         { return len(m.labels) }

func newTestServer(readyErr error, zones httpadapter.ZoneInventory) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, zones, slog.Default())
}

func doRequest(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := doRequest(newTestServer(nil, nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := doRequest(newTestServer(nil, nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := doRequest(newTestServer(fmt.Errorf("no records processed"), nil), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no records processed", body["error"])
}

func TestZoneszReportsDisabledWithoutInventory(t *testing.T) {
	rec := doRequest(newTestServer(nil, nil), "/zonesz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["enabled"])
}

func TestZoneszListsLoadedZones(t *testing.T) {
	inv := &mockInventory{labels: []string{"Georges Bank", "Gulf of Maine"}}
	rec := doRequest(newTestServer(nil, inv), "/zonesz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Enabled bool     `json:"enabled"`
		Count   int      `json:"count"`
		Zones   []string `json:"zones"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Enabled)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"Georges Bank", "Gulf of Maine"}, body.Zones)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(nil, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
