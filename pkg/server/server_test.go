package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/metric"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandlerRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metric.NewNav(reg).Toggles.Increment("collapsed")

	srv := New(
		WithCORS("http://localhost:3000"),
		WithSimpleHealth(),
		WithPrometheusMetrics(),
		WithRegistry(reg),
		WithTimeouts(5*time.Second, 0, 0),
		WithRoutes(func(r chi.Router) {
			r.Get("/routed/{id}", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(chi.URLParam(r, "id")))
			})
		}),
	)

	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = get(t, srv.Handler(), "/routed/42")
	assert.Equal(t, "42", rec.Body.String())

	rec = get(t, srv.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sidenav_toggles_total{state="collapsed"} 1`)

	rec = get(t, srv.Handler(), "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSCredentials(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		origin      string
		credentials string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "https://other.example", credentials: ""},
		{name: "local", origins: []string{"http://localhost:*"}, origin: "http://localhost:3000", credentials: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(WithCORS(tt.origins...), WithSimpleHealth())

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.credentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := New(WithPort(0), WithShutdownTimeout(time.Second), WithSimpleHealth())
	assert.False(t, srv.IsRunning())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	require.Eventually(t, srv.IsRunning, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.False(t, srv.IsRunning())
}

func TestServeTLSMissingCert(t *testing.T) {
	srv := New(WithPort(0), WithTLS(TLSConfig{CertFile: "missing.pem", KeyFile: "missing.key"}))
	err := srv.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLS certificate")
}

