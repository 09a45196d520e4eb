package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bluegilltech/pca-wizard/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}

func newTestServer(t *testing.T, cfg *HTTPServerConfig) *Server {
	if cfg == nil {
		cfg = &HTTPServerConfig{}
	}
	cfg.Log = common.DiscardLogger()
	srv, err := New(cfg, pingHandler{})
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestServer_MountsHandlers(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := get(t, srv, "/ping")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/debug/pprof/").Code)
}

func TestServer_Liveness(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := get(t, srv, "/livez")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())
}

func TestServer_DrainUndrain(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)

	rr := get(t, srv, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, rr.Body.String())
	rr = get(t, srv, "/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, rr.Body.String())

	rr = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, rr.Body.String())

	rr = get(t, srv, "/undrain")
	assert.JSONEq(t, `{"status":"ready"}`, rr.Body.String())
	rr = get(t, srv, "/undrain")
	assert.JSONEq(t, `{"status":"already ready"}`, rr.Body.String())

	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestServer_ReadinessCheck(t *testing.T) {
	var storageUp atomic.Bool
	srv := newTestServer(t, &HTTPServerConfig{
		ReadinessCheck: func(context.Context) bool { return storageUp.Load() },
	})

	rr := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"storage unavailable"}`, rr.Body.String())

	storageUp.Store(true)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestServer_Pprof(t *testing.T) {
	srv := newTestServer(t, &HTTPServerConfig{EnablePprof: true})
	assert.Equal(t, http.StatusOK, get(t, srv, "/debug/pprof/").Code)
}
