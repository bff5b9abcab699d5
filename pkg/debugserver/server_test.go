package debugserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	s := New(Options{})
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestStateSnapshotJSON(t *testing.T) {
	s := New(Options{
		State: func() any {
			return map[string]any{"engine_state": "ready", "user": map[string]any{"cpu": 0.5}}
		},
	})
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	code, body := get(t, srv, "/api/state")
	require.Equal(t, http.StatusOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "ready", got["engine_state"])
}

func TestFramePlainText(t *testing.T) {
	s := New(Options{Frame: func() string { return "╭──╮\n╰──╯" }})
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	code, body := get(t, srv, "/api/frame")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "╭──╮")
}

func TestMissingProvidersReturn404(t *testing.T) {
	s := New(Options{})
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	code, _ := get(t, srv, "/api/state")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = get(t, srv, "/api/frame")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetricsEndpointServesPrometheus(t *testing.T) {
	s := New(Options{})
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	code, body := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "go_goroutines")
}
