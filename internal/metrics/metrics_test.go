package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersWithoutPanic(t *testing.T) {
	m := New()
	require.NotNil(t, m)

	// Two instances must not collide since each uses a private registry.
	assert.NotPanics(t, func() { New() })
}

func TestRecordCompile_ShowsUpInHandler(t *testing.T) {
	m := New()
	m.RecordCompile("success", 0.5)
	m.RecordCompile("error", 1.2)
	m.GraphNodes.Set(7)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.Contains(text, `solgraph_compiles_total{status="success"} 1`))
	assert.True(t, strings.Contains(text, `solgraph_compiles_total{status="error"} 1`))
	assert.True(t, strings.Contains(text, "solgraph_graph_nodes 7"))
}

func TestMiddleware_RecordsRequests(t *testing.T) {
	m := New()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/healthz", "/healthz", "/missing"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.Contains(text, `http_requests_total{method="GET",path="/healthz",status="200"} 2`))
	assert.True(t, strings.Contains(text, `http_requests_total{method="GET",path="/missing",status="404"} 1`))
	assert.True(t, strings.Contains(text, `http_request_duration_seconds_count{method="GET",path="/healthz"} 2`))
}
