package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeway/routeway/internal/matching"
	"github.com/routeway/routeway/pkg/config"
	"github.com/routeway/routeway/pkg/logging"
)

func newTestRouter(t *testing.T, routes []config.RouteConfig, opts ...RouterOption) *Router {
	t.Helper()
	rt, err := NewRouter(routes, opts...)
	require.NoError(t, err)
	return rt
}

func doRequest(rt *Router, method, target string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	for _, opt := range opts {
		opt(r)
	}
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, r)
	return w
}

func TestRouterSpecificityOrder(t *testing.T) {
	// Registered deliberately from least to most specific; dispatch
	// order must not depend on registration order.
	routes := []config.RouteConfig{
		{Route: "/**", Mock: &config.MockRoute{Status: 200, Body: "multi"}},
		{Route: "/*", Mock: &config.MockRoute{Status: 200, Body: "single"}},
		{Route: "/a", Mock: &config.MockRoute{Status: 200, Body: "literal"}},
	}
	rt := newTestRouter(t, routes)

	tests := []struct {
		path string
		want string
	}{
		{path: "/a", want: `"literal"`},
		{path: "/b", want: `"single"`},
		{path: "/b/c", want: `"multi"`},
	}
	for _, tt := range tests {
		w := doRequest(rt, http.MethodGet, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", tt.path)
		assert.Equal(t, tt.want, w.Body.String(), "path %s", tt.path)
	}
}

func TestRouterTieBreakByConfigOrder(t *testing.T) {
	routes := []config.RouteConfig{
		{Route: "/x/*", Mock: &config.MockRoute{Status: 200, Body: "first"}},
		{Route: "/*/y", Mock: &config.MockRoute{Status: 200, Body: "second"}},
	}
	rt := newTestRouter(t, routes)

	w := doRequest(rt, http.MethodGet, "/x/y")
	assert.Equal(t, `"first"`, w.Body.String())
}

func TestRouterNoMatch(t *testing.T) {
	rt := newTestRouter(t, []config.RouteConfig{
		{Route: "/only", Mock: &config.MockRoute{Status: 200}},
	})

	w := doRequest(rt, http.MethodGet, "/other")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterMethodFallthrough(t *testing.T) {
	// A POST-only mock shadows a GET-capable one on the same pattern
	// set; a GET must fall through the more specific candidate.
	routes := []config.RouteConfig{
		{Route: "/res", Methods: []string{"POST"}, Mock: &config.MockRoute{Status: 201, Body: "created"}},
		{Route: "/*", Mock: &config.MockRoute{Status: 200, Body: "fallback"}},
	}
	rt := newTestRouter(t, routes)

	w := doRequest(rt, http.MethodGet, "/res")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"fallback"`, w.Body.String())

	w = doRequest(rt, http.MethodPost, "/res")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouterAllCandidatesDecline(t *testing.T) {
	routes := []config.RouteConfig{
		{Route: "/res", Methods: []string{"POST"}, Mock: &config.MockRoute{Status: 201}},
		{Route: "/*", Methods: []string{"PUT"}, Mock: &config.MockRoute{Status: 200}},
	}
	rt := newTestRouter(t, routes)

	w := doRequest(rt, http.MethodGet, "/res")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterExplicitMethods(t *testing.T) {
	rt := newTestRouter(t, []config.RouteConfig{
		{Route: "/api", Methods: []string{"GET", "POST"}, Mock: &config.MockRoute{Status: 200}},
	})

	assert.Equal(t, http.StatusOK, doRequest(rt, http.MethodGet, "/api").Code)
	assert.Equal(t, http.StatusOK, doRequest(rt, http.MethodPost, "/api").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(rt, http.MethodPut, "/api").Code)
}

func TestRouterMergesResponseHeaders(t *testing.T) {
	rt := newTestRouter(t, []config.RouteConfig{
		{
			Route:           "/h",
			ResponseHeaders: map[string]string{"X-Gateway": "routeway", "Content-Type": "text/plain"},
			Mock:            &config.MockRoute{Status: 200, Body: "ok"},
		},
	})

	w := doRequest(rt, http.MethodGet, "/h")
	assert.Equal(t, "routeway", w.Header().Get("X-Gateway"))
	// Extra headers overwrite on collision.
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
}

func TestRouterInvalidPattern(t *testing.T) {
	_, err := NewRouter([]config.RouteConfig{
		{Route: "/bad pattern", Mock: &config.MockRoute{Status: 200}},
	})
	require.Error(t, err)
}

type panicKind struct{}

func (panicKind) serve(*http.Request, string) *response {
	panic("kaboom")
}

func TestRouterRecoversFromPanic(t *testing.T) {
	pattern, err := matching.Compile("/boom")
	require.NoError(t, err)

	rt := &Router{
		handlers: []*Handler{{
			pattern: pattern,
			methods: matching.MatchAny(),
			headers: http.Header{},
			kind:    panicKind{},
		}},
		log: logging.Nop(),
	}

	w := doRequest(rt, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The router keeps serving after a panic.
	w = doRequest(rt, http.MethodGet, "/elsewhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
