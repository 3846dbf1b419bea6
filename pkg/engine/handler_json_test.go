package engine

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeway/routeway/pkg/config"
)

func newJSONRouter(t *testing.T, document string) *Router {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	return newTestRouter(t, []config.RouteConfig{
		{Route: "/data/**", RewritePath: "/$1", JSON: &config.JSONRoute{Path: path}},
	})
}

func patchRequest(rt *Router, target, contentType, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, r)
	return w
}

func TestJSONHandlerGet(t *testing.T) {
	rt := newJSONRouter(t, `{"users":[{"name":"ada"}],"empty":{}}`)

	w := doRequest(rt, http.MethodGet, "/data/users/0/name")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"ada"`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, doRequest(rt, http.MethodGet, "/data/users/5").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(rt, http.MethodGet, "/data/missing").Code)
}

func TestJSONHandlerPatch(t *testing.T) {
	rt := newJSONRouter(t, `{"a":{"b":1}}`)

	w := patchRequest(rt, "/data/a", "application/json", `[{"op":"add","path":"/c","value":2}]`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(rt, http.MethodGet, "/data/a/c")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Body.String())
}

func TestJSONHandlerPatchStatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		wantCode    int
	}{
		{
			name:        "failed test op conflicts",
			target:      "/data/a",
			contentType: "application/json",
			body:        `[{"op":"test","path":"/b","value":999}]`,
			wantCode:    http.StatusConflict,
		},
		{
			name:        "bad pointer",
			target:      "/data/missing",
			contentType: "application/json",
			body:        `[{"op":"add","path":"/x","value":1}]`,
			wantCode:    http.StatusNotFound,
		},
		{
			name:        "missing patch path",
			target:      "/data/a",
			contentType: "application/json",
			body:        `[{"op":"replace","path":"/zzz","value":1}]`,
			wantCode:    http.StatusNotFound,
		},
		{
			name:        "malformed patch",
			target:      "/data/a",
			contentType: "application/json",
			body:        `{"not":"a patch"`,
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "wrong content type",
			target:      "/data/a",
			contentType: "text/plain",
			body:        `[]`,
			wantCode:    http.StatusUnsupportedMediaType,
		},
		{
			name:     "absent content type",
			target:   "/data/a",
			body:     `[]`,
			wantCode: http.StatusUnsupportedMediaType,
		},
		{
			name:        "json suffix type accepted",
			target:      "/data/a",
			contentType: "application/json-patch+json",
			body:        `[{"op":"replace","path":"/b","value":5}]`,
			wantCode:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newJSONRouter(t, `{"a":{"b":1}}`)
			w := patchRequest(rt, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode != http.StatusOK {
				// A rejected patch leaves the document untouched.
				got := doRequest(rt, http.MethodGet, "/data/a/b")
				assert.Equal(t, "1", got.Body.String())
			}
		})
	}
}

func TestJSONHandlerMethodFilter(t *testing.T) {
	rt := newJSONRouter(t, `{"a":1}`)

	// Default filter is GET and PATCH; DELETE declines without
	// touching the document.
	w := doRequest(rt, http.MethodDelete, "/data/a")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	got := doRequest(rt, http.MethodGet, "/data/a")
	assert.Equal(t, "1", got.Body.String())
}

func TestJSONRouteStartupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	_, err := NewRouter([]config.RouteConfig{
		{Route: "/data/**", JSON: &config.JSONRoute{Path: path}},
	})
	require.Error(t, err)
}
