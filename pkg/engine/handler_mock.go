package engine

import (
	"net/http"

	"github.com/routeway/routeway/pkg/config"
)

// mockHandler returns a canned response regardless of request content.
type mockHandler struct {
	status int
	body   any
}

func newMockHandler(route *config.MockRoute) *mockHandler {
	return &mockHandler{
		status: route.Status,
		body:   route.Body,
	}
}

func (h *mockHandler) serve(_ *http.Request, _ string) *response {
	if h.body == nil {
		return statusResponse(h.status)
	}
	return jsonValueResponse(h.status, h.body)
}
