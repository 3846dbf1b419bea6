package engine

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/routeway/routeway/pkg/jsonstore"
)

// jsonHandler exposes a jsonstore.Store over HTTP. The forwarded
// sub-path, percent-decoded, is the JSON Pointer into the document.
type jsonHandler struct {
	store *jsonstore.Store
	log   *slog.Logger
}

func (h *jsonHandler) serve(r *http.Request, path string) *response {
	pointer, err := url.PathUnescape(path)
	if err != nil {
		h.log.Info("invalid percent-encoding in pointer", "path", path, "error", err)
		return statusResponse(http.StatusBadRequest)
	}
	switch r.Method {
	case http.MethodGet:
		return h.get(pointer)
	case http.MethodPatch:
		return h.patch(r, pointer)
	default:
		// Reached only with an explicit methods list wider than the
		// store supports.
		return statusResponse(http.StatusMethodNotAllowed)
	}
}

func (h *jsonHandler) get(pointer string) *response {
	data, err := h.store.Get(pointer)
	if err != nil {
		h.log.Info("pointer did not match document", "pointer", pointer)
		return statusResponse(http.StatusNotFound)
	}
	return jsonResponse(http.StatusOK, data)
}

func (h *jsonHandler) patch(r *http.Request, pointer string) *response {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return statusResponse(http.StatusUnsupportedMediaType)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error("error reading request body", "error", err)
		return statusResponse(http.StatusInternalServerError)
	}

	result, err := h.store.Patch(pointer, body)
	if err != nil {
		h.log.Info("patch failed", "pointer", pointer, "error", err)
		switch {
		case errors.Is(err, jsonstore.ErrTestFailed):
			return statusResponse(http.StatusConflict)
		case errors.Is(err, jsonstore.ErrNotFound):
			return statusResponse(http.StatusNotFound)
		default:
			return statusResponse(http.StatusBadRequest)
		}
	}
	return jsonResponse(http.StatusOK, result)
}

// isJSONContentType accepts application/json and any media type with a
// +json suffix.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
