package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// fileHandler serves one fixed file.
type fileHandler struct {
	path string
	log  *slog.Logger
}

func (h *fileHandler) serve(_ *http.Request, _ string) *response {
	return fileResponse(h.path, h.log)
}

// fileResponse reads the file into memory and builds a 200 response
// with a guessed Content-Type. A missing file maps to 404; any other
// I/O failure is logged and maps to 500 without echoing the error to
// the client.
func fileResponse(path string, log *slog.Logger) *response {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return statusResponse(http.StatusNotFound)
		}
		log.Error("error reading file", "path", path, "error", err)
		return statusResponse(http.StatusInternalServerError)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Length", fmt.Sprintf("%d", len(data)))

	return &response{
		status: http.StatusOK,
		header: header,
		body:   io.NopCloser(bytes.NewReader(data)),
	}
}
