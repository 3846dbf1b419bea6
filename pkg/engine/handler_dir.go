package engine

import (
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// dirHandler serves files under a base directory, located by the
// forwarded sub-path.
type dirHandler struct {
	root string
	log  *slog.Logger
}

func (h *dirHandler) serve(_ *http.Request, path string) *response {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		h.log.Info("invalid percent-encoding in path", "path", path, "error", err)
		return statusResponse(http.StatusBadRequest)
	}

	components, ok := sanitizePath(decoded)
	if !ok {
		h.log.Info("rejected path escaping the served directory", "path", decoded)
		return statusResponse(http.StatusNotFound)
	}

	target := filepath.Join(h.root, filepath.Join(components...))
	return fileResponse(target, h.log)
}

// sanitizePath normalizes a decoded sub-path into a component sequence
// that cannot escape the served root. Root and current-directory
// markers are dropped; a parent-directory component pops the last
// accumulated component when one exists and otherwise rejects the
// whole path; a drive marker rejects outright.
func sanitizePath(path string) ([]string, bool) {
	var components []string
	for _, component := range strings.Split(path, "/") {
		switch component {
		case "", ".":
			// Root or current-directory marker.
		case "..":
			if len(components) == 0 {
				return nil, false
			}
			components = components[:len(components)-1]
		default:
			if isDriveMarker(component) {
				return nil, false
			}
			components = append(components, component)
		}
	}
	return components, true
}

// isDriveMarker reports whether a component looks like a Windows drive
// prefix such as "C:".
func isDriveMarker(component string) bool {
	if len(component) != 2 || component[1] != ':' {
		return false
	}
	c := component[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
