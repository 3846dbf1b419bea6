package engine

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// hopByHopHeaders are connection-scoped and never forwarded upstream.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// proxyHandler forwards requests to an upstream URL. All proxy
// handlers share one connection-pooled client constructed by the
// router.
type proxyHandler struct {
	upstream *url.URL
	client   *http.Client
	log      *slog.Logger
}

func (h *proxyHandler) serve(r *http.Request, path string) *response {
	target, err := h.composeTarget(path)
	if err != nil {
		h.log.Info("path produced invalid upstream uri", "path", path, "error", err)
		return statusResponse(http.StatusNotFound)
	}

	h.log.Debug("forwarding request", "path", r.URL.Path, "target", target)

	out, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		h.log.Info("failed to build upstream request", "target", target, "error", err)
		return statusResponse(http.StatusNotFound)
	}
	copyHeaders(out.Header, r.Header)
	removeHopByHopHeaders(out.Header)
	// The outbound Host header is the upstream authority, not the
	// client-supplied one.
	out.Host = h.upstream.Host

	resp, err := h.client.Do(out)
	if err != nil {
		h.log.Error("error forwarding request", "target", target, "error", err)
		return statusResponse(http.StatusInternalServerError)
	}

	header := http.Header{}
	copyHeaders(header, resp.Header)
	removeHopByHopHeaders(header)

	return &response{
		status: resp.StatusCode,
		header: header,
		body:   resp.Body,
	}
}

// composeTarget joins the forwarded sub-path onto the configured
// upstream URL and validates the result.
func (h *proxyHandler) composeTarget(path string) (string, error) {
	pathAndQuery := appendPath(h.upstream, path)
	target := h.upstream.Scheme + "://" + h.upstream.Host + pathAndQuery
	if _, err := url.ParseRequestURI(target); err != nil {
		return "", err
	}
	return target, nil
}

// appendPath concatenates the upstream base path and the forwarded
// sub-path, deduplicating a doubled slash at the seam and inserting
// one when neither side provides it. The base URL's query string is
// appended unchanged; a query carried on the sub-path itself is not
// merged. When the upstream has no base path, the sub-path is used
// verbatim.
func appendPath(base *url.URL, path string) string {
	basePath := base.EscapedPath()
	if basePath == "" && base.RawQuery == "" {
		return path
	}

	result := basePath
	switch {
	case strings.HasSuffix(result, "/") && strings.HasPrefix(path, "/"):
		result = result[:len(result)-1]
	case !strings.HasSuffix(result, "/") && !strings.HasPrefix(path, "/"):
		result += "/"
	}
	result += path

	if base.RawQuery != "" {
		result += "?" + base.RawQuery
	}
	return result
}

// copyHeaders copies headers from src to dst.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

// removeHopByHopHeaders removes headers that must not cross the proxy,
// including those named by the Connection header.
func removeHopByHopHeaders(h http.Header) {
	for _, field := range h.Values("Connection") {
		for _, name := range strings.Split(field, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		h.Del(name)
	}
}
