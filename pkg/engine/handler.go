package engine

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/routeway/routeway/internal/matching"
	"github.com/routeway/routeway/pkg/config"
	"github.com/routeway/routeway/pkg/jsonstore"
)

// kindHandler is the kind-specific half of a route handler. path is
// the forwarded sub-path: the request's raw path, rewritten if the
// route declares a rewrite template.
type kindHandler interface {
	serve(r *http.Request, path string) *response
}

// Handler bundles a route's compiled pattern, resolved method filter,
// optional path rewriter, extra response headers and kind-specific
// logic. Immutable after construction and shared across all in-flight
// requests.
type Handler struct {
	pattern  *matching.Pattern
	methods  matching.MethodFilter
	rewriter *matching.Rewriter
	headers  http.Header
	kind     kindHandler
}

// newHandler builds the runtime handler for one configured route.
func newHandler(route *config.RouteConfig, pattern *matching.Pattern, client *http.Client, log *slog.Logger) (*Handler, error) {
	h := &Handler{
		pattern: pattern,
		methods: resolveMethodFilter(route),
		headers: http.Header{},
	}

	if route.RewritePath != "" {
		h.rewriter = matching.NewRewriter(pattern, route.RewritePath)
	}
	for key, value := range route.ResponseHeaders {
		h.headers.Set(key, value)
	}

	switch {
	case route.Dir != nil:
		h.kind = &dirHandler{root: route.Dir.Path, log: log}
	case route.File != nil:
		h.kind = &fileHandler{path: route.File.Path, log: log}
	case route.Proxy != nil:
		upstream, err := url.Parse(route.Proxy.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", route.Proxy.URL, err)
		}
		h.kind = &proxyHandler{upstream: upstream, client: client, log: log}
	case route.JSON != nil:
		store, err := jsonstore.Open(route.JSON.Path,
			jsonstore.WithPretty(route.JSON.Pretty),
			jsonstore.WithLogger(log))
		if err != nil {
			return nil, err
		}
		h.kind = &jsonHandler{store: store, log: log}
	case route.Mock != nil:
		h.kind = newMockHandler(route.Mock)
	default:
		return nil, fmt.Errorf("route %q declares no handler kind", route.Route)
	}

	return h, nil
}

// resolveMethodFilter picks the explicit method set when configured,
// otherwise the kind default: file and dir accept GET, json accepts
// GET and PATCH, proxy and mock accept any method.
func resolveMethodFilter(route *config.RouteConfig) matching.MethodFilter {
	if len(route.Methods) > 0 {
		return matching.MatchSet(route.Methods...)
	}
	switch {
	case route.Dir != nil, route.File != nil:
		return matching.MatchSet(http.MethodGet)
	case route.JSON != nil:
		return matching.MatchSet(http.MethodGet, http.MethodPatch)
	default:
		return matching.MatchAny()
	}
}

// serve runs the handler against a request. The second return value
// reports whether the response is final; a declined request returns
// false together with the fallback response the router may use if no
// later candidate accepts.
func (h *Handler) serve(r *http.Request) (*response, bool) {
	if !h.methods.Matches(r.Method) {
		return statusResponse(http.StatusMethodNotAllowed), false
	}

	path := r.URL.EscapedPath()
	if h.rewriter != nil {
		path = h.rewriter.Rewrite(path)
	}

	resp := h.kind.serve(r, path)
	resp.mergeHeaders(h.headers)
	return resp, true
}
