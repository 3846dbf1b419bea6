package engine

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"

	"github.com/google/uuid"

	"github.com/routeway/routeway/internal/matching"
	"github.com/routeway/routeway/pkg/config"
	"github.com/routeway/routeway/pkg/logging"
)

// Router dispatches requests across the configured routes. Immutable
// after construction and shared by reference across all request
// goroutines.
type Router struct {
	handlers []*Handler
	log      *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*routerOptions)

type routerOptions struct {
	log    *slog.Logger
	client *http.Client
}

// WithLogger sets the router's logger.
func WithLogger(log *slog.Logger) RouterOption {
	return func(o *routerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClient sets the shared upstream HTTP client used by every proxy
// route. Defaults to a single pooled client per router.
func WithClient(client *http.Client) RouterOption {
	return func(o *routerOptions) {
		if client != nil {
			o.client = client
		}
	}
}

// NewRouter compiles the configured routes into a Router. Routes are
// sorted ascending by specificity score; ties keep configuration
// order. JSON routes load their backing file here, so a parse failure
// aborts construction.
func NewRouter(routes []config.RouteConfig, opts ...RouterOption) (*Router, error) {
	o := routerOptions{
		log:    logging.Nop(),
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	type compiled struct {
		route   *config.RouteConfig
		pattern *matching.Pattern
	}
	compiledRoutes := make([]compiled, 0, len(routes))
	for i := range routes {
		pattern, err := matching.Compile(routes[i].Route)
		if err != nil {
			return nil, err
		}
		compiledRoutes = append(compiledRoutes, compiled{route: &routes[i], pattern: pattern})
	}

	sort.SliceStable(compiledRoutes, func(i, j int) bool {
		return compiledRoutes[i].pattern.Score().Less(compiledRoutes[j].pattern.Score())
	})

	handlers := make([]*Handler, 0, len(compiledRoutes))
	for _, c := range compiledRoutes {
		h, err := newHandler(c.route, c.pattern, o.client, o.log)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}

	return &Router{
		handlers: handlers,
		log:      o.log,
	}, nil
}

// ServeHTTP implements http.Handler. It always produces a response:
// request-path errors resolve to statuses at the point of detection,
// and a panic anywhere in dispatch becomes a 500.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := rt.log.With("requestId", uuid.NewString())
	rt.dispatch(r, log).write(w)
}

// dispatch tries every matching candidate in specificity order. If a
// candidate declines, its fallback response is kept and the next
// candidate is tried; the last fallback is returned when all decline.
func (rt *Router) dispatch(r *http.Request, log *slog.Logger) (resp *response) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("panic while handling request",
				"method", r.Method, "path", r.URL.Path,
				"panic", p, "stack", string(debug.Stack()))
			resp = statusResponse(http.StatusInternalServerError)
		}
	}()

	fallback := statusResponse(http.StatusNotFound)
	matched := false

	path := r.URL.EscapedPath()
	for _, h := range rt.handlers {
		if !h.pattern.Match(path) {
			continue
		}
		matched = true
		candidate, ok := h.serve(r)
		if ok {
			return candidate
		}
		fallback = candidate
	}

	if !matched {
		log.Info("path did not match any route", "path", r.URL.Path)
	}
	return fallback
}
