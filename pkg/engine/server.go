package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/routeway/routeway/pkg/config"
	"github.com/routeway/routeway/pkg/logging"
)

const (
	defaultHost         = "localhost"
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
)

// Server runs the gateway's HTTP listener around a Router. Connection
// level timeouts live here; the router imposes none of its own.
type Server struct {
	cfg      config.ServerConfig
	handler  http.Handler
	log      *slog.Logger
	server   *http.Server
	listener net.Listener
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the server's logger.
func WithServerLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a Server serving handler with the given listener
// settings.
func NewServer(cfg config.ServerConfig, handler http.Handler, opts ...ServerOption) *Server {
	s := &Server{
		cfg:     cfg,
		handler: handler,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listener and begins serving in a background
// goroutine. It returns once the listener is bound, so Addr reports
// the actual address even with port 0.
func (s *Server) Start() error {
	host := s.cfg.Host
	if host == "" {
		host = defaultHost
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", s.cfg.Port)))
	if err != nil {
		return fmt.Errorf("failed to bind %s:%d: %w", host, s.cfg.Port, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  timeoutOrDefault(s.cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: timeoutOrDefault(s.cfg.WriteTimeout, defaultWriteTimeout),
	}

	scheme := "http"
	if s.cfg.TLS != nil {
		scheme = "https"
	}
	s.log.Info("listening", "url", fmt.Sprintf("%s://%s", scheme, listener.Addr()))

	go func() {
		var err error
		if tls := s.cfg.TLS; tls != nil {
			err = s.server.ServeTLS(listener, tls.CertFile, tls.KeyFile)
		} else {
			err = s.server.Serve(listener)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server execution failed", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight
// requests up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func timeoutOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
