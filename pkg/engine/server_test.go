package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeway/routeway/pkg/config"
)

func TestServerStartServeStop(t *testing.T) {
	rt := newTestRouter(t, []config.RouteConfig{
		{Route: "/ping", Mock: &config.MockRoute{Status: 200, Body: map[string]any{"pong": true}}},
	})

	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, rt)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	}()

	addr := srv.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", addr))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"pong":true}`, string(body))

	resp2, err := http.Get(fmt.Sprintf("http://%s/nope", addr))
	require.NoError(t, err)
	_ = resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestServerStopBeforeStart(t *testing.T) {
	srv := NewServer(config.ServerConfig{}, http.NotFoundHandler())
	assert.NoError(t, srv.Stop(context.Background()))
}
