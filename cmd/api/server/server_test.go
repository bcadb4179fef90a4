package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user-directory-service/cmd/api/di"
	"user-directory-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(grpcEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.HTTPPort = "0"
	cfg.App.GRPCPort = "0"
	cfg.App.GRPCEnabled = grpcEnabled
	cfg.App.ShutdownTimeoutSeconds = 2
	cfg.Users.SeedDefaults = true
	cfg.Users.IDStrategy = "max"
	cfg.Logger.ServiceVersion = "2.0.0"
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	l := zaptest.NewLogger(t)
	c, err := di.NewContainer(context.Background(), cfg, l)
	require.NoError(t, err)
	return New(cfg, l, c)
}

func TestNew(t *testing.T) {
	s := newTestServer(t, testConfig(true))
	assert.NotNil(t, s.Gin)
	assert.NotNil(t, s.GRPC)

	s = newTestServer(t, testConfig(false))
	assert.NotNil(t, s.Gin)
	assert.Nil(t, s.GRPC)
}

func TestServer_Handler(t *testing.T) {
	s := newTestServer(t, testConfig(false))

	w := httptest.NewRecorder()
	s.Gin.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	for _, grpcEnabled := range []bool{true, false} {
		s := newTestServer(t, testConfig(grpcEnabled))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	}
}

func TestServer_RunPortInUse(t *testing.T) {
	lis, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lis.Close() })

	_, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)

	cfg := testConfig(false)
	cfg.App.HTTPPort = port
	s := newTestServer(t, cfg)

	err = s.Run(context.Background())
	assert.Error(t, err)
}
