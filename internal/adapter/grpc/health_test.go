package grpc

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	googlegrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, interceptors ...googlegrpc.UnaryServerInterceptor) (*HealthServer, *googlegrpc.Server, healthpb.HealthClient) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	hs := NewHealthServer(zaptest.NewLogger(t))
	srv := NewServer(hs, interceptors...)

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := googlegrpc.NewClient("passthrough:///bufnet",
		googlegrpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		googlegrpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return hs, srv, healthpb.NewHealthClient(conn)
}

func TestHealth_Serving(t *testing.T) {
	_, _, client := startServer(t)

	for _, service := range []string{"", ServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), service)
	}
}

func TestHealth_UnknownService(t *testing.T) {
	_, _, client := startServer(t)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealth_Shutdown(t *testing.T) {
	hs, _, client := startServer(t)

	hs.Shutdown()

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealth_InterceptorsRun(t *testing.T) {
	var methods []string
	record := func(ctx context.Context, req any, info *googlegrpc.UnaryServerInfo, handler googlegrpc.UnaryHandler) (any, error) {
		methods = append(methods, info.FullMethod)
		return handler(ctx, req)
	}
	_, _, client := startServer(t, record)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/grpc.health.v1.Health/Check"}, methods)
}

func TestNewServer_RegistersServices(t *testing.T) {
	_, srv, _ := startServer(t)

	info := srv.GetServiceInfo()
	assert.Contains(t, info, "grpc.health.v1.Health")

	hasReflection := false
	for name := range info {
		if strings.HasPrefix(name, "grpc.reflection.") {
			hasReflection = true
		}
	}
	assert.True(t, hasReflection)
}
