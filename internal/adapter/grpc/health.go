package grpc

import (
	"go.uber.org/zap"
	googlegrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name the directory reports under grpc.health.v1.Health
const ServiceName = "userdirectory.UserDirectory"

// HealthServer reports the serving status of the directory.
type HealthServer struct {
	*health.Server
	log *zap.Logger
}

// NewHealthServer creates a health server with the overall status and
// ServiceName both SERVING.
func NewHealthServer(log *zap.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &HealthServer{Server: hs, log: log}
}

// Shutdown marks every service NOT_SERVING so load balancers drain the instance
// before the listener closes.
func (h *HealthServer) Shutdown() {
	h.log.Info("gRPC health status set to NOT_SERVING")
	h.Server.Shutdown()
}

// NewServer creates a gRPC server with interceptors chained in order and the
// health and reflection services registered.
func NewServer(h *HealthServer, interceptors ...googlegrpc.UnaryServerInterceptor) *googlegrpc.Server {
	s := googlegrpc.NewServer(googlegrpc.ChainUnaryInterceptor(interceptors...))

	healthpb.RegisterHealthServer(s, h.Server)
	reflection.Register(s)

	return s
}
