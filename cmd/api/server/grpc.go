package server

import (
	grpcadapter "user-directory-service/internal/adapter/grpc"
	"user-directory-service/internal/adapter/grpc/middleware"
	"user-directory-service/internal/adapter/ratelimit"
	"user-directory-service/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// SetupGRPC creates the gRPC server exposing health and reflection
func SetupGRPC(health *grpcadapter.HealthServer, rateLimiter *ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	return grpcadapter.NewServer(health,
		logger.RequestIDInterceptor(),
		middleware.Logging(l),
		middleware.RateLimit(rateLimiter, l),
	)
}
