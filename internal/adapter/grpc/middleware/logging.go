package middleware

import (
	"context"
	"time"

	"user-directory-service/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Logging returns a gRPC unary interceptor that writes one log line per call.
// It must run after logger.RequestIDInterceptor to pick up the request ID.
func Logging(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}

		l := logger.WithContext(ctx, log)
		if err != nil {
			l.Warn("gRPC request", append(fields, zap.Error(err))...)
		} else {
			l.Debug("gRPC request", fields...)
		}

		return resp, err
	}
}
