package middleware

import (
	"context"

	"user-directory-service/internal/adapter/ratelimit"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RateLimit returns a gRPC unary interceptor that consumes one token per call
// from the bucket keyed by method and client IP.
func RateLimit(limiter *ratelimit.Limiter, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !limiter.Enabled() {
			return handler(ctx, req)
		}

		ip := clientIP(ctx)
		key := "grpc:" + info.FullMethod + ":" + ip

		allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			// On Redis error, allow request to proceed (fail open)
			log.Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", ip),
				zap.String("method", info.FullMethod),
				zap.Error(err),
			)
			return handler(ctx, req)
		}

		if !allowed {
			cfg := limiter.Config()
			log.Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", info.FullMethod),
				zap.Float64("limit", cfg.RequestsPerSecond),
				zap.Int("burst", cfg.BurstCapacity),
			)
			return nil, status.Errorf(codes.ResourceExhausted,
				"rate limit exceeded (limit: %.0f req/s, burst: %d)",
				cfg.RequestsPerSecond, cfg.BurstCapacity)
		}

		return handler(ctx, req)
	}
}

// clientIP extracts the client IP address from the gRPC context.
func clientIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if xff := md.Get("x-forwarded-for"); len(xff) > 0 {
			return xff[0]
		}
		if xri := md.Get("x-real-ip"); len(xri) > 0 {
			return xri[0]
		}
	}

	if p, ok := peer.FromContext(ctx); ok {
		return p.Addr.String()
	}

	return "unknown"
}
