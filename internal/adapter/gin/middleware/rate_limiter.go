package middleware

import (
	"user-directory-service/internal/adapter/ratelimit"
	pkgerrors "user-directory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter returns a Gin middleware for rate limiting using the shared token bucket.
// Buckets are keyed by method, route pattern and client IP.
func RateLimiter(limiter *ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		clientIP := c.ClientIP()
		key := "http:" + c.Request.Method + ":" + path + ":" + clientIP

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Log error but allow request (fail-open strategy)
			log.Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", clientIP),
				zap.String("path", path),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			log.Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("method", c.Request.Method),
				zap.String("path", path),
			)
			apiErr := pkgerrors.NewTooManyRequestsError()
			c.AbortWithStatusJSON(apiErr.Status, gin.H{
				"status":  apiErr.Status,
				"message": apiErr.Message,
			})
			return
		}

		c.Next()
	}
}
