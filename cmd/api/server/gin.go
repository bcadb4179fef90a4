package server

import (
	"net/http"
	"time"

	ginhandler "user-directory-service/internal/adapter/gin/handler"
	ginrouter "user-directory-service/internal/adapter/gin/router"
	"user-directory-service/internal/adapter/ratelimit"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	userHandler *ginhandler.UserHandler,
	mockHandler *ginhandler.MockHandler,
	rateLimiter *ratelimit.Limiter,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(userHandler, mockHandler, rateLimiter, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
