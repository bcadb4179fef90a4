package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"user-directory-service/cmd/api/di"
	grpcadapter "user-directory-service/internal/adapter/grpc"
	"user-directory-service/internal/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
	GRPC   *grpc.Server
	Health *grpcadapter.HealthServer
}

// New creates a new server instance. The gRPC server is nil when GRPC_ENABLED is false.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(c.UserHandler, c.MockHandler, c.RateLimiter, httpAddress(cfg), l),
		Health: c.Health,
	}
	if cfg.App.GRPCEnabled {
		s.GRPC = SetupGRPC(c.Health, c.RateLimiter, l)
	}
	return s
}

// Run serves until ctx is canceled or a server fails, then shuts every server down.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}

	httpLis, err := lc.Listen(ctx, "tcp", s.Gin.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Gin.Addr, err)
	}

	var grpcLis net.Listener
	if s.GRPC != nil {
		grpcLis, err = lc.Listen(ctx, "tcp", grpcAddress(s.Config))
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", grpcAddress(s.Config), err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("REST API running", zap.String("address", httpLis.Addr().String()))
		if err := s.Gin.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gin server: %w", err)
		}
		return nil
	})

	if grpcLis != nil {
		g.Go(func() error {
			s.Logger.Info("gRPC server running", zap.String("address", grpcLis.Addr().String()))
			if err := s.GRPC.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops both servers within SHUTDOWN_TIMEOUT_SECONDS
func (s *Server) Shutdown() error {
	timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.Logger.Info("starting graceful shutdown", zap.Duration("timeout", timeout))

	var errs []error

	if s.Health != nil {
		s.Health.Shutdown()
	}

	if err := s.Gin.Shutdown(ctx); err != nil {
		s.Logger.Error("failed to shutdown Gin server", zap.Error(err))
		errs = append(errs, fmt.Errorf("gin shutdown: %w", err))
	}

	if s.GRPC != nil {
		stopped := make(chan struct{})
		go func() {
			s.GRPC.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-ctx.Done():
			s.Logger.Warn("gRPC graceful stop timed out, forcing stop")
			s.GRPC.Stop()
		}
	}

	return errors.Join(errs...)
}

// grpcAddress returns the gRPC server address
func grpcAddress(cfg *config.Config) string {
	return ":" + cfg.App.GRPCPort
}

// httpAddress returns the HTTP server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
