package di

import (
	"context"
	"errors"
	"fmt"

	"user-directory-service/cmd/api/infrastructure"
	"user-directory-service/internal/adapter/db/memory"
	ginhandler "user-directory-service/internal/adapter/gin/handler"
	grpcadapter "user-directory-service/internal/adapter/grpc"
	"user-directory-service/internal/adapter/ratelimit"
	"user-directory-service/internal/config"
	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/user"
	redisclient "user-directory-service/pkg/redis"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	UserRepo    *memory.UserRepo
	UserUC      user.Usecase
	RateLimiter *ratelimit.Limiter
	UserHandler *ginhandler.UserHandler
	MockHandler *ginhandler.MockHandler
	Health      *grpcadapter.HealthServer
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	strategy, err := memory.ParseIDStrategy(cfg.Users.IDStrategy)
	if err != nil {
		return nil, fmt.Errorf("invalid user id strategy: %w", err)
	}

	var seed []domain.User
	if cfg.Users.SeedDefaults {
		seed = memory.DefaultUsers()
	}

	repo, err := memory.NewUserRepo(strategy, l, seed...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}
	l.Info("user store initialized",
		zap.String("id_strategy", string(strategy)),
		zap.Int("seeded_users", len(seed)),
	)

	userUC := user.New(repo, l)

	rateLimiter, rdb, err := infrastructure.NewRateLimiter(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		RedisClient: rdb,
		UserRepo:    repo,
		UserUC:      userUC,
		RateLimiter: rateLimiter,
		UserHandler: ginhandler.NewUserHandler(userUC, l),
		MockHandler: ginhandler.NewMockHandler(cfg.Logger.ServiceVersion, l),
		Health:      grpcadapter.NewHealthServer(l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
