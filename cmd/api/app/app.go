package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"user-directory-service/cmd/api/di"
	"user-directory-service/cmd/api/server"
	"user-directory-service/internal/config"
	"user-directory-service/pkg/logger"

	"go.uber.org/zap"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Level     zap.AtomicLevel
	Server    *server.Server
	Container *di.Container
}

// New creates a new application instance from the app.env in configPath and the environment.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, level, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    l,
		Level:     level,
		Server:    server.New(cfg, l, container),
		Container: container,
	}

	cfg.OnLogLevelChange(a.setLogLevel)

	return a, nil
}

// Run starts the application and blocks until ctx is canceled, a signal is
// received or a server fails.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("panic recovered in application",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			err = fmt.Errorf("application panic: %v", r)
		}
	}()

	ctx, stop := server.WithSignal(ctx, a.Logger)
	defer stop()

	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.App.Environment),
		zap.String("config_file", a.Config.ConfigFile()),
	)

	var errs []error
	if err := a.Server.Run(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if err := a.Container.Close(); err != nil {
		a.Logger.Error("failed to close container", zap.Error(err))
		errs = append(errs, fmt.Errorf("container close: %w", err))
	}

	a.Logger.Info("application shutdown complete")

	// Sync errors on stdout/stderr are expected
	if err := a.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	return errors.Join(errs...)
}

// setLogLevel applies a LOG_LEVEL read from a changed config file
func (a *App) setLogLevel(level string) {
	newLevel := logger.ParseLevel(level)
	if a.Level.Level() == newLevel {
		return
	}

	a.Level.SetLevel(newLevel)
	a.Logger.Info("log level changed", zap.String("level", newLevel.String()))
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	loggerCfg := logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.App.Environment,
	}

	return logger.NewWithConfig(loggerCfg)
}
