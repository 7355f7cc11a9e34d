package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pb "github.com/godilite/feedback-insights/api/v1"
	"github.com/godilite/feedback-insights/internal/config"
	handler "github.com/godilite/feedback-insights/internal/grpc"
	"github.com/godilite/feedback-insights/internal/repository"
	"github.com/godilite/feedback-insights/internal/service"
	"github.com/godilite/feedback-insights/pkg/cache"
	dbbuilder "github.com/godilite/feedback-insights/pkg/database"
	grpcsrv "github.com/godilite/feedback-insights/pkg/grpc/server"
	"github.com/godilite/feedback-insights/pkg/metrics"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const (
	cacheKeyPrefix  = "feedback:"
	shutdownTimeout = 10 * time.Second
)

type App struct {
	logger        *zap.Logger
	dbPool        *sql.DB
	cache         *cache.Cache
	grpcServer    *grpcsrv.Server
	metricsServer *metrics.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	if cfg.DBPath != "" {
		dbPool, err := dbbuilder.New(
			dbbuilder.WithDriver(cfg.DBDriver),
			dbbuilder.WithDataSource(cfg.DBPath),
			dbbuilder.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		a.dbPool = dbPool
		logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))
	}

	// Redis is an accelerator only; without it every request recomputes.
	var cacher handler.Cacher
	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithKeyPrefix(cacheKeyPrefix),
	)
	if err != nil {
		logger.Warn("cache unavailable, serving uncached", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	} else {
		a.cache = cacheClient
		cacher = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	}

	selection, err := config.LoadSelection(cfg.SelectionConfigPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("selection config: %w", err)
	}

	m := metrics.New()

	tableRepo := repository.NewFeedbackTableRepository(a.dbPool)

	insightsService := service.NewInsightsService(tableRepo, cfg.Sources(), selection.BySource(), logger,
		service.WithRecorder(m),
	)

	grpcHandlers := handler.NewGRPCHandlers(insightsService, cacher, logger, cfg.CacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithMetrics(m),
	)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}
	a.grpcServer = grpcServer

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterFeedbackInsightsServer(s, grpcHandlers)
	})

	if cfg.MetricsPort != 0 {
		metricsServer, err := metrics.NewServer(cfg.MetricsPort, m, logger)
		if err != nil {
			_ = grpcServer.Shutdown(context.Background())
			a.close()
			return nil, fmt.Errorf("failed to create metrics server: %w", err)
		}
		a.metricsServer = metricsServer
	}

	return a, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()
	if a.metricsServer != nil {
		a.metricsServer.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
	}
	a.close()

	if ctx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return errors.Join(errs...)
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if a.dbPool != nil {
		if err := a.dbPool.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
		}
	}
}
