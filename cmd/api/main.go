package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/healthwatch/internal/api/http"
	"github.com/spec-kit/healthwatch/internal/api/http/handlers"
	"github.com/spec-kit/healthwatch/internal/auth"
	"github.com/spec-kit/healthwatch/internal/config"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/observability"
	"github.com/spec-kit/healthwatch/internal/persistence"
	"github.com/spec-kit/healthwatch/internal/repository"
	"github.com/spec-kit/healthwatch/internal/service"
	"github.com/spec-kit/healthwatch/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	reportRepo := repository.NewStaticReportRepository(nil)
	facilityRepo := repository.NewStaticFacilityRepository(nil)
	if pg.Enabled() {
		reportRepo = repository.NewPostgresReportRepository(pg.PoolHandle())
		facilityRepo = repository.NewPostgresFacilityRepository(pg.PoolHandle())
	}

	var redis *persistence.Redis
	sessionRepo := repository.NewMemorySessionRepository(cfg.Navigation.SessionTTL())
	if cfg.Navigation.SessionStore == config.SessionStoreRedis {
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		sessionRepo = repository.NewRedisSessionRepository(redis.Client, cfg.Navigation.SessionTTL())
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	historyService := service.NewHistoryService(dispatcher, repository.NewMemorySessionHistoryRepository(0))
	worker.StartEventWorkers(service.NewNotificationService(dispatcher, logger, cfg.Notification), historyService)

	mode := navigation.ParseMode(cfg.Navigation.Mode)
	registry := navigation.NewRegistry(mode, sessionRepo, logger,
		service.SessionEventPublisher(dispatcher),
		metrics.NavigationListener(),
	)

	janitor := worker.NewSessionJanitor(registry, cfg.Navigation.SweepInterval(), cfg.Navigation.IdleEvict(), logger).
		WithHistory(historyService, cfg.Navigation.SessionTTL())
	go janitor.Run(ctx)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: repository.NewMemoryAccountRepository(),
		Registry:    registry,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	if err := authService.SeedDemoAccounts(ctx, cfg.Auth); err != nil {
		logger.Fatal("failed to seed demo accounts", zap.Error(err))
	}
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo: reportRepo,
		Dispatcher: dispatcher,
	})
	viewService := service.NewViewService(service.ViewDependencies{
		ReportRepo:   reportRepo,
		FacilityRepo: facilityRepo,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:           handlers.NewMetricsHandler(metrics),
		Sessions:          handlers.NewSessionHandler(authService, viewService, historyService),
		Reports:           handlers.NewReportsHandler(reportService),
		SessionMiddleware: auth.NewSessionMiddleware(authService.TokenManager(), registry),
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("nav_mode", string(mode)),
			zap.String("session_store", cfg.Navigation.SessionStore),
			zap.Bool("postgres_catalog", pg.Enabled()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
