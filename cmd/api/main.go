package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lifematch-service/internal/api/http"
	"github.com/spec-kit/lifematch-service/internal/api/http/handlers"
	"github.com/spec-kit/lifematch-service/internal/cache"
	"github.com/spec-kit/lifematch-service/internal/config"
	"github.com/spec-kit/lifematch-service/internal/events"
	"github.com/spec-kit/lifematch-service/internal/observability"
	"github.com/spec-kit/lifematch-service/internal/persistence"
	"github.com/spec-kit/lifematch-service/internal/repository"
	"github.com/spec-kit/lifematch-service/internal/seed"
	"github.com/spec-kit/lifematch-service/internal/service"
	"github.com/spec-kit/lifematch-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		donorRepo     repository.DonorRepository
		recipientRepo repository.RecipientRepository
		matchRepo     repository.MatchRepository
	)
	if pg.Enabled() {
		pool := pg.PoolHandle()
		donorRepo = repository.NewDonorRepository(pool)
		recipientRepo = repository.NewRecipientRepository(pool)
		matchRepo = repository.NewMatchRepository(pool)
	} else {
		store := repository.NewMemoryStore()
		donorRepo = store.Donors()
		recipientRepo = store.Recipients()
		matchRepo = store.Matches()
	}

	var statsCache cache.StatsCache
	if redis.Enabled() {
		statsCache = cache.NewRedisStatsCache(redis.Client, cfg.Redis.StatsTTL())
	} else {
		statsCache = cache.NewMemoryStatsCache(cfg.Redis.StatsTTL())
	}

	if cfg.Dashboard.SeedSampleData {
		seedSampleData(ctx, logger, donorRepo, recipientRepo)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		DonorRepo:     donorRepo,
		RecipientRepo: recipientRepo,
		StatsCache:    statsCache,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	matchService := service.NewMatchService(service.MatchDependencies{
		DonorRepo:     donorRepo,
		RecipientRepo: recipientRepo,
		MatchRepo:     matchRepo,
		StatsCache:    statsCache,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DonorRepo:     donorRepo,
		RecipientRepo: recipientRepo,
		MatchRepo:     matchRepo,
		StatsCache:    statsCache,
		Logger:        logger,
	})

	refresher := worker.NewStatsRefresher(dashboardService, cfg.Dashboard.RefreshInterval(), logger, metrics)
	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		refresher.Run(ctx)
	}()

	app := httptransport.NewApp(cfg.App.Name, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Compatibility: handlers.NewCompatibilityHandler(),
		Donors:        handlers.NewDonorsHandler(registrationService, matchService),
		Recipients:    handlers.NewRecipientsHandler(registrationService, matchService),
		Matches:       handlers.NewMatchesHandler(matchService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Metrics:       metrics,
	}, httptransport.MiddlewareConfig{
		Logger:  logger,
		Timeout: cfg.App.RequestTimeout(),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	<-refresherDone
	_ = app.Shutdown()
}

func seedSampleData(ctx context.Context, logger *zap.Logger, donors repository.DonorRepository, recipients repository.RecipientRepository) {
	dataset, err := seed.Sample()
	if err != nil {
		logger.Error("failed to load sample data", zap.Error(err))
		return
	}
	applied, err := dataset.Apply(ctx, donors, recipients)
	if err != nil {
		logger.Error("failed to seed sample data", zap.Error(err))
		return
	}
	if applied {
		logger.Info("seeded sample data",
			zap.Int("donors", len(dataset.Donors)),
			zap.Int("recipients", len(dataset.Recipients)))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
