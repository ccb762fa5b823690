package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/talentdesk/candidate-tracker/internal/api/http"
	"github.com/talentdesk/candidate-tracker/internal/api/http/handlers"
	"github.com/talentdesk/candidate-tracker/internal/cache"
	"github.com/talentdesk/candidate-tracker/internal/config"
	"github.com/talentdesk/candidate-tracker/internal/events"
	"github.com/talentdesk/candidate-tracker/internal/observability"
	"github.com/talentdesk/candidate-tracker/internal/repository"
	"github.com/talentdesk/candidate-tracker/internal/service"
	"github.com/talentdesk/candidate-tracker/internal/validation"
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
	logger = logger.With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))

	redis := cache.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	deps := service.CandidateDependencies{
		CandidateRepo: repository.NewCandidateRepository(),
		Validator:     validation.New(),
		Dispatcher:    dispatcher,
		UniqueEmail:   cfg.Candidates.UniqueEmail,
		Logger:        logger,
	}
	var readiness handlers.Pinger
	if redis != nil {
		deps.Cache = cache.NewProjectionCache(redis, cfg.Redis.ProjectionTTL(), logger)
		readiness = redis
	}
	candidateService := service.NewCandidateService(deps)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness, metrics),
		Candidates: handlers.NewCandidatesHandler(candidateService),
		Pages:      handlers.NewPageHandler(candidateService, notifications, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Bool("unique_email", cfg.Candidates.UniqueEmail))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
