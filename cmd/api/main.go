package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sst_portal_backend/internal/appointments"
	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/diagnosis"
	"sst_portal_backend/internal/documents"
	"sst_portal_backend/internal/email"
	"sst_portal_backend/internal/events"
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/internal/http/router"
	"sst_portal_backend/internal/journey"
	"sst_portal_backend/internal/messages"
	"sst_portal_backend/internal/notification"
	"sst_portal_backend/internal/onboarding"
	"sst_portal_backend/internal/onboarding/credentials"
	"sst_portal_backend/internal/onboarding/repository"
	"sst_portal_backend/internal/onboarding/service"
	"sst_portal_backend/internal/scheduler"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/metrics"
	"sst_portal_backend/platform/redis"
	"sst_portal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var redisClient *redis.Client
	if cfg.GetRedisURL() != "" {
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			c, err := redis.New(ctx, cfg)
			if err != nil {
				return err
			}
			redisClient = c
			return nil
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("redis connection established")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	appMetrics := metrics.New()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()
	if err := catalog.RegisterValidations(val); err != nil {
		panic("failed to register catalog validations: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	onboardingModule := onboarding.NewModule(newSessionStore(cfg, redisClient, log), newCredentials(cfg), cfg, eventBus, val, log)
	onboardingModule.Service().SetMetrics(appMetrics)

	runner, closeRunner := initDiagnosisRunner(cfg, onboardingModule.Service(), log)
	if closeRunner != nil {
		defer closeRunner()
	}
	onboardingModule.Service().SetRunner(runner)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Metrics:  appMetrics,
		Gate:     onboardingModule,
		Modules: []apphttp.Module{
			catalog.NewModule(),
			diagnosis.NewModule(val),
			onboardingModule,
			documents.NewModule(eventBus, val, log),
			messages.NewModule(eventBus, val, log),
			appointments.NewModule(eventBus, val, log),
			journey.NewModule(),
		},
	}
	if redisClient != nil {
		app.Health = redisClient
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newSessionStore(cfg config.SessionConfig, client *redis.Client, log *logger.Logger) repository.SessionStore {
	if client == nil {
		log.Warn("REDIS_URL not configured; sessions are kept in memory")
		return repository.NewInMemory(cfg.GetSessionTTL())
	}
	return repository.NewRedis(client.Client, cfg.GetSessionTTL())
}

func newCredentials(cfg config.AuthConfig) credentials.Store {
	if cfg.GetAuthMode() == config.AuthModeRegistered {
		return credentials.NewRegistered()
	}
	return credentials.NewAcceptAny()
}

func initDiagnosisRunner(cfg *config.Config, svc *service.Service, log *logger.Logger) (service.DiagnosisRunner, func()) {
	if cfg.GetDiagnosisRunner() == config.DiagnosisRunnerAsynq {
		client, err := scheduler.NewClient(cfg, cfg.GetDiagnosisDelay())
		if err != nil {
			log.Error("failed to initialize diagnosis scheduler; falling back to in-process runner", "error", err)
		} else {
			log.Info("diagnosis runner: asynq", "queue", cfg.GetAsynqQueueName())
			return client, func() { _ = client.Close() }
		}
	}

	runner := service.NewInProcessRunner(cfg.GetDiagnosisDelay(), log)
	runner.Bind(svc.CompleteDiagnosis)
	log.Info("diagnosis runner: in-process", "delay", cfg.GetDiagnosisDelay())
	return runner, runner.Wait
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
