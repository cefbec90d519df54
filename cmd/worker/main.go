package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/email"
	"sst_portal_backend/internal/events"
	"sst_portal_backend/internal/notification"
	"sst_portal_backend/internal/onboarding"
	"sst_portal_backend/internal/onboarding/credentials"
	"sst_portal_backend/internal/onboarding/repository"
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

	log := logger.New(cfg.Env)
	log.Info("starting diagnosis worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
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

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	notification.New(sender, cfg, log).RegisterHandlers(eventBus)

	val := validator.New()
	if err := catalog.RegisterValidations(val); err != nil {
		panic("failed to register catalog validations: " + err.Error())
	}

	// Worker-side onboarding wiring (no HTTP handlers required). Sessions
	// are shared with the API through Redis.
	store := repository.NewRedis(redisClient.Client, cfg.GetSessionTTL())
	onboardingModule := onboarding.NewModule(store, credentials.NewAcceptAny(), cfg, eventBus, val, log)
	onboardingModule.Service().SetMetrics(metrics.New())

	worker, err := scheduler.NewWorker(cfg, onboardingModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
