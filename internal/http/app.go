// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/metrics"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks. Nil when no Redis is configured.
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Metrics is served on /metrics when set.
	Metrics *metrics.Metrics
	// Gate resolves sessions for the onboarding and portal groups.
	Gate Gate
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
