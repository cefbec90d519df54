// Package onboarding provides the onboarding bounded context module: the
// intake, diagnosis, proposal, signup and login flow, plus the session gate
// that protects the client portal.
package onboarding

import (
	"sst_portal_backend/internal/events"
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/internal/onboarding/credentials"
	"sst_portal_backend/internal/onboarding/handler"
	"sst_portal_backend/internal/onboarding/repository"
	"sst_portal_backend/internal/onboarding/service"
	"sst_portal_backend/internal/onboarding/token"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// ModuleConfig combines the config interfaces the module reads.
type ModuleConfig interface {
	config.SessionConfig
	config.CookieConfig
}

// Module is the onboarding bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the service and handler around the given store and
// credential verifier.
func NewModule(store repository.SessionStore, creds credentials.Store, cfg ModuleConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	issuer := token.NewIssuer(cfg.GetSessionSecret(), cfg.GetSessionTTL())
	svc := service.New(store, creds, issuer, eventBus, log)

	return &Module{
		handler: handler.New(svc, cfg, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "onboarding"
}

// Service returns the onboarding service for the diagnosis runners.
func (m *Module) Service() *service.Service {
	return m.service
}

// Session resolves or creates the caller's session.
func (m *Module) Session() gin.HandlerFunc {
	return m.handler.Session()
}

// RequireAccount gates a portal screen.
func (m *Module) RequireAccount(screen string) gin.HandlerFunc {
	return m.handler.RequireAccount(screen)
}

// RegisterRoutes mounts onboarding routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/onboarding/sessions", m.handler.CreateSession)

	group := ctx.Onboarding
	m.handler.RegisterRoutes(group)

	// Credential routes get the stricter limiter
	group.POST("/signup", ctx.AuthRateLimiter.RateLimit(), m.handler.SignUp)
	group.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ apphttp.Gate   = (*Module)(nil)
)
