// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"sst_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// Gate resolves onboarding sessions and protects portal screens.
type Gate interface {
	// Session resolves the caller's session, creating one when needed.
	Session() gin.HandlerFunc
	// RequireAccount rejects callers without an account and remembers the
	// screen they asked for.
	RequireAccount(screen string) gin.HandlerFunc
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the stateless /api/v1 route group.
	V1 *gin.RouterGroup
	// Onboarding is /api/v1/onboarding with the session resolved.
	Onboarding *gin.RouterGroup
	// Portal is /api/v1/portal with the session resolved. Routes add
	// RequireAccount for their screen.
	Portal *gin.RouterGroup
	// RequireAccount provides the portal gate for a screen.
	RequireAccount func(screen string) gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for credential routes.
	AuthRateLimiter *httpkit.IPRateLimiter
}
