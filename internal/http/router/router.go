package router

import (
	"net/http"
	"time"

	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the gin engine: shared middleware, health and metrics
// endpoints, then every module's routes.
func New(app *apphttp.App) *gin.Engine {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/api/health", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	apiLimiter := httpkit.NewAPIRateLimiter(app.Logger)
	v1 := engine.Group("/api/v1")
	v1.Use(apiLimiter.RateLimit())

	rc := &apphttp.RouterContext{
		Engine:          engine,
		V1:              v1,
		Onboarding:      v1.Group("/onboarding"),
		Portal:          v1.Group("/portal"),
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}
	if app.Gate != nil {
		rc.Onboarding.Use(app.Gate.Session())
		rc.Portal.Use(app.Gate.Session())
		rc.RequireAccount = app.Gate.RequireAccount
	} else {
		rc.RequireAccount = func(string) gin.HandlerFunc {
			return func(c *gin.Context) {
				httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
				c.Abort()
			}
		}
	}

	for _, module := range app.Modules {
		app.Logger.Debug("registering module routes", "module", module.Name())
		module.RegisterRoutes(rc)
	}

	return engine
}

func corsConfig(cfg config.HTTPConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.RequestIDHeader, "X-Session-Token"},
		ExposeHeaders:    []string{httpkit.RequestIDHeader, "X-Session-Token"},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}
