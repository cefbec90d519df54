// Package appointments serves the exam appointment registry and accepts
// booking requests.
package appointments

import (
	"sst_portal_backend/internal/events"
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/validator"
)

// Screen is the portal screen the routes belong to.
const Screen = "/cliente/agendamentos"

type Module struct {
	handler *Handler
}

// NewModule expects val to carry the catalog validation tags.
func NewModule(bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(bus, log), val)}
}

func (m *Module) Name() string {
	return "appointments"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Portal.Group("/appointments", ctx.RequireAccount(Screen))
	group.GET("", m.handler.List)
	group.GET("/options", m.handler.Options)
	group.POST("/requests", m.handler.Request)
}

var _ apphttp.Module = (*Module)(nil)
