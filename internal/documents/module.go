// Package documents serves the client's document registry.
package documents

import (
	"sst_portal_backend/internal/events"
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/validator"
)

// Screen is the portal screen the routes belong to.
const Screen = "/cliente/documentos"

// Module wires the document registry routes.
type Module struct {
	handler *Handler
}

func NewModule(bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(bus, log), val)}
}

func (m *Module) Name() string {
	return "documents"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Portal.Group("/documents", ctx.RequireAccount(Screen))
	group.GET("", m.handler.List)
	group.POST("/uploads", m.handler.Upload)
}

var _ apphttp.Module = (*Module)(nil)
