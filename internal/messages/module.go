// Package messages serves the client's support threads.
package messages

import (
	"sst_portal_backend/internal/events"
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/validator"
)

// Screen is the portal screen the routes belong to.
const Screen = "/cliente/mensagens"

type Module struct {
	handler *Handler
}

func NewModule(bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(bus, log), val)}
}

func (m *Module) Name() string {
	return "messages"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Portal.Group("/messages/threads", ctx.RequireAccount(Screen))
	group.GET("", m.handler.ListThreads)
	group.GET("/:id", m.handler.GetThread)
	group.POST("/:id", m.handler.Send)
}

var _ apphttp.Module = (*Module)(nil)
