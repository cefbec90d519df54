// Package journey serves the client dashboard, the implementation timeline
// and the help screen.
package journey

import (
	apphttp "sst_portal_backend/internal/http"
)

// Portal screens served by this module.
const (
	DashboardScreen = "/cliente/dashboard"
	HelpScreen      = "/cliente/ajuda"
)

type Module struct {
	handler *Handler
}

func NewModule() *Module {
	return &Module{handler: NewHandler(NewService())}
}

func (m *Module) Name() string {
	return "journey"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Portal.GET("/me", ctx.RequireAccount(DashboardScreen), m.handler.Me)
	ctx.Portal.GET("/dashboard", ctx.RequireAccount(DashboardScreen), m.handler.Dashboard)
	ctx.Portal.GET("/help", ctx.RequireAccount(HelpScreen), m.handler.Help)
}

var _ apphttp.Module = (*Module)(nil)
