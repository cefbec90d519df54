package diagnosis

import (
	apphttp "sst_portal_backend/internal/http"
	"sst_portal_backend/platform/validator"
)

// Module wires the stateless diagnosis preview route.
type Module struct {
	handler *Handler
}

func NewModule(val *validator.Validator) *Module {
	return &Module{handler: NewHandler(val)}
}

func (m *Module) Name() string {
	return "diagnosis"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/diagnosis/preview", m.handler.Preview)
}

var _ apphttp.Module = (*Module)(nil)
