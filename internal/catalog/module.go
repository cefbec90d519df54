package catalog

import (
	apphttp "sst_portal_backend/internal/http"
)

// Module wires the public reference data routes.
type Module struct {
	handler *Handler
}

func NewModule() *Module {
	return &Module{handler: NewHandler()}
}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/catalog")
	group.GET("/segments", m.handler.ListSegments)
	group.GET("/headcount-bands", m.handler.ListHeadcountBands)
	group.GET("/cities", m.handler.ListCities)
	group.GET("/obligations", m.handler.ListObligations)
	group.GET("/exam-types", m.handler.ListExamTypes)
	group.GET("/units", m.handler.ListUnits)
	group.GET("/document-filters", m.handler.ListDocumentFilters)
}

var _ apphttp.Module = (*Module)(nil)
