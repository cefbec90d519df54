package appointments

import (
	"net/http"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/platform/httpkit"
	"sst_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List handles GET /api/v1/portal/appointments?day=
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	resp, err := h.svc.List(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Options handles GET /api/v1/portal/appointments/options
func (h *Handler) Options(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"workers":   h.svc.Workers(),
		"examTypes": catalog.ExamTypes(),
		"units":     catalog.Units(),
	})
}

// Request handles POST /api/v1/portal/appointments/requests
func (h *Handler) Request(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.Request(c.Request.Context(), identity.Account().ID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, resp)
}
