package diagnosis

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

// PreviewRequest is the subset of the intake form that drives evaluation.
type PreviewRequest struct {
	Segment                string `json:"segment" validate:"max=120"`
	HeadcountBand          string `json:"headcountBand" validate:"max=20"`
	HasMachinery           bool   `json:"hasMachinery"`
	HasHazardousAgents     bool   `json:"hasHazardousAgents"`
	HasDangerousConditions bool   `json:"hasDangerousConditions"`
}

// Handler exposes stateless evaluation.
type Handler struct {
	val *validator.Validator
}

// NewHandler creates a diagnosis handler.
func NewHandler(val *validator.Validator) *Handler {
	return &Handler{val: val}
}

// Preview evaluates a profile without touching any session.
// POST /api/v1/diagnosis/preview
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	httpkit.OK(c, Evaluate(Profile{
		Segment:                catalog.Segment(req.Segment),
		HeadcountBand:          catalog.HeadcountBand(req.HeadcountBand),
		HasMachinery:           req.HasMachinery,
		HasHazardousAgents:     req.HasHazardousAgents,
		HasDangerousConditions: req.HasDangerousConditions,
	}))
}
