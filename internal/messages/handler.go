package messages

import (
	"net/http"

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

// ListThreads handles GET /api/v1/portal/messages/threads
func (h *Handler) ListThreads(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": h.svc.ListThreads()})
}

// GetThread handles GET /api/v1/portal/messages/threads/:id
func (h *Handler) GetThread(c *gin.Context) {
	thread, err := h.svc.GetThread(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, thread)
}

// Send handles POST /api/v1/portal/messages/threads/:id
func (h *Handler) Send(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.Send(c.Request.Context(), identity.Account().ID, c.Param("id"), req.Text)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, resp)
}
