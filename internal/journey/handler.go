package journey

import (
	"sst_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Me handles GET /api/v1/portal/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.Me(identity.Account()))
}

// Dashboard handles GET /api/v1/portal/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.Dashboard(identity.Account()))
}

// Help handles GET /api/v1/portal/help
func (h *Handler) Help(c *gin.Context) {
	httpkit.OK(c, h.svc.Help())
}
