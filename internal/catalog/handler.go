package catalog

import (
	"sst_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the reference data lists.
type Handler struct{}

// NewHandler creates a catalog handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ListSegments handles GET /api/v1/catalog/segments
func (h *Handler) ListSegments(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": Segments()})
}

// ListHeadcountBands handles GET /api/v1/catalog/headcount-bands
func (h *Handler) ListHeadcountBands(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": HeadcountBands()})
}

// ListCities handles GET /api/v1/catalog/cities
func (h *Handler) ListCities(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": Cities()})
}

// ListObligations handles GET /api/v1/catalog/obligations
func (h *Handler) ListObligations(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": Obligations()})
}

// ListExamTypes handles GET /api/v1/catalog/exam-types
func (h *Handler) ListExamTypes(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": ExamTypes()})
}

// ListUnits handles GET /api/v1/catalog/units
func (h *Handler) ListUnits(c *gin.Context) {
	httpkit.OK(c, gin.H{"items": Units()})
}

// ListDocumentFilters handles GET /api/v1/catalog/document-filters
func (h *Handler) ListDocumentFilters(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"all":      FilterAll,
		"types":    DocumentTypes(),
		"statuses": DocumentStatuses(),
	})
}
