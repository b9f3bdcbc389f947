package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/statistics", h.statistics)
		admin.GET("/audit-log", h.auditLog)
	}
}

func (h *AdminHandler) statistics(c *gin.Context) {
	stats, err := h.svc.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}

func (h *AdminHandler) auditLog(c *gin.Context) {
	entries, err := h.svc.GetAuditLog(c.Request.Context(), domain.AuditFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Actor:      c.Query("actor"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}
