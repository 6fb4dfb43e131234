package portal

import (
	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns the landing page numbers.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.DashboardService.Stats()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "dashboard_stats_failed", err)
		return
	}
	response.Success(c, stats)
}
