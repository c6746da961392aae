package admin

import (
	"strconv"

	"github.com/tijara-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard serves the admin overview: headline numbers, monthly
// sales buckets and the latest orders.
func (h *Handler) GetDashboard(c *gin.Context) {
	monthly, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	latest, _ := strconv.Atoi(c.DefaultQuery("latest", "6"))

	summary, err := h.StatsService.GetOrderSummary(monthly, latest)
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}
	response.Success(c, summary)
}
