package public

import (
	"strconv"

	"github.com/tijara-next/internal/http/response"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// ListMyOrders pages through the signed-in customer's orders.
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(uid, page, pageSize)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetMyOrder fetches one of the signed-in customer's orders.
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.OrderService.GetUserOrder(uint(orderID), uid)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	response.Success(c, order)
}
