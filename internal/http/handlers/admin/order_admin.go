package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"
	"github.com/tijara-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderRequest is the admin order patch payload.
type UpdateOrderRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Governorate *string `json:"governorate"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

// BulkStatusRequest updates one status across many orders.
type BulkStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// MarkPaidRequest records an external payment confirmation.
type MarkPaidRequest struct {
	PaymentResult models.JSON `json:"payment_result"`
}

// ListOrders pages through all orders with filters.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := pagination(c)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_from", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_to", err)
		return
	}

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		PhoneNumber: strings.TrimSpace(c.Query("phone_number")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, paginationMeta(page, pageSize, total))
}

// GetOrder fetches one order with items.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	response.Success(c, order)
}

// UpdateOrder applies an admin patch.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, err := h.OrderService.UpdateOrder(id, service.UpdateOrderInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Governorate: req.Governorate,
		Address:     req.Address,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// BulkUpdateOrderStatus sets one status across a set of orders.
func (h *Handler) BulkUpdateOrderStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	affected, err := h.OrderService.BulkUpdateOrderStatus(req.IDs, req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": affected})
}

// DeliverOrder marks an order handed over.
func (h *Handler) DeliverOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.DeliverOrder(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithMsg(c, "order delivered", order)
}

// MarkOrderPaid stores an external payment confirmation.
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	order, err := h.OrderService.UpdateOrderToPaid(id, req.PaymentResult)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithMsg(c, "order marked as paid", order)
}

// DeleteOrder removes an order and its items.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.OrderService.DeleteOrder(id); err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithMsg(c, "order deleted", nil)
}

// GetOrderProfitStats aggregates per-product profit over a date range.
func (h *Handler) GetOrderProfitStats(c *gin.Context) {
	from, err := parseTimeNullable(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid from date", err)
		return
	}
	to, err := parseTimeNullable(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid to date", err)
		return
	}

	now := time.Now()
	fromAt := now.AddDate(0, -1, 0)
	toAt := now
	if from != nil {
		fromAt = *from
	}
	if to != nil {
		toAt = *to
	}

	stats, err := h.StatsService.GetOrderProfitStats(fromAt, toAt)
	if err != nil {
		respondError(c, response.CodeInternal, "profit stats failed", err)
		return
	}
	response.Success(c, stats)
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		response.BadRequest(c, "invalid order status")
	default:
		respondError(c, response.CodeInternal, "order operation failed", err)
	}
}
