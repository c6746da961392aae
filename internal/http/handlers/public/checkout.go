package public

import (
	"fmt"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/service"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// CustomerRequest is the contact block shared by checkout endpoints.
type CustomerRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Governorate string `json:"governorate" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Notes       string `json:"notes"`
}

// QuickOrderRequest is the one-product instant checkout payload.
type QuickOrderRequest struct {
	CustomerRequest
	ProductID     uint   `json:"product_id" binding:"required"`
	Qty           int    `json:"qty"`
	SelectedColor string `json:"selected_color"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaCode   string `json:"captcha_code"`
}

// CheckoutRequest converts the session cart into an order.
type CheckoutRequest struct {
	CustomerRequest
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// QuickOrder places a single-product order straight from a product
// page, skipping the cart.
func (h *Handler) QuickOrder(c *gin.Context) {
	var req QuickOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondCheckoutError(c, err)
		return
	}

	qty := req.Qty
	if qty <= 0 {
		qty = 1
	}
	result, err := h.OrderService.CreateQuickOrder(c.Request.Context(), service.CheckoutInput{
		Customer: service.CustomerInfo{
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			Governorate: req.Governorate,
			Address:     req.Address,
			Notes:       req.Notes,
		},
		UserID:   optionalUserID(c),
		ClientIP: c.ClientIP(),
	}, service.CheckoutItem{
		ProductID:     req.ProductID,
		Qty:           qty,
		SelectedColor: req.SelectedColor,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	respondCheckoutResult(c, result)
}

// Checkout converts the session cart into an order and clears the
// cart on success.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondCheckoutError(c, err)
		return
	}

	result, err := h.OrderService.CreateOrder(c.Request.Context(), service.CheckoutInput{
		Customer: service.CustomerInfo{
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			Governorate: req.Governorate,
			Address:     req.Address,
			Notes:       req.Notes,
		},
		UserID:   optionalUserID(c),
		ClientIP: c.ClientIP(),
	}, h.sessionCartID(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	respondCheckoutResult(c, result)
}

// respondCheckoutResult sends the order back with the navigation
// target: merged checkouts land on the thank-you page of the absorbing
// order, fresh ones on the completion page.
func respondCheckoutResult(c *gin.Context, result *service.CheckoutResult) {
	if result.Merged {
		response.SuccessWithRedirect(c, "order updated", result.Order,
			fmt.Sprintf("/thank-you?orderId=%d", result.Order.ID))
		return
	}
	response.SuccessWithRedirect(c, "order placed", result.Order,
		fmt.Sprintf("/order-completed/%d", result.Order.ID))
}
