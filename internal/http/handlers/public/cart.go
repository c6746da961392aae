package public

import (
	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/models"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// CartItemRequest mutates one cart line.
type CartItemRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Qty           int    `json:"qty"`
	SelectedColor string `json:"selected_color"`
}

// GetCart returns the session cart, empty when none exists yet.
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.GetCart(h.sessionCartID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	if cart == nil {
		response.Success(c, &models.Cart{Items: []models.CartItem{}})
		return
	}
	response.Success(c, cart)
}

// AddCartItem puts a product into the session cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	cart, err := h.CartService.AddItem(h.sessionCartID(c), optionalUserID(c), req.ProductID, req.Qty, req.SelectedColor)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem takes one unit of a product out of the session cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	cart, err := h.CartService.RemoveItem(h.sessionCartID(c), req.ProductID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}
