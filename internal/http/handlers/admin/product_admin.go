package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/repository"
	"github.com/tijara-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdjustStockRequest moves stock up or down.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ListProducts pages through the catalog for the admin table.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := pagination(c)
	categoryID, _ := strconv.Atoi(c.DefaultQuery("category_id", "0"))

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, paginationMeta(page, pageSize, total))
}

// GetProduct fetches one product.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		response.NotFound(c, "product not found")
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	product, err := h.ProductService.CreateProduct(req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product created", product)
}

// UpdateProduct replaces a catalog entry's fields.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(id, req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product updated", product)
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

// AdjustProductStock moves a product's stock by a delta.
func (h *Handler) AdjustProductStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	product, err := h.ProductService.AdjustStock(id, req.Delta)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, service.ErrProductSlugExists):
		response.Error(c, response.CodeConflict, "product with this slug already exists")
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}
