package admin

import (
	"errors"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all categories in display order.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	category, err := h.CategoryService.CreateCategory(req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.SuccessWithMsg(c, "category created", category)
}

// UpdateCategory changes slug, name or ordering.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	category, err := h.CategoryService.UpdateCategory(id, req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.SuccessWithMsg(c, "category updated", category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteCategory(id); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, "category not found")
	case errors.Is(err, service.ErrCategorySlugExists):
		response.Error(c, response.CodeConflict, "category with this slug already exists")
	default:
		respondError(c, response.CodeInternal, "category operation failed", err)
	}
}
