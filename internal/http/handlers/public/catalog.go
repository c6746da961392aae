package public

import (
	"strconv"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/repository"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// ListProducts pages through the storefront catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	categoryID, _ := strconv.Atoi(c.DefaultQuery("category_id", "0"))

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
		WithCategory: true,
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct serves one product page by slug.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		response.NotFound(c, "product not found")
		return
	}
	response.Success(c, product)
}

// ListLatestProducts serves the storefront landing strip.
func (h *Handler) ListLatestProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	products, err := h.ProductService.ListLatestProducts(limit)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.Success(c, products)
}

// ListFeaturedProducts serves the storefront hero banners.
func (h *Handler) ListFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	products, err := h.ProductService.ListFeaturedProducts(limit)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.Success(c, products)
}

// ListCategories serves the category navigation.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}
