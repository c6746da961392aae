package service

import (
	"strings"

	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"
)

// ProductInput carries a product create/update payload. Money fields
// arrive as decimal strings.
type ProductInput struct {
	CategoryID    uint     `json:"category_id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Price         string   `json:"price"`
	ShippingPrice string   `json:"shipping_price"`
	CostPrice     string   `json:"cost_price"`
	Stock         int      `json:"stock"`
	Images        []string `json:"images"`
	Colors        []string `json:"colors"`
	IsFeatured    bool     `json:"is_featured"`
	Banner        string   `json:"banner"`
}

// ProductService manages the catalog.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService builds a product service.
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProduct fetches one product by id.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductBySlug fetches one product by its storefront slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts pages through the catalog.
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ListLatestProducts returns the newest products for the storefront.
func (s *ProductService) ListLatestProducts(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.productRepo.ListLatest(limit)
}

// ListFeaturedProducts returns banner products for the storefront hero.
func (s *ProductService) ListFeaturedProducts(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.productRepo.ListFeatured(limit)
}

// CreateProduct inserts a new product. Slugs are unique across the
// catalog; a duplicate is reported instead of silently overwritten.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	existing, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductSlugExists
	}

	product, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		logger.Errorw("product_create_failed", "slug", slug, "error", err)
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

// UpdateProduct applies a full update to an existing product.
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != product.Slug {
		existing, err := s.productRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrProductSlugExists
		}
	}

	next, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"category_id":    next.CategoryID,
		"slug":           next.Slug,
		"name":           next.Name,
		"description":    next.Description,
		"brand":          next.Brand,
		"price":          next.Price,
		"shipping_price": next.ShippingPrice,
		"cost_price":     next.CostPrice,
		"stock":          next.Stock,
		"images":         next.Images,
		"colors":         next.Colors,
		"is_featured":    next.IsFeatured,
		"banner":         next.Banner,
	}
	if err := s.productRepo.Update(id, updates); err != nil {
		logger.Errorw("product_update_failed", "product_id", id, "error", err)
		return nil, err
	}
	return s.GetProduct(id)
}

// DeleteProduct removes a product from the catalog. Order item
// snapshots keep their copied data, so past orders are unaffected.
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		logger.Errorw("product_delete_failed", "product_id", id, "error", err)
		return err
	}
	return nil
}

// AdjustStock moves a product's stock by delta, clamped at zero.
func (s *ProductService) AdjustStock(id uint, delta int) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	next := product.Stock + delta
	if next < 0 {
		next = 0
	}
	if err := s.productRepo.Update(id, map[string]interface{}{"stock": next}); err != nil {
		return nil, err
	}
	product.Stock = next
	return product, nil
}

func (s *ProductService) buildProduct(input ProductInput) (*models.Product, error) {
	price, err := models.NewMoneyFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return nil, err
	}
	shipping := models.ZeroMoney()
	if strings.TrimSpace(input.ShippingPrice) != "" {
		shipping, err = models.NewMoneyFromString(strings.TrimSpace(input.ShippingPrice))
		if err != nil {
			return nil, err
		}
	}
	cost := models.ZeroMoney()
	if strings.TrimSpace(input.CostPrice) != "" {
		cost, err = models.NewMoneyFromString(strings.TrimSpace(input.CostPrice))
		if err != nil {
			return nil, err
		}
	}
	return &models.Product{
		CategoryID:    input.CategoryID,
		Slug:          strings.TrimSpace(input.Slug),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Brand:         strings.TrimSpace(input.Brand),
		Price:         price,
		ShippingPrice: shipping,
		CostPrice:     cost,
		Stock:         input.Stock,
		Images:        input.Images,
		Colors:        input.Colors,
		IsFeatured:    input.IsFeatured,
		Banner:        input.Banner,
	}, nil
}
