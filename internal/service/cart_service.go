package service

import (
	"time"

	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"

	"github.com/google/uuid"
)

// CartService manages session carts. Each guest session carries a
// random cart key in a cookie; the cart itself lives in the database
// so item snapshots and mirror totals survive across requests.
type CartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	shippingPolicy string
}

// NewCartService builds a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, shippingPolicy string) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		shippingPolicy: shippingPolicy,
	}
}

// NewSessionCartID mints a fresh cart cookie value.
func NewSessionCartID() string {
	return uuid.NewString()
}

// GetCart fetches the cart bound to a session key, nil when there is
// none yet.
func (s *CartService) GetCart(sessionCartID string) (*models.Cart, error) {
	if sessionCartID == "" {
		return nil, nil
	}
	cart, err := s.cartRepo.GetBySessionID(sessionCartID)
	if err != nil {
		logger.Errorw("cart_fetch_failed", "session_cart_id", sessionCartID, "error", err)
		return nil, ErrCartUpdateFailed
	}
	return cart, nil
}

// AddItem puts qty units of a product into the session cart, creating
// the cart on first use. Adding an already-present product increments
// its line instead of creating a duplicate.
func (s *CartService) AddItem(sessionCartID string, userID *uint, productID uint, qty int, selectedColor string) (*models.Cart, error) {
	if qty <= 0 {
		qty = 1
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, ErrCartUpdateFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.GetCart(sessionCartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			SessionCartID: sessionCartID,
			UserID:        userID,
		}
		if err := s.cartRepo.Create(cart); err != nil {
			logger.Errorw("cart_create_failed", "session_cart_id", sessionCartID, "error", err)
			return nil, ErrCartUpdateFailed
		}
	}

	line, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return nil, ErrCartUpdateFailed
	}
	newQty := qty
	if line != nil {
		newQty += line.Qty
	}
	if product.Stock < newQty {
		return nil, ErrProductOutOfStock
	}

	if line != nil {
		if err := s.cartRepo.UpdateItemQty(line.ID, newQty); err != nil {
			return nil, ErrCartUpdateFailed
		}
	} else {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		now := time.Now()
		if err := s.cartRepo.CreateItem(&models.CartItem{
			CartID:        cart.ID,
			ProductID:     product.ID,
			Slug:          product.Slug,
			Name:          product.Name,
			Image:         image,
			Price:         product.Price,
			ShippingPrice: product.ShippingPrice,
			CostPrice:     product.CostPrice,
			Qty:           qty,
			SelectedColor: selectedColor,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return nil, ErrCartUpdateFailed
		}
	}

	return s.refreshTotals(cart.ID)
}

// RemoveItem takes one unit of a product out of the cart; the line is
// deleted once its quantity reaches zero.
func (s *CartService) RemoveItem(sessionCartID string, productID uint) (*models.Cart, error) {
	cart, err := s.GetCart(sessionCartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	line, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return nil, ErrCartUpdateFailed
	}
	if line == nil {
		return nil, ErrCartNotFound
	}

	if line.Qty <= 1 {
		if err := s.cartRepo.DeleteItem(line.ID); err != nil {
			return nil, ErrCartUpdateFailed
		}
	} else {
		if err := s.cartRepo.UpdateItemQty(line.ID, line.Qty-1); err != nil {
			return nil, ErrCartUpdateFailed
		}
	}

	return s.refreshTotals(cart.ID)
}

// AttachUser binds the session cart to a signed-in user.
func (s *CartService) AttachUser(sessionCartID string, userID uint) error {
	cart, err := s.GetCart(sessionCartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	if cart.UserID != nil && *cart.UserID == userID {
		return nil
	}
	if err := s.cartRepo.AttachUser(cart.ID, userID); err != nil {
		logger.Errorw("cart_attach_user_failed", "cart_id", cart.ID, "user_id", userID, "error", err)
		return ErrCartUpdateFailed
	}
	return nil
}

// refreshTotals recomputes the mirror totals from the current lines
// and returns the cart in its new state.
func (s *CartService) refreshTotals(cartID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil || cart == nil {
		return nil, ErrCartUpdateFailed
	}
	totals := ComputeTotals(cartItemLines(cart.Items), s.shippingPolicy)
	if err := s.cartRepo.UpdateTotals(cartID,
		models.NewMoneyFromDecimal(totals.ItemsPrice),
		models.NewMoneyFromDecimal(totals.ShippingPrice),
		models.NewMoneyFromDecimal(totals.TotalPrice),
	); err != nil {
		return nil, ErrCartUpdateFailed
	}
	cart.ItemsPrice = models.NewMoneyFromDecimal(totals.ItemsPrice)
	cart.ShippingPrice = models.NewMoneyFromDecimal(totals.ShippingPrice)
	cart.TotalPrice = models.NewMoneyFromDecimal(totals.TotalPrice)
	return cart, nil
}
