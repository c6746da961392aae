package repository

import (
	"errors"

	"github.com/tijara-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	GetBySessionID(sessionCartID string) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItem(cartID, productID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQty(itemID uint, qty int) error
	DeleteItem(itemID uint) error
	UpdateTotals(cartID uint, itemsPrice, shippingPrice, totalPrice models.Money) error
	AttachUser(cartID, userID uint) error
	Clear(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository builds a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx rebinds the repository onto a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetBySessionID fetches a cart with items by its session key, nil when absent.
func (r *GormCartRepository) GetBySessionID(sessionCartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Where("session_cart_id = ?", sessionCartID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByID fetches a cart with items, nil when absent.
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").First(&cart, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a new cart.
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// GetItem fetches one cart line by cart and product, nil when absent.
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a cart line.
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQty sets a cart line's quantity.
func (r *GormCartRepository) UpdateItemQty(itemID uint, qty int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("qty", qty).Error
}

// DeleteItem removes a cart line.
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// UpdateTotals writes the mirror totals.
func (r *GormCartRepository) UpdateTotals(cartID uint, itemsPrice, shippingPrice, totalPrice models.Money) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"items_price":    itemsPrice,
		"shipping_price": shippingPrice,
		"total_price":    totalPrice,
	}).Error
}

// AttachUser binds a cart to a signed-in user.
func (r *GormCartRepository) AttachUser(cartID, userID uint) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("user_id", userID).Error
}

// Clear deletes all lines and zeroes the mirror totals.
func (r *GormCartRepository) Clear(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	zero := models.ZeroMoney()
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"items_price":    zero,
		"shipping_price": zero,
		"total_price":    zero,
	}).Error
}
