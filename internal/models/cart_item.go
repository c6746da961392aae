package models

import (
	"time"
)

// CartItem is one product line in a cart, carrying the same snapshot
// shape as OrderItem so checkout can copy rows across directly.
type CartItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CartID        uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID     uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Slug          string    `gorm:"type:varchar(200);not null" json:"slug"`
	Name          string    `gorm:"type:varchar(300);not null" json:"name"`
	Image         string    `gorm:"type:varchar(500)" json:"image,omitempty"`
	Price         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	ShippingPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	Qty           int       `gorm:"not null" json:"qty"`
	SelectedColor string    `gorm:"type:varchar(50)" json:"selected_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
