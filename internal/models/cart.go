package models

import (
	"time"
)

// Cart is a per-session bag of line items. The mirror totals are
// recomputed on every mutation through the same pricing rules as
// orders, and zeroed when a checkout consumes the cart.
type Cart struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	SessionCartID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_cart_id"`
	UserID        *uint     `gorm:"index" json:"user_id,omitempty"` // nil until a signed-in user claims the cart
	ItemsPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`
	ShippingPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	TotalPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name.
func (Cart) TableName() string {
	return "carts"
}
