package models

import (
	"time"
)

// OrderItem is one product line within an order. The composite primary
// key (OrderID, ProductID) forbids the same product appearing twice in
// one order; a repeat contribution must increment Qty on the existing
// row. Price, ShippingPrice, Name, Image and Slug are snapshots taken
// from the product at first insertion and never re-synced.
type OrderItem struct {
	OrderID       uint      `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID     uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Slug          string    `gorm:"type:varchar(200);not null" json:"slug"`
	Name          string    `gorm:"type:varchar(300);not null" json:"name"`
	Image         string    `gorm:"type:varchar(500)" json:"image,omitempty"`
	Price         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	ShippingPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	CostPrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"` // profit reporting only
	Qty           int       `gorm:"not null" json:"qty"`
	SelectedColor string    `gorm:"type:varchar(50)" json:"selected_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
