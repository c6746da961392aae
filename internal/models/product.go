package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Price, ShippingPrice and Stock are the
// authoritative values consulted at checkout; client-submitted prices
// are ignored.
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"type:varchar(300);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	Brand         string         `gorm:"type:varchar(100)" json:"brand,omitempty"`
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	ShippingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	CostPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`
	Stock         int            `gorm:"not null;default:0" json:"stock"`
	Images        StringArray    `gorm:"type:json" json:"images"`
	Colors        StringArray    `gorm:"type:json" json:"colors"`
	IsFeatured    bool           `gorm:"default:false;index" json:"is_featured"`
	Banner        string         `gorm:"type:varchar(500)" json:"banner,omitempty"` // hero image when featured
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}
