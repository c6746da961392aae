package models

import (
	"time"
)

// Order is one checkout transaction. The phone number is the matching
// key for merging repeat submissions; totals are always derived from
// the item rows, never taken from the client.
type Order struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	OrderNo       string     `gorm:"uniqueIndex;not null" json:"order_no"`
	FullName      string     `gorm:"type:varchar(200);not null" json:"full_name"`
	PhoneNumber   string     `gorm:"type:varchar(32);index;not null" json:"phone_number"`
	Governorate   string     `gorm:"type:varchar(100);not null" json:"governorate"`
	Address       string     `gorm:"type:varchar(500);not null" json:"address"`
	Notes         string     `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	UserID        *uint      `gorm:"index" json:"user_id,omitempty"` // nil for guest orders
	ClientIP      string     `gorm:"type:varchar(64);index" json:"client_ip,omitempty"`
	ItemsPrice    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`
	ShippingPrice Money      `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	TotalPrice    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	Quantity      int        `gorm:"not null;default:0" json:"quantity"` // denormalized sum of item quantities
	Status        string     `gorm:"type:varchar(20);index;not null;default:'home'" json:"status"`
	IsPaid        bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt        *time.Time `gorm:"index" json:"paid_at,omitempty"`
	// Opaque confirmation blob from the payment collaborator, stored
	// but never interpreted.
	PaymentResultJSON JSON       `gorm:"type:json" json:"payment_result,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name.
func (Order) TableName() string {
	return "orders"
}
