package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a storefront account. Role drives admin-area access.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"type:varchar(200);default:''" json:"name"`
	Role         string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}
