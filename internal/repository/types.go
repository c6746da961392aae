package repository

import "time"

// OrderListFilter narrows order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	PhoneNumber string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProductListFilter narrows product list queries.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	FeaturedOnly bool
	WithCategory bool
}

// UserListFilter narrows user list queries.
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}
