package repository

import (
	"errors"
	"time"

	"github.com/tijara-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface. All mutations to
// orders and order items go through here; callers that need multi-row
// atomicity rebind the repository onto a transaction via WithTx.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	FindMergeCandidate(phoneNumber string, cutoff time.Time, openStatuses []string) (*models.Order, error)
	ListItems(orderID uint) ([]models.OrderItem, error)
	GetItem(orderID, productID uint) (*models.OrderItem, error)
	CreateItem(item *models.OrderItem) error
	IncrementItemQty(orderID, productID uint, delta int, selectedColor string) error
	Update(id uint, updates map[string]interface{}) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	BulkUpdateStatus(ids []uint, status string) (int64, error)
	Delete(id uint) error
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListByClientIP(ip string) ([]models.Order, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx rebinds the repository onto a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts the order and its item rows.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order with its items, nil when absent.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindMergeCandidate returns the most recent open order for the phone
// number created at or after cutoff, nil when none qualifies.
func (r *GormOrderRepository) FindMergeCandidate(phoneNumber string, cutoff time.Time, openStatuses []string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("phone_number = ? AND created_at >= ? AND status IN ?", phoneNumber, cutoff, openStatuses).
		Order("created_at desc").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListItems fetches all item rows of an order.
func (r *GormOrderRepository) ListItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("product_id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches one item row by its composite key, nil when absent.
func (r *GormOrderRepository) GetItem(orderID, productID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item row.
func (r *GormOrderRepository) CreateItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

// IncrementItemQty adds delta to an existing item row's quantity.
// Snapshot fields stay untouched; selectedColor is last-write-wins
// when a non-empty value is submitted.
func (r *GormOrderRepository) IncrementItemQty(orderID, productID uint, delta int, selectedColor string) error {
	updates := map[string]interface{}{
		"qty": gorm.Expr("qty + ?", delta),
	}
	if selectedColor != "" {
		updates["selected_color"] = selectedColor
	}
	return r.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Updates(updates).Error
}

// Update applies field updates to an order row.
func (r *GormOrderRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatus sets the status plus any extra fields.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// BulkUpdateStatus sets one status on a set of orders, returning the
// affected row count.
func (r *GormOrderRepository) BulkUpdateStatus(ids []uint, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Order{}).Where("id IN ?", ids).Update("status", status)
	return res.RowsAffected, res.Error
}

// Delete removes an order and its items.
func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *GormOrderRepository) applyListFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PhoneNumber != "" {
		query = query.Where("phone_number = ?", filter.PhoneNumber)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListByUser lists a user's own orders, newest first.
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	query = r.applyListFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query.Preload("Items").Order("created_at desc"), filter.Page, filter.PageSize)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin lists orders with admin filters, newest first.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	query = r.applyListFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query.Preload("Items").Order("created_at desc"), filter.Page, filter.PageSize)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByClientIP returns all orders recorded against an IP. Feeds the
// fraud heuristic's phone/governorate diversity sets.
func (r *GormOrderRepository) ListByClientIP(ip string) ([]models.Order, error) {
	if ip == "" {
		return nil, nil
	}
	var orders []models.Order
	if err := r.db.Select("id", "phone_number", "governorate").
		Where("client_ip = ?", ip).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
