package repository

import (
	"fmt"
	"time"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"

	"gorm.io/gorm"
)

// StatsRepository runs the reporting aggregations. It only aggregates;
// business rules stay in the service layer.
type StatsRepository interface {
	GetProfitStats(from, to time.Time) ([]ProfitStatRow, error)
	GetSalesOverview() (SalesOverviewRow, error)
	GetMonthlySales(limit int) ([]MonthlySalesRow, error)
	GetLatestOrders(limit int) ([]models.Order, error)
}

// ProfitStatRow is one per-product aggregation row.
type ProfitStatRow struct {
	ProductID    uint
	Name         string
	TotalQty     int64
	TotalRevenue float64
	TotalCost    float64
	TotalProfit  float64
}

// SalesOverviewRow holds the dashboard headline numbers.
type SalesOverviewRow struct {
	OrdersCount   int64
	ProductsCount int64
	UsersCount    int64
	TotalSales    float64
	TotalProfit   float64
}

// MonthlySalesRow is one month bucket ("MM/YY").
type MonthlySalesRow struct {
	Month      string
	TotalSales float64
}

// GormStatsRepository is the GORM implementation.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository builds a stats repository.
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// GetProfitStats aggregates per-product quantity, revenue, cost and
// profit over [from, to], excluding cancelled orders, sorted by profit.
func (r *GormStatsRepository) GetProfitStats(from, to time.Time) ([]ProfitStatRow, error) {
	var rows []ProfitStatRow
	err := r.db.Model(&models.OrderItem{}).
		Select(
			"order_items.product_id as product_id",
			"order_items.name as name",
			"COALESCE(SUM(order_items.qty), 0) as total_qty",
			"COALESCE(SUM(order_items.price * order_items.qty), 0) as total_revenue",
			"COALESCE(SUM(order_items.cost_price * order_items.qty), 0) as total_cost",
			"COALESCE(SUM((order_items.price - order_items.cost_price) * order_items.qty), 0) as total_profit",
		).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", constants.OrderStatusCancelled).
		Where("orders.created_at >= ? AND orders.created_at <= ?", from, to).
		Group("order_items.product_id, order_items.name").
		Order("total_profit desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetSalesOverview collects the headline counts and sums.
func (r *GormStatsRepository) GetSalesOverview() (SalesOverviewRow, error) {
	result := SalesOverviewRow{}

	if err := r.db.Model(&models.Order{}).Count(&result.OrdersCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).Count(&result.ProductsCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.UsersCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&result.TotalSales).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.OrderItem{}).
		Select("COALESCE(SUM((order_items.price - order_items.cost_price) * order_items.qty), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", constants.OrderStatusCancelled).
		Scan(&result.TotalProfit).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetMonthlySales buckets sales by month, newest bucket last.
func (r *GormStatsRepository) GetMonthlySales(limit int) ([]MonthlySalesRow, error) {
	monthExpr := monthBucketExpr(r.db, "created_at")
	var rows []MonthlySalesRow
	err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as month, COALESCE(SUM(total_price), 0) as total_sales", monthExpr)).
		Group(monthExpr).
		Order("month asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLatestOrders returns the most recent orders for the dashboard.
func (r *GormStatsRepository) GetLatestOrders(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
