package service

import (
	"time"

	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProfitStat is one product's aggregated sales line, money fields
// already rounded for display.
type ProfitStat struct {
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	TotalQty     int64  `json:"total_qty"`
	TotalRevenue string `json:"total_revenue"`
	TotalCost    string `json:"total_cost"`
	TotalProfit  string `json:"total_profit"`
}

// OrderSummary carries the admin dashboard payload.
type OrderSummary struct {
	OrdersCount   int64             `json:"orders_count"`
	ProductsCount int64             `json:"products_count"`
	UsersCount    int64             `json:"users_count"`
	TotalSales    string            `json:"total_sales"`
	TotalProfit   string            `json:"total_profit"`
	MonthlySales  []MonthlySales    `json:"monthly_sales"`
	LatestOrders  []models.Order    `json:"latest_orders"`
}

// MonthlySales is one "MM/YY" bucket.
type MonthlySales struct {
	Month      string `json:"month"`
	TotalSales string `json:"total_sales"`
}

// StatsService answers the reporting queries.
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService builds a stats service.
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetOrderProfitStats aggregates per-product profit over a date range.
// Dates are inclusive whole days: from is widened to 00:00:00 and to
// to 23:59:59 in the dates' own location.
func (s *StatsService) GetOrderProfitStats(from, to time.Time) ([]ProfitStat, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())

	rows, err := s.statsRepo.GetProfitStats(start, end)
	if err != nil {
		logger.Errorw("profit_stats_failed", "error", err)
		return nil, err
	}

	stats := make([]ProfitStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, ProfitStat{
			ProductID:    row.ProductID,
			Name:         row.Name,
			TotalQty:     row.TotalQty,
			TotalRevenue: moneyString(row.TotalRevenue),
			TotalCost:    moneyString(row.TotalCost),
			TotalProfit:  moneyString(row.TotalProfit),
		})
	}
	return stats, nil
}

// GetOrderSummary collects the dashboard overview: headline counts,
// monthly sales buckets and the latest orders.
func (s *StatsService) GetOrderSummary(monthlyLimit, latestLimit int) (*OrderSummary, error) {
	if monthlyLimit <= 0 {
		monthlyLimit = 6
	}
	if latestLimit <= 0 {
		latestLimit = 6
	}

	overview, err := s.statsRepo.GetSalesOverview()
	if err != nil {
		logger.Errorw("sales_overview_failed", "error", err)
		return nil, err
	}
	monthlyRows, err := s.statsRepo.GetMonthlySales(monthlyLimit)
	if err != nil {
		logger.Errorw("monthly_sales_failed", "error", err)
		return nil, err
	}
	latest, err := s.statsRepo.GetLatestOrders(latestLimit)
	if err != nil {
		logger.Errorw("latest_orders_failed", "error", err)
		return nil, err
	}

	monthly := make([]MonthlySales, 0, len(monthlyRows))
	for _, row := range monthlyRows {
		monthly = append(monthly, MonthlySales{
			Month:      row.Month,
			TotalSales: moneyString(row.TotalSales),
		})
	}

	return &OrderSummary{
		OrdersCount:   overview.OrdersCount,
		ProductsCount: overview.ProductsCount,
		UsersCount:    overview.UsersCount,
		TotalSales:    moneyString(overview.TotalSales),
		TotalProfit:   moneyString(overview.TotalProfit),
		MonthlySales:  monthly,
		LatestOrders:  latest,
	}, nil
}

func moneyString(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}
