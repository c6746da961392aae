package service

import (
	"context"
	"testing"
	"time"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"
)

func TestGetOrderProfitStats(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newTestOrderService(t, db, nil)
	statsSvc := NewStatsService(repository.NewStatsRepository(db))

	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 50)
	if _, err := orderSvc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701000011")}, CheckoutItem{ProductID: product.ID, Qty: 2}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// A cancelled order must not count.
	cancelled, err := orderSvc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701000012")}, CheckoutItem{ProductID: product.ID, Qty: 5})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", cancelled.Order.ID).Update("status", constants.OrderStatusCancelled).Error; err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	now := time.Now()
	stats, err := statsSvc.GetOrderProfitStats(now, now)
	if err != nil {
		t.Fatalf("profit stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stats))
	}
	row := stats[0]
	if row.ProductID != product.ID || row.TotalQty != 2 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.TotalRevenue != "22.00" {
		t.Fatalf("unexpected revenue %s", row.TotalRevenue)
	}
	if row.TotalCost != "12.00" {
		t.Fatalf("unexpected cost %s", row.TotalCost)
	}
	if row.TotalProfit != "10.00" {
		t.Fatalf("unexpected profit %s", row.TotalProfit)
	}
}

func TestGetOrderProfitStatsEmptyRange(t *testing.T) {
	db := newTestDB(t)
	statsSvc := NewStatsService(repository.NewStatsRepository(db))

	past := time.Now().AddDate(0, 0, -30)
	stats, err := statsSvc.GetOrderProfitStats(past, past)
	if err != nil {
		t.Fatalf("profit stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected no rows, got %d", len(stats))
	}
}

func TestGetOrderSummary(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newTestOrderService(t, db, nil)
	statsSvc := NewStatsService(repository.NewStatsRepository(db))

	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 50)
	if _, err := orderSvc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701000013")}, CheckoutItem{ProductID: product.ID, Qty: 2}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	summary, err := statsSvc.GetOrderSummary(0, 0)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.OrdersCount != 1 || summary.ProductsCount != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.TotalSales != "32.00" {
		t.Fatalf("unexpected total sales %s", summary.TotalSales)
	}
	if summary.TotalProfit != "10.00" {
		t.Fatalf("unexpected total profit %s", summary.TotalProfit)
	}
	if len(summary.MonthlySales) != 1 {
		t.Fatalf("expected 1 monthly bucket, got %d", len(summary.MonthlySales))
	}
	if len(summary.LatestOrders) != 1 {
		t.Fatalf("expected 1 latest order, got %d", len(summary.LatestOrders))
	}
}
