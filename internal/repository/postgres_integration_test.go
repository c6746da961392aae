//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("bad money %q: %v", s, err)
	}
	return m
}

func TestPostgresOrderRoundTrip(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)

	order := &models.Order{
		OrderNo:     "TJ-IT-1",
		FullName:    "Integration Buyer",
		PhoneNumber: "07700000001",
		Governorate: "Baghdad",
		Address:     "1 Test St",
		Status:      constants.OrderStatusHome,
		ItemsPrice:  mustMoney(t, "22.00"),
		TotalPrice:  mustMoney(t, "32.00"),
		Quantity:    2,
	}
	items := []models.OrderItem{
		{ProductID: 1, Slug: "widget", Name: "Widget", Price: mustMoney(t, "11.00"), ShippingPrice: mustMoney(t, "10.00"), Qty: 2},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got == nil || got.OrderNo != "TJ-IT-1" || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.TotalPrice.String() != "32.00" {
		t.Fatalf("unexpected total %s", got.TotalPrice.String())
	}
}

func TestPostgresMergeCandidateLookup(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)

	phone := "07700000002"
	old := &models.Order{
		OrderNo: "TJ-IT-OLD", FullName: "B", PhoneNumber: phone,
		Governorate: "Baghdad", Address: "1 Test St",
		Status: constants.OrderStatusHome,
	}
	if err := repo.Create(old, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	stale := time.Now().Add(-20 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", old.ID).Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	cutoff := time.Now().Add(-18 * time.Hour)
	candidate, err := repo.FindMergeCandidate(phone, cutoff, constants.MergeOpenStatuses)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if candidate != nil {
		t.Fatalf("stale order must not match, got %+v", candidate)
	}

	fresh := &models.Order{
		OrderNo: "TJ-IT-NEW", FullName: "B", PhoneNumber: phone,
		Governorate: "Baghdad", Address: "1 Test St",
		Status: constants.OrderStatusPending,
	}
	if err := repo.Create(fresh, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	candidate, err = repo.FindMergeCandidate(phone, cutoff, constants.MergeOpenStatuses)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if candidate == nil || candidate.ID != fresh.ID {
		t.Fatalf("expected fresh order as candidate, got %+v", candidate)
	}
}
