package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tijara-next/internal/cache"
	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestOrderService(t *testing.T, db *gorm.DB, fraud *FraudChecker) *OrderService {
	t.Helper()
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		fraud,
		cache.NewPhoneLock(0),
		nil,
		OrderPolicy{},
	)
}

func createTestProduct(t *testing.T, db *gorm.DB, slug, price, shipping, cost string, stock int) *models.Product {
	t.Helper()
	priceM, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	shippingM, err := models.NewMoneyFromString(shipping)
	if err != nil {
		t.Fatalf("bad shipping %q: %v", shipping, err)
	}
	costM, err := models.NewMoneyFromString(cost)
	if err != nil {
		t.Fatalf("bad cost %q: %v", cost, err)
	}
	product := &models.Product{
		CategoryID:    1,
		Slug:          slug,
		Name:          strings.ReplaceAll(slug, "-", " "),
		Price:         priceM,
		ShippingPrice: shippingM,
		CostPrice:     costM,
		Stock:         stock,
		Images:        models.StringArray{"/uploads/" + slug + ".jpg"},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func testCustomer(phone string) CustomerInfo {
	return CustomerInfo{
		FullName:    "Layla Hasan",
		PhoneNumber: phone,
		Governorate: "Baghdad",
		Address:     "12 Rasheed St",
	}
}

func TestCreateQuickOrderCreatesFreshOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	result, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{
		Customer: testCustomer("07701234567"),
		ClientIP: "203.0.113.10",
	}, CheckoutItem{ProductID: product.ID, Qty: 2})
	if err != nil {
		t.Fatalf("quick order: %v", err)
	}
	if result.Merged {
		t.Fatalf("expected fresh order, got merged")
	}

	order := result.Order
	if order.Status != constants.OrderStatusHome {
		t.Fatalf("unexpected status %q", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "TJ") {
		t.Fatalf("unexpected order no %q", order.OrderNo)
	}
	if got := order.ItemsPrice.String(); got != "22.00" {
		t.Fatalf("unexpected items price %s", got)
	}
	if got := order.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("unexpected shipping price %s", got)
	}
	if got := order.TotalPrice.String(); got != "32.00" {
		t.Fatalf("unexpected total price %s", got)
	}
	if order.Quantity != 2 {
		t.Fatalf("unexpected quantity %d", order.Quantity)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item row, got %d", len(order.Items))
	}
	if order.Items[0].Name != product.Name || order.Items[0].Slug != product.Slug {
		t.Fatalf("item snapshot mismatch: %+v", order.Items[0])
	}
}

func TestCreateQuickOrderMergesWithinWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	first := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 10)
	second := createTestProduct(t, db, "leather-wallet", "5.00", "7.00", "2.50", 10)

	phone := "07701234567"
	if _, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: first.ID, Qty: 2}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	customer := testCustomer(phone)
	customer.FullName = "Layla H. Hasan"
	customer.Address = "14 Rasheed St"
	result, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: customer}, CheckoutItem{ProductID: second.ID, Qty: 1})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if !result.Merged {
		t.Fatalf("expected merge into the open order")
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 order, got %d", count)
	}

	order := result.Order
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 item rows, got %d", len(order.Items))
	}
	if got := order.ItemsPrice.String(); got != "27.00" {
		t.Fatalf("unexpected items price %s", got)
	}
	if got := order.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("unexpected shipping price %s", got)
	}
	if got := order.TotalPrice.String(); got != "37.00" {
		t.Fatalf("unexpected total price %s", got)
	}
	if order.Quantity != 3 {
		t.Fatalf("unexpected quantity %d", order.Quantity)
	}
	// Latest submission wins for contact fields.
	if order.FullName != "Layla H. Hasan" || order.Address != "14 Rasheed St" {
		t.Fatalf("contact fields not updated: %q %q", order.FullName, order.Address)
	}
}

func TestCreateQuickOrderSameProductIncrementsQty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 10)

	phone := "07701234567"
	ctx := context.Background()
	if _, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 2}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	result, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 2})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if !result.Merged {
		t.Fatalf("expected merge")
	}

	// Same product never duplicates the line; the qty increments.
	if len(result.Order.Items) != 1 {
		t.Fatalf("expected 1 item row, got %d", len(result.Order.Items))
	}
	if result.Order.Items[0].Qty != 4 {
		t.Fatalf("unexpected qty %d", result.Order.Items[0].Qty)
	}
	if got := result.Order.TotalPrice.String(); got != "54.00" {
		t.Fatalf("unexpected total price %s", got)
	}
}

func TestCheckoutOutsideWindowCreatesNewOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 10)

	phone := "07701234567"
	ctx := context.Background()
	first, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	stale := time.Now().Add(-19 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", first.Order.ID).Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate order: %v", err)
	}

	result, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if result.Merged {
		t.Fatalf("expected a fresh order outside the merge window")
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 orders, got %d", count)
	}
}

func TestCheckoutSkipsClosedOrders(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 10)

	phone := "07701234567"
	ctx := context.Background()
	first, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", first.Order.ID).Update("status", constants.OrderStatusCompleted).Error; err != nil {
		t.Fatalf("close order: %v", err)
	}

	result, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if result.Merged {
		t.Fatalf("completed orders must not receive merged items")
	}
}

func TestCheckoutRejectsOutOfStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 1)

	_, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701234567")}, CheckoutItem{ProductID: product.ID, Qty: 2})
	if !errors.Is(err, ErrProductOutOfStock) {
		t.Fatalf("expected ErrProductOutOfStock, got %v", err)
	}
}

func TestCheckoutRejectsUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)

	_, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701234567")}, CheckoutItem{ProductID: 999, Qty: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCheckoutRejectsMissingContactFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	customer := testCustomer("07701234567")
	customer.Address = "   "
	_, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: customer}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if !errors.Is(err, ErrOrderCreateFailed) {
		t.Fatalf("expected ErrOrderCreateFailed, got %v", err)
	}
}

func TestCreateOrderFromCartClearsCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), constants.ShippingPolicyMax)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 10)

	sessionID := NewSessionCartID()
	if _, err := cartSvc.AddItem(sessionID, nil, product.ID, 2, ""); err != nil {
		t.Fatalf("add cart item: %v", err)
	}

	result, err := svc.CreateOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701234567")}, sessionID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got := result.Order.TotalPrice.String(); got != "32.00" {
		t.Fatalf("unexpected total price %s", got)
	}

	cart, err := cartSvc.GetCart(sessionID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if cart != nil && len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %d items", len(cart.Items))
	}
}

func TestCreateOrderFromEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)

	_, err := svc.CreateOrder(context.Background(), CheckoutInput{Customer: testCustomer("07701234567")}, NewSessionCartID())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutFlagsSuspiciousSubmission(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	fraud := NewFraudChecker(orderRepo, FraudThresholds{MaxPhonesPerIP: 2, MaxGovernoratesPerIP: 1})
	svc := newTestOrderService(t, db, fraud)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 50)

	ip := "203.0.113.99"
	ctx := context.Background()
	for i, phone := range []string{"07701111111", "07702222222"} {
		customer := testCustomer(phone)
		result, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: customer, ClientIP: ip}, CheckoutItem{ProductID: product.ID, Qty: 1})
		if err != nil {
			t.Fatalf("checkout %d: %v", i, err)
		}
		if result.Order.Status != constants.OrderStatusHome {
			t.Fatalf("checkout %d: unexpected status %q", i, result.Order.Status)
		}
	}

	// Third distinct phone from the same IP crosses the threshold.
	result, err := svc.CreateQuickOrder(ctx, CheckoutInput{Customer: testCustomer("07703333333"), ClientIP: ip}, CheckoutItem{ProductID: product.ID, Qty: 1})
	if err != nil {
		t.Fatalf("third checkout: %v", err)
	}
	if result.Order.Status != constants.OrderStatusBanned {
		t.Fatalf("expected banned status, got %q", result.Order.Status)
	}
}
