package service

import (
	"errors"
	"testing"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/repository"

	"gorm.io/gorm"
)

func newTestCartService(t *testing.T, db *gorm.DB) *CartService {
	t.Helper()
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), constants.ShippingPolicyMax)
}

func TestAddItemCreatesCartAndLine(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	sessionID := NewSessionCartID()
	cart, err := svc.AddItem(sessionID, nil, product.ID, 2, "black")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Qty != 2 || line.SelectedColor != "black" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if line.Price.String() != "11.00" || line.Name != product.Name {
		t.Fatalf("snapshot mismatch: %+v", line)
	}
	if got := cart.TotalPrice.String(); got != "32.00" {
		t.Fatalf("unexpected cart total %s", got)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	sessionID := NewSessionCartID()
	if _, err := svc.AddItem(sessionID, nil, product.ID, 1, ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.AddItem(sessionID, nil, product.ID, 2, "")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Qty != 3 {
		t.Fatalf("unexpected qty %d", cart.Items[0].Qty)
	}
}

func TestAddItemEnforcesStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 2)

	sessionID := NewSessionCartID()
	if _, err := svc.AddItem(sessionID, nil, product.ID, 2, ""); err != nil {
		t.Fatalf("add within stock: %v", err)
	}
	if _, err := svc.AddItem(sessionID, nil, product.ID, 1, ""); !errors.Is(err, ErrProductOutOfStock) {
		t.Fatalf("expected ErrProductOutOfStock, got %v", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)

	if _, err := svc.AddItem(NewSessionCartID(), nil, 999, 1, ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRemoveItemDecrementsThenDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	sessionID := NewSessionCartID()
	if _, err := svc.AddItem(sessionID, nil, product.ID, 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.RemoveItem(sessionID, product.ID)
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Qty != 1 {
		t.Fatalf("expected decremented line, got %+v", cart.Items)
	}

	cart, err = svc.RemoveItem(sessionID, product.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Items))
	}
	if got := cart.TotalPrice.String(); got != "0.00" {
		t.Fatalf("unexpected total %s", got)
	}
}

func TestAttachUserBindsCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)
	product := createTestProduct(t, db, "wireless-earbuds", "11.00", "10.00", "6.00", 5)

	sessionID := NewSessionCartID()
	if _, err := svc.AddItem(sessionID, nil, product.ID, 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AttachUser(sessionID, 42); err != nil {
		t.Fatalf("attach: %v", err)
	}

	cart, err := svc.GetCart(sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart.UserID == nil || *cart.UserID != 42 {
		t.Fatalf("expected cart bound to user 42, got %+v", cart.UserID)
	}
}

func TestGetCartEmptySessionID(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db)

	cart, err := svc.GetCart("")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart for empty session id")
	}
}
