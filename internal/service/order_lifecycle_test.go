package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"

	"gorm.io/gorm"
)

func placeTestOrder(t *testing.T, db *gorm.DB, svc *OrderService, phone string) *models.Order {
	t.Helper()
	product := createTestProduct(t, db, "order-fixture-"+phone, "11.00", "10.00", "6.00", 50)
	result, err := svc.CreateQuickOrder(context.Background(), CheckoutInput{Customer: testCustomer(phone)}, CheckoutItem{ProductID: product.ID, Qty: 2})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return result.Order
}

func TestUpdateOrderPatchesFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	order := placeTestOrder(t, db, svc, "07701000001")

	name := "  Omar Karim "
	status := constants.OrderStatusWaiting
	updated, err := svc.UpdateOrder(order.ID, UpdateOrderInput{
		FullName: &name,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName != "Omar Karim" {
		t.Fatalf("unexpected full name %q", updated.FullName)
	}
	if updated.Status != constants.OrderStatusWaiting {
		t.Fatalf("unexpected status %q", updated.Status)
	}
	// Totals stay derived from the item rows.
	if got := updated.TotalPrice.String(); got != "32.00" {
		t.Fatalf("unexpected total price %s", got)
	}
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	order := placeTestOrder(t, db, svc, "07701000002")

	status := "teleported"
	_, err := svc.UpdateOrder(order.ID, UpdateOrderInput{Status: &status})
	if !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)

	name := "Nobody"
	_, err := svc.UpdateOrder(12345, UpdateOrderInput{FullName: &name})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestBulkUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	first := placeTestOrder(t, db, svc, "07701000003")
	second := placeTestOrder(t, db, svc, "07701000004")

	affected, err := svc.BulkUpdateOrderStatus([]uint{first.ID, second.ID, 9999}, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 affected rows, got %d", affected)
	}

	var statuses []string
	if err := db.Model(&models.Order{}).Where("id IN ?", []uint{first.ID, second.ID}).Pluck("status", &statuses).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	for _, s := range statuses {
		if s != constants.OrderStatusDelivered {
			t.Fatalf("unexpected status %q", s)
		}
	}
}

func TestBulkUpdateOrderStatusRejectsUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)

	if _, err := svc.BulkUpdateOrderStatus([]uint{1}, "teleported"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestDeliverOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	order := placeTestOrder(t, db, svc, "07701000005")

	delivered, err := svc.DeliverOrder(order.ID)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.Status != constants.OrderStatusCompleted {
		t.Fatalf("unexpected status %q", delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be set")
	}
}

func TestUpdateOrderToPaid(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	order := placeTestOrder(t, db, svc, "07701000006")

	paid, err := svc.UpdateOrderToPaid(order.ID, models.JSON{
		"provider":  "zaincash",
		"reference": "ZC-42",
	})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !paid.IsPaid || paid.PaidAt == nil {
		t.Fatalf("expected paid flags set: %+v", paid)
	}
	if paid.PaymentResultJSON["reference"] != "ZC-42" {
		t.Fatalf("unexpected payment result: %+v", paid.PaymentResultJSON)
	}
}

func TestDeleteOrderCascadesItems(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db, nil)
	order := placeTestOrder(t, db, svc, "07701000007")

	if err := svc.DeleteOrder(order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var orders, items int64
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orders)
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("expected cascade delete, got %d orders and %d items", orders, items)
	}

	if err := svc.DeleteOrder(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on second delete, got %v", err)
	}
}
