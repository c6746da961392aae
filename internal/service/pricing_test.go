package service

import (
	"testing"

	"github.com/tijara-next/internal/constants"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, constants.ShippingPolicyMax)
	if got := totals.ItemsPrice.StringFixed(2); got != "0.00" {
		t.Fatalf("expected zero items price, got %s", got)
	}
	if got := totals.ShippingPrice.StringFixed(2); got != "0.00" {
		t.Fatalf("expected zero shipping price, got %s", got)
	}
	if got := totals.TotalPrice.StringFixed(2); got != "0.00" {
		t.Fatalf("expected zero total price, got %s", got)
	}
}

func TestComputeTotalsMaxShipping(t *testing.T) {
	lines := []PriceLine{
		{Price: dec(t, "11.00"), ShippingPrice: dec(t, "10.00"), Qty: 2},
		{Price: dec(t, "5.00"), ShippingPrice: dec(t, "7.00"), Qty: 1},
	}

	totals := ComputeTotals(lines, constants.ShippingPolicyMax)
	if got := totals.ItemsPrice.StringFixed(2); got != "27.00" {
		t.Fatalf("unexpected items price %s", got)
	}
	// Only the single highest per-item shipping price is charged.
	if got := totals.ShippingPrice.StringFixed(2); got != "10.00" {
		t.Fatalf("unexpected shipping price %s", got)
	}
	if got := totals.TotalPrice.StringFixed(2); got != "37.00" {
		t.Fatalf("unexpected total price %s", got)
	}
}

func TestComputeTotalsSumShipping(t *testing.T) {
	lines := []PriceLine{
		{Price: dec(t, "11.00"), ShippingPrice: dec(t, "10.00"), Qty: 2},
		{Price: dec(t, "5.00"), ShippingPrice: dec(t, "7.00"), Qty: 1},
	}

	totals := ComputeTotals(lines, constants.ShippingPolicySum)
	if got := totals.ShippingPrice.StringFixed(2); got != "17.00" {
		t.Fatalf("unexpected shipping price %s", got)
	}
	if got := totals.TotalPrice.StringFixed(2); got != "44.00" {
		t.Fatalf("unexpected total price %s", got)
	}
}

func TestComputeTotalsRoundsToTwoDecimals(t *testing.T) {
	lines := []PriceLine{
		{Price: dec(t, "3.333"), ShippingPrice: dec(t, "0"), Qty: 3},
	}

	totals := ComputeTotals(lines, constants.ShippingPolicyMax)
	if got := totals.ItemsPrice.StringFixed(2); got != "10.00" {
		t.Fatalf("unexpected items price %s", got)
	}
	if got := totals.TotalPrice.StringFixed(2); got != "10.00" {
		t.Fatalf("unexpected total price %s", got)
	}
}

func TestMergeCheckoutItemsAggregatesDuplicates(t *testing.T) {
	merged, err := mergeCheckoutItems([]CheckoutItem{
		{ProductID: 1, Qty: 2},
		{ProductID: 2, Qty: 1, SelectedColor: "red"},
		{ProductID: 1, Qty: 3, SelectedColor: "blue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged lines, got %d", len(merged))
	}
	if merged[0].ProductID != 1 || merged[0].Qty != 5 {
		t.Fatalf("unexpected first line: %+v", merged[0])
	}
	if merged[0].SelectedColor != "blue" {
		t.Fatalf("expected latest color to win, got %q", merged[0].SelectedColor)
	}
}

func TestMergeCheckoutItemsRejectsInvalid(t *testing.T) {
	if _, err := mergeCheckoutItems(nil); err != ErrInvalidOrderItem {
		t.Fatalf("expected ErrInvalidOrderItem for empty set, got %v", err)
	}
	if _, err := mergeCheckoutItems([]CheckoutItem{{ProductID: 0, Qty: 1}}); err != ErrInvalidOrderItem {
		t.Fatalf("expected ErrInvalidOrderItem for zero product id, got %v", err)
	}
	if _, err := mergeCheckoutItems([]CheckoutItem{{ProductID: 1, Qty: 0}}); err != ErrInvalidOrderItem {
		t.Fatalf("expected ErrInvalidOrderItem for zero qty, got %v", err)
	}
}
