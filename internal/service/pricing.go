package service

import (
	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/models"

	"github.com/shopspring/decimal"
)

// PriceLine is the minimal shape the pricing calculator needs from a
// line item. Prices come from stored snapshots, never from the client.
type PriceLine struct {
	Price         decimal.Decimal
	ShippingPrice decimal.Decimal
	Qty           int
}

// Totals is the itemized result of a pricing pass.
type Totals struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// ComputeTotals derives order totals from a set of line items. It is
// pure and must be re-run every time the item set changes; totals are
// never patched incrementally.
//
// itemsPrice is the 2dp-rounded sum of price×qty. Shipping follows the
// configured policy: "max" charges the single highest per-item shipping
// price in the order, "sum" adds each line's shipping once per line.
// An empty item set prices to zero across the board.
func ComputeTotals(lines []PriceLine, shippingPolicy string) Totals {
	items := decimal.Zero
	shipping := decimal.Zero
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Qty))
		items = items.Add(line.Price.Mul(qty))
		switch shippingPolicy {
		case constants.ShippingPolicySum:
			shipping = shipping.Add(line.ShippingPrice)
		default:
			if line.ShippingPrice.GreaterThan(shipping) {
				shipping = line.ShippingPrice
			}
		}
	}
	items = items.Round(2)
	shipping = shipping.Round(2)
	return Totals{
		ItemsPrice:    items,
		ShippingPrice: shipping,
		TotalPrice:    items.Add(shipping),
	}
}

func orderItemLines(items []models.OrderItem) []PriceLine {
	lines := make([]PriceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PriceLine{
			Price:         item.Price.Decimal,
			ShippingPrice: item.ShippingPrice.Decimal,
			Qty:           item.Qty,
		})
	}
	return lines
}

func cartItemLines(items []models.CartItem) []PriceLine {
	lines := make([]PriceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PriceLine{
			Price:         item.Price.Decimal,
			ShippingPrice: item.ShippingPrice.Decimal,
			Qty:           item.Qty,
		})
	}
	return lines
}

func sumQuantities(items []models.OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Qty
	}
	return total
}
