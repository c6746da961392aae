package worker

import (
	"testing"

	"github.com/tijara-next/internal/models"
)

func TestSummarizeOrderItemsNilOrder(t *testing.T) {
	if got := summarizeOrderItems(nil); got != "" {
		t.Fatalf("expected empty summary for nil order, got %q", got)
	}
}

func TestSummarizeOrderItems(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{
			{Name: "Ceramic Mug", Qty: 2},
			{Name: "Desk Lamp", Qty: 1, SelectedColor: "black"},
			{Name: "   ", Qty: 3},
		},
	}

	got := summarizeOrderItems(order)
	want := "2x Ceramic Mug, 1x Desk Lamp (black)"
	if got != want {
		t.Fatalf("unexpected summary, want %q, got %q", want, got)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
