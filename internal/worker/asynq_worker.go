package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/provider"
	"github.com/tijara-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles order lifecycle events off the queue. Each handler
// re-reads the order so the notification hooks always see the current
// row, not the payload snapshot.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderCreated, c.handleOrderCreated)
	mux.HandleFunc(queue.TaskOrderMerged, c.handleOrderMerged)
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
}

func (c *Consumer) handleOrderCreated(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_created_unmarshal_failed", "error", err)
		return err
	}
	order, err := c.loadOrder(payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	logger.Infow("worker_order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"phone_number", order.PhoneNumber,
		"total_price", order.TotalPrice.String(),
		"items", summarizeOrderItems(order),
	)
	return nil
}

func (c *Consumer) handleOrderMerged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderMergedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_merged_unmarshal_failed", "error", err)
		return err
	}
	order, err := c.loadOrder(payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	logger.Infow("worker_order_merged",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"phone_number", order.PhoneNumber,
		"quantity", order.Quantity,
		"total_price", order.TotalPrice.String(),
		"items", summarizeOrderItems(order),
	)
	return nil
}

func (c *Consumer) handleOrderStatusChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_changed_unmarshal_failed", "error", err)
		return err
	}
	order, err := c.loadOrder(payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	logger.Infow("worker_order_status_changed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", status,
	)
	return nil
}

// loadOrder fetches the order and swallows not-found: an order deleted
// between enqueue and consume is not a retryable failure.
func (c *Consumer) loadOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		logger.Debugw("worker_skip_invalid_payload", "order_id", orderID)
		return nil, nil
	}
	order, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw("worker_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		logger.Debugw("worker_skip_order_not_found", "order_id", orderID)
		return nil, nil
	}
	return order, nil
}

// summarizeOrderItems renders the item lines as "2x Widget, 1x Gadget"
// for notification and audit logging.
func summarizeOrderItems(order *models.Order) string {
	if order == nil || len(order.Items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		if color := strings.TrimSpace(item.SelectedColor); color != "" {
			name = fmt.Sprintf("%s (%s)", name, color)
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Qty, name))
	}
	return strings.Join(parts, ", ")
}
