package service

import (
	"strings"
	"time"

	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/queue"
)

// UpdateOrderInput is an admin-side order patch. Nil fields are left
// untouched; totals are never patchable, they only change through the
// merge/create recompute.
type UpdateOrderInput struct {
	FullName    *string
	PhoneNumber *string
	Governorate *string
	Address     *string
	Notes       *string
	Status      *string
}

// IsValidOrderStatus reports whether a status belongs to the closed
// enumeration.
func IsValidOrderStatus(status string) bool {
	for _, s := range constants.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UpdateOrder applies an admin patch. Admins may set any status; there
// is no enforced transition graph.
func (s *OrderService) UpdateOrder(orderID uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		logger.Errorw("order_fetch_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Governorate != nil {
		updates["governorate"] = strings.TrimSpace(*input.Governorate)
	}
	if input.Address != nil {
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Notes != nil {
		updates["notes"] = strings.TrimSpace(*input.Notes)
	}
	statusChanged := false
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !IsValidOrderStatus(status) {
			return nil, ErrInvalidOrderStatus
		}
		updates["status"] = status
		statusChanged = status != order.Status
	}
	if len(updates) == 0 {
		return order, nil
	}

	if err := s.orderRepo.Update(orderID, updates); err != nil {
		logger.Errorw("order_update_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderUpdateFailed
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if statusChanged {
		s.publishStatusChange(updated)
	}
	return updated, nil
}

// BulkUpdateOrderStatus sets one status across a set of orders. Each
// row update is independent; there is no cross-order transaction
// requirement.
func (s *OrderService) BulkUpdateOrderStatus(ids []uint, status string) (int64, error) {
	status = strings.TrimSpace(status)
	if !IsValidOrderStatus(status) {
		return 0, ErrInvalidOrderStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}
	affected, err := s.orderRepo.BulkUpdateStatus(ids, status)
	if err != nil {
		logger.Errorw("order_bulk_status_failed", "status", status, "error", err)
		return 0, ErrOrderUpdateFailed
	}
	logger.Infow("order_bulk_status_updated", "status", status, "count", affected)
	return affected, nil
}

// DeliverOrder marks an order handed over: status becomes completed
// and the delivery time is recorded.
func (s *OrderService) DeliverOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	if err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusCompleted, map[string]interface{}{
		"delivered_at": &now,
	}); err != nil {
		logger.Errorw("order_deliver_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderUpdateFailed
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	s.publishStatusChange(updated)
	return updated, nil
}

// UpdateOrderToPaid records an external payment confirmation. The
// payload is stored opaque; nothing here interprets it.
func (s *OrderService) UpdateOrderToPaid(orderID uint, paymentResult models.JSON) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	if err := s.orderRepo.Update(orderID, map[string]interface{}{
		"is_paid":             true,
		"paid_at":             &now,
		"payment_result_json": paymentResult,
	}); err != nil {
		logger.Errorw("order_mark_paid_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	return s.orderRepo.GetByID(orderID)
}

// DeleteOrder removes an order and its items. Irreversible.
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return ErrOrderFetchFailed
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if err := s.orderRepo.Delete(orderID); err != nil {
		logger.Errorw("order_delete_failed", "order_id", orderID, "error", err)
		return ErrOrderDeleteFailed
	}
	logger.Infow("order_deleted", "order_id", orderID, "order_no", order.OrderNo)
	return nil
}

func (s *OrderService) publishStatusChange(order *models.Order) {
	if order == nil || s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusChanged(queue.OrderStatusChangedPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_event_enqueue_failed", "order_id", order.ID, "error", err)
	}
}
