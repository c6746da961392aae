package queue

import (
	"encoding/json"

	"github.com/tijara-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreated signals a freshly created order (receipt and
	// notification dispatch happen downstream).
	TaskOrderCreated = constants.TaskOrderCreated
	// TaskOrderMerged signals a submission folded into an open order.
	TaskOrderMerged = constants.TaskOrderMerged
	// TaskOrderStatusChanged signals an admin status transition.
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
)

// OrderCreatedPayload is the new-order event payload.
type OrderCreatedPayload struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
}

// OrderMergedPayload is the merged-order event payload.
type OrderMergedPayload struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	PhoneNumber string `json:"phone_number"`
}

// OrderStatusChangedPayload is the status-change event payload.
type OrderStatusChangedPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderCreatedTask builds the new-order task.
func NewOrderCreatedTask(payload OrderCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreated, body), nil
}

// NewOrderMergedTask builds the merged-order task.
func NewOrderMergedTask(payload OrderMergedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderMerged, body), nil
}

// NewOrderStatusChangedTask builds the status-change task.
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}
