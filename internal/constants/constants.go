package constants

// Order status constants. "home" is the default state for a freshly
// placed order; "home" and "pending" are the only statuses still open
// for merging a repeat submission.
const (
	OrderStatusHome      = "home"
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusDelivered = "delivered"
	OrderStatusReturned  = "returned"
	OrderStatusWaiting   = "waiting"
	OrderStatusBanned    = "banned"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusHome,
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusDelivered,
	OrderStatusReturned,
	OrderStatusWaiting,
	OrderStatusBanned,
	OrderStatusCancelled,
}

// MergeOpenStatuses are the statuses still eligible to receive merged items.
var MergeOpenStatuses = []string{OrderStatusHome, OrderStatusPending}

// Shipping policy constants
const (
	ShippingPolicyMax = "max"
	ShippingPolicySum = "sum"
)

// User role constants
const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Captcha scene constants
const (
	CaptchaSceneQuickOrder = "quick_order"
)

// Queue constants
const (
	QueueDefault           = "default"
	TaskOrderCreated       = "order:created"
	TaskOrderMerged        = "order:merged"
	TaskOrderStatusChanged = "order:status_changed"
)

// Cache defaults
const (
	RedisPrefixDefault = "tj"
)

// Order defaults
const (
	DefaultMergeWindowHours = 18
	// An IP tied to more distinct phone numbers, or shipping to more
	// distinct governorates, than these limits is flagged at creation.
	DefaultFraudMaxPhonesPerIP       = 2
	DefaultFraudMaxGovernoratesPerIP = 1
)
