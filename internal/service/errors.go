package service

import "errors"

// Sentinel errors returned across the service boundary. Handlers map
// these onto response codes and user-facing messages.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderFetchFailed   = errors.New("order fetch failed")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrOrderUpdateFailed  = errors.New("order update failed")
	ErrOrderDeleteFailed  = errors.New("order delete failed")
	ErrInvalidOrderItem   = errors.New("invalid order item")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartUpdateFailed   = errors.New("cart update failed")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductOutOfStock  = errors.New("product out of stock")
	ErrProductSlugExists  = errors.New("product with this slug already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategorySlugExists = errors.New("category with this slug already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account disabled")
	ErrCaptchaRequired    = errors.New("captcha answer required")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
	ErrCheckoutBusy       = errors.New("another checkout for this phone number is in progress")
)
