package public

import "github.com/tijara-next/internal/provider"

// Handler serves the storefront and customer-facing API.
type Handler struct {
	*provider.Container
}

// New builds the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
