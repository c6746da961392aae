package admin

import "github.com/tijara-next/internal/provider"

// Handler serves the admin panel API.
type Handler struct {
	*provider.Container
}

// New builds the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
