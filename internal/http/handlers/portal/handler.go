package portal

import "github.com/suzyprado85-cyber/portalunk2-sub001/internal/provider"

// Handler is the authenticated dashboard API entry point.
type Handler struct {
	*provider.Container
}

// New creates the portal handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
