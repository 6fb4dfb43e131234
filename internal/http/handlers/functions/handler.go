// Package functions hosts the serverless-compatible boundary
// endpoints. Unlike the portal API they speak a fixed wire contract:
// raw HTTP status codes, a literal {"error": "..."} body and
// permissive CORS, so existing clients keep working unchanged.
package functions

import "github.com/suzyprado85-cyber/portalunk2-sub001/internal/provider"

// Handler is the functions API entry point.
type Handler struct {
	*provider.Container
}

// New creates the functions handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
