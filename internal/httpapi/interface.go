package httpapi

import (
	"context"
	"net/http"
)

// UserHeader carries the caller identity set by the upstream auth proxy
const UserHeader = "X-User-ID"

// Server exposes the recap pipeline over HTTP
type Server interface {
	Handler() http.Handler
	// Run serves until ctx is done, then shuts down gracefully
	Run(ctx context.Context) error
}
