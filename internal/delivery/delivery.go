// Package delivery groups the process entry points (HTTP API, event worker).
package delivery

import "context"

// Delivery is a long-running server started by cmd/*.
type Delivery interface {
	Serve(ctx context.Context) error
}
