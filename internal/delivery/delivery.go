// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a long-running inbound surface (HTTP server, worker) started
// by the application entrypoint and stopped through the Fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
