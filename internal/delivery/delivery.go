// Package delivery defines the contract every transport adapter
// (HTTP today) fulfills so the entrypoint can serve them uniformly.
package delivery

import "context"

// Delivery is a servable transport endpoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
