package ports

import "context"

// IdempotencyStore remembers client-supplied Idempotency-Key values for order creation.
type IdempotencyStore interface {
	// Claim records key and reports true if it was not seen before.
	Claim(ctx context.Context, key string) (bool, error)

	// Release forgets key so that a failed request can be retried with it.
	Release(ctx context.Context, key string) error
}
