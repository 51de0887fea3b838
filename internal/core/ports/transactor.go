package ports

import "context"

// Transactor runs fn as one unit of work. Implementations that cannot provide
// atomicity run fn directly; callers compensate on failure.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
