package worker

import (
	"context"
)

// Worker is a long-running background consumer
type Worker interface {
	// Start blocks until Stop is called or ctx is done
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
