package sweeper

import (
	"context"
)

// Sweeper is a background loop that revisits tracked tokens on an interval
type Sweeper interface {
	// Start blocks, running passes until ctx is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loop and waits for the pass in flight, bounded by ctx
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
