package booking

import (
	"context"
	"time"
)

// withTimeout bounds store calls; zero means the caller's deadline applies.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
