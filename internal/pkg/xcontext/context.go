package xcontext

import (
	"context"
	"time"
)

// DetachWithTimeout returns a context that keeps the values of ctx but not
// its cancelation, bounded by its own timeout. Used for work that must
// outlive the caller's deadline.
func DetachWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	ctx, cancel := context.WithTimeout(ctx, timeout)

	return ctx, cancel
}
