package application

import "context"

// RunGuard prevents overlapping update runs across processes.
type RunGuard interface {
	// TryReserve returns true if key was absent and is now held by the caller.
	TryReserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// NoopRunGuard always succeeds; used when no guard backend is configured.
type NoopRunGuard struct{}

func (NoopRunGuard) TryReserve(context.Context, string) (bool, error) { return true, nil }
func (NoopRunGuard) Release(context.Context, string) error            { return nil }
