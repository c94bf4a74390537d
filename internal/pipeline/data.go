package pipeline

import "github.com/rohmanhakim/liondine-api/internal/menu"

// Acquire boundary

type AcquireResult struct {
	data      menu.MenuData
	fromCache bool
}

func (a *AcquireResult) Data() menu.MenuData {
	return a.data
}

// FromCache reports whether the record was served from the cache. It exists
// for observability (the X-Cache response header); no correctness decision
// may depend on it.
func (a *AcquireResult) FromCache() bool {
	return a.fromCache
}

// NewAcquireResultForTest creates an AcquireResult for testing purposes.
// This allows test packages to construct AcquireResult values without
// accessing unexported fields directly.
func NewAcquireResultForTest(data menu.MenuData, fromCache bool) AcquireResult {
	return AcquireResult{
		data:      data,
		fromCache: fromCache,
	}
}
