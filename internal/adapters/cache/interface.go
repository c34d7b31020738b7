package cache

import "context"

type hitResult[T any] struct {
	data T
	// valid is false while the entry is claimed but not yet set
	valid   bool
	claimed bool
}

// Cache holds entries that are created at most once per key at a time.
//
// Use GetOrCreate to read from it.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	// wait blocks until it makes sense to check a claimed entry again
	wait(ctx context.Context) error
}
