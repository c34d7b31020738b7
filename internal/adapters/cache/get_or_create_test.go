package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

type Data = string

type Callback func(context.Context) (Data, error)

func createResponse(data int) (Data, error) {
	return fmt.Sprintf("data%d", data), nil
}

func createCallback(data int) Callback {
	return func(context.Context) (Data, error) {
		return createResponse(data)
	}
}

func createErrorCallback(variant int) Callback {
	return func(context.Context) (Data, error) {
		return "", fmt.Errorf("error%d", variant)
	}
}

func createUnreachable(t *testing.T) Callback {
	return func(context.Context) (Data, error) {
		t.Helper()
		t.Fatal("Unreachable code executed")
		return "", nil
	}
}

func withSleep(d time.Duration, f Callback) Callback {
	return func(ctx context.Context) (Data, error) {
		time.Sleep(d)
		return f(ctx)
	}
}

func caches(t *testing.T) map[string]Cache[Data] {
	t.Helper()

	ttl, stop := NewTTLCache[Data](time.Minute)
	t.Cleanup(stop)

	return map[string]Cache[Data]{
		"BasicCache": NewBasicCache[Data](),
		"TTLCache":   ttl,
	}
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	for name, cache := range caches(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := t.Context()

			data, created, err := GetOrCreate(ctx, cache, "key1", createCallback(1))
			require.NoError(t, err)
			require.True(t, created)
			require.Equal(t, "data1", data)

			data, created, err = GetOrCreate(ctx, cache, "key1", createUnreachable(t))
			require.NoError(t, err)
			require.False(t, created)
			require.Equal(t, "data1", data)

			data, created, err = GetOrCreate(ctx, cache, "key2", createCallback(2))
			require.NoError(t, err)
			require.True(t, created)
			require.Equal(t, "data2", data)
		})
	}
}

func TestGetOrCreateCleansUpOnError(t *testing.T) {
	t.Parallel()

	for name, cache := range caches(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := t.Context()

			_, _, err := GetOrCreate(ctx, cache, "key1", createErrorCallback(10))
			require.ErrorContains(t, err, "error10")

			// The cache should be empty and allow us to create a new entry
			data, created, err := GetOrCreate(ctx, cache, "key1", createCallback(1))
			require.NoError(t, err)
			require.True(t, created)
			require.Equal(t, "data1", data)
		})
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	t.Parallel()

	t.Run("requests are de-duplicated", func(t *testing.T) {
		t.Parallel()

		synctest.Test(t, func(t *testing.T) {
			cache, stop := NewTTLCache[Data](time.Minute)
			defer stop()

			var calls atomic.Int32
			create := withSleep(time.Second, func(ctx context.Context) (Data, error) {
				calls.Add(1)
				return createResponse(1)
			})

			var wg sync.WaitGroup
			for range 10 {
				wg.Go(func() {
					data, _, err := GetOrCreate(t.Context(), cache, "key1", create)
					require.NoError(t, err)
					require.Equal(t, "data1", data)
				})
			}
			wg.Wait()

			require.Equal(t, int32(1), calls.Load())
		})
	})

	t.Run("waiters retry after an error", func(t *testing.T) {
		t.Parallel()

		synctest.Test(t, func(t *testing.T) {
			cache, stop := NewTTLCache[Data](time.Minute)
			defer stop()

			var wg sync.WaitGroup
			wg.Go(func() {
				_, _, err := GetOrCreate(t.Context(), cache, "key1", withSleep(2*time.Second, createErrorCallback(1)))
				require.Error(t, err)
			})

			synctest.Wait()

			var created bool
			wg.Go(func() {
				start := time.Now()
				data, c, err := GetOrCreate(t.Context(), cache, "key1", withSleep(time.Second, createCallback(2)))
				require.NoError(t, err)
				require.Equal(t, "data2", data)
				// Waited for the first caller, then created the entry itself
				require.GreaterOrEqual(t, time.Since(start), 3*time.Second)
				created = c
			})
			wg.Wait()

			require.True(t, created)
		})
	})

	t.Run("waiting respects the context", func(t *testing.T) {
		t.Parallel()

		synctest.Test(t, func(t *testing.T) {
			cache, stop := NewTTLCache[Data](time.Minute)
			defer stop()

			var wg sync.WaitGroup
			wg.Go(func() {
				_, _, err := GetOrCreate(t.Context(), cache, "key1", withSleep(time.Minute, createCallback(1)))
				require.NoError(t, err)
			})

			synctest.Wait()

			ctx, cancel := context.WithTimeout(t.Context(), time.Second)
			defer cancel()

			_, _, err := GetOrCreate(ctx, cache, "key1", createUnreachable(t))
			require.ErrorIs(t, err, context.DeadlineExceeded)

			wg.Wait()
		})
	})
}
