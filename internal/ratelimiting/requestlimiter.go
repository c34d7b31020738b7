package ratelimiting

import (
	"context"
	"slices"
	"sync"
	"time"
)

// RequestLimiter allows at most a fixed number of operations to finish within any window
type RequestLimiter interface {
	// Limit waits for a free slot and runs operation.
	//
	// Returns false without running operation if the context is done, or if
	// waiting for a slot plus maxOperationTime would exceed the context deadline.
	Limit(ctx context.Context, maxOperationTime time.Duration, operation func(ctx context.Context)) bool
}

type windowLimitRequestLimiter struct {
	window    time.Duration
	nowFunc   func() time.Time
	afterFunc func(time.Duration) <-chan time.Time

	// One token per operation allowed to be in flight
	availableSlots chan struct{}

	// Sorted, oldest first. Always holds one entry per slot not in use.
	finishedAt []time.Time
	mutex      sync.Mutex
}

func NewWindowLimitRequestLimiter(
	limit int,
	window time.Duration,
	nowFunc func() time.Time,
	afterFunc func(time.Duration) <-chan time.Time,
) RequestLimiter {
	if limit <= 0 {
		panic("window limit must be positive")
	}

	availableSlots := make(chan struct{}, limit)
	finishedAt := make([]time.Time, limit)

	// No finished requests within the window -> no waiting for the first requests
	outsideWindow := nowFunc().Add(-window)
	for i := range limit {
		availableSlots <- struct{}{}
		finishedAt[i] = outsideWindow
	}

	return &windowLimitRequestLimiter{
		window:    window,
		nowFunc:   nowFunc,
		afterFunc: afterFunc,

		availableSlots: availableSlots,
		finishedAt:     finishedAt,
	}
}

func (l *windowLimitRequestLimiter) Limit(ctx context.Context, maxOperationTime time.Duration, operation func(ctx context.Context)) bool {
	select {
	case <-l.availableSlots:
		defer func() {
			l.availableSlots <- struct{}{}
		}()
	case <-ctx.Done():
		return false
	}

	oldest, ok := l.takeOldest(ctx, maxOperationTime)
	if !ok {
		return false
	}
	// Put the timestamp back unchanged unless the operation runs
	finished := oldest
	defer func() {
		l.insertFinished(finished)
	}()

	if wait := l.waitFor(oldest); wait > 0 {
		select {
		case <-ctx.Done():
			return false
		case <-l.afterFunc(wait):
		}
	}

	operation(ctx)

	finished = l.nowFunc()
	return true
}

func (l *windowLimitRequestLimiter) waitFor(finished time.Time) time.Duration {
	return l.window - l.nowFunc().Sub(finished)
}

func (l *windowLimitRequestLimiter) canFinishInTime(ctx context.Context, wait, maxOperationTime time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return wait+maxOperationTime <= deadline.Sub(l.nowFunc())
}

func (l *windowLimitRequestLimiter) takeOldest(ctx context.Context, maxOperationTime time.Duration) (time.Time, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	oldest := l.finishedAt[0]
	if !l.canFinishInTime(ctx, max(l.waitFor(oldest), 0), maxOperationTime) {
		return time.Time{}, false
	}

	l.finishedAt = l.finishedAt[1:]
	return oldest, true
}

func (l *windowLimitRequestLimiter) insertFinished(finished time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	i, _ := slices.BinarySearchFunc(l.finishedAt, finished, func(a, b time.Time) int {
		return a.Compare(b)
	})
	l.finishedAt = slices.Insert(l.finishedAt, i, finished)
}
