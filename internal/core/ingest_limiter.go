package core

// ingest_limiter.go bounds how many uploads are parsed at once.
//
// The limiter is a semaphore: when all slots are taken, Acquire waits up to
// maxWait before failing with ErrTooManyIngests. WaitForDrain blocks until
// every held slot is released, for graceful shutdown.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyIngests is returned when no slot frees up within the wait time.
var ErrTooManyIngests = errors.New("too many uploads in progress, please try again later")

// Defaults applied when the limiter is built with non-positive values.
const (
	DefaultMaxConcurrentIngests = 5
	DefaultMaxIngestWait        = 30 * time.Second
)

// IngestLimiter controls concurrent ingestion using a semaphore.
type IngestLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

// NewIngestLimiter allows at most maxConcurrent simultaneous ingestions.
func NewIngestLimiter(maxConcurrent int, maxWait time.Duration) *IngestLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentIngests
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxIngestWait
	}
	return &IngestLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must call Release when done.
func (l *IngestLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyIngests
	}
}

// TryAcquire takes a slot without blocking.
func (l *IngestLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *IngestLimiter) Release() {
	<-l.slots
}

// Active returns the number of held slots.
func (l *IngestLimiter) Active() int {
	return len(l.slots)
}

// WaitForDrain blocks until no slot is held or ctx is done.
func (l *IngestLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IngestLimiterStatus is a snapshot of limiter usage.
type IngestLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *IngestLimiter) Status() IngestLimiterStatus {
	active := len(l.slots)
	return IngestLimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}
