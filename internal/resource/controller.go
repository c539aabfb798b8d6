package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("resource: memory budget exhausted")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for arena memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxWorkers is the number of extra dispatch workers shared by all calls.
	// If 0, defaults to 1.
	MaxWorkers int64
}

// Controller manages global resources (memory, concurrency).
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	workerSem *semaphore.Weighted
	busy      atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// The context is accepted for interface compatibility; the call never blocks.
func (c *Controller) AcquireMemory(_ context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireWorkers reserves up to want worker slots without blocking and
// returns how many were granted. The caller must release exactly that number.
func (c *Controller) AcquireWorkers(want int) int {
	if want <= 0 {
		return 0
	}
	if c == nil {
		return want
	}
	for n := want; n > 0; n /= 2 {
		if c.workerSem.TryAcquire(int64(n)) {
			c.busy.Add(int64(n))
			return n
		}
	}
	return 0
}

// ReleaseWorkers returns n worker slots to the budget.
func (c *Controller) ReleaseWorkers(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.busy.Add(-int64(n))
	c.workerSem.Release(int64(n))
}

// BusyWorkers returns the number of worker slots currently reserved.
func (c *Controller) BusyWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.busy.Load()
}

// MaxWorkers returns the size of the worker budget.
func (c *Controller) MaxWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxWorkers
}
