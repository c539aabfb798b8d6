package arena

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrMaxChunksExceeded is returned when the arena exceeds the maximum number of chunks.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
	// ErrClosed is returned when allocating from a freed arena.
	ErrClosed = errors.New("arena: closed")
)

const (
	// DefaultChunkLen is the default number of float64 values per chunk.
	DefaultChunkLen = 64 * 1024
	// MaxChunks limits the number of chunks to prevent excessive memory usage.
	MaxChunks = 65536

	bytesPerValue = 8
)

// Stats tracks arena memory usage metrics.
//
//   - BytesReserved: memory currently reserved (chunks and dedicated slabs)
//   - BytesUsed: bytes handed out to callers
//   - ActiveChunks: number of chunks currently held
//   - TotalAllocs: cumulative allocation count
type Stats struct {
	ChunksAllocated uint64
	BytesReserved   uint64
	BytesUsed       uint64
	ActiveChunks    uint64
	TotalAllocs     uint64
}

type atomicStats struct {
	ChunksAllocated atomic.Uint64
	BytesReserved   atomic.Uint64
	BytesUsed       atomic.Uint64
	ActiveChunks    atomic.Uint64
	TotalAllocs     atomic.Uint64
}

type chunk struct {
	data   []float64
	offset atomic.Int64 // accessed concurrently without locks
}

// Arena is a float64 slab allocator.
type Arena struct {
	chunkLen int
	current  atomic.Pointer[chunk]
	chunks   int // protected by mu
	closed   atomic.Bool
	mu       sync.Mutex
	stats    atomicStats
	acquirer MemoryAcquirer
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer for the arena.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// New creates a new Arena holding chunkLen float64 values per chunk.
// The first chunk is reserved lazily on the first allocation.
func New(chunkLen int, opts ...Option) *Arena {
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLen
	}

	a := &Arena{chunkLen: chunkLen}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// ChunkLen returns the number of values per chunk.
func (a *Arena) ChunkLen() int { return a.chunkLen }

// Alloc returns a zeroed slice of n float64 values.
func (a *Arena) Alloc(n int) ([]float64, error) {
	return a.AllocContext(context.Background(), n)
}

// AllocContext allocates n values, passing ctx to the memory acquirer.
func (a *Arena) AllocContext(ctx context.Context, n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}
	if a.closed.Load() {
		return nil, ErrClosed
	}

	// Requests larger than a quarter chunk would waste most of a fresh chunk.
	if n > a.chunkLen/4 {
		return a.allocDedicated(ctx, n)
	}

	for {
		curr := a.current.Load()
		if curr != nil {
			if data, ok := a.tryAllocInChunk(curr, n); ok {
				return data, nil
			}
		}

		a.mu.Lock()
		// Double check under lock
		if a.current.Load() != curr {
			a.mu.Unlock()
			continue
		}

		if err := a.allocateChunkLocked(ctx); err != nil {
			a.mu.Unlock()
			return nil, err
		}
		a.mu.Unlock()
	}
}

func (a *Arena) tryAllocInChunk(curr *chunk, n int) ([]float64, bool) {
	for {
		old := curr.offset.Load()
		next := old + int64(n)
		if next > int64(len(curr.data)) {
			return nil, false
		}
		if curr.offset.CompareAndSwap(old, next) {
			a.stats.BytesUsed.Add(uint64(n) * bytesPerValue)
			a.stats.TotalAllocs.Add(1)
			return curr.data[old:next:next], true
		}
	}
}

func (a *Arena) allocateChunkLocked(ctx context.Context) error {
	if a.closed.Load() {
		return ErrClosed
	}
	if a.chunks >= MaxChunks {
		return ErrMaxChunksExceeded
	}

	if err := a.reserve(ctx, a.chunkLen); err != nil {
		return err
	}

	a.chunks++
	a.stats.ChunksAllocated.Add(1)
	a.stats.ActiveChunks.Add(1)
	a.current.Store(&chunk{data: make([]float64, a.chunkLen)})

	return nil
}

func (a *Arena) allocDedicated(ctx context.Context, n int) ([]float64, error) {
	if err := a.reserve(ctx, n); err != nil {
		return nil, err
	}

	a.stats.BytesUsed.Add(uint64(n) * bytesPerValue)
	a.stats.TotalAllocs.Add(1)

	data := make([]float64, n)
	return data[:n:n], nil
}

func (a *Arena) reserve(ctx context.Context, n int) error {
	bytes := int64(n) * bytesPerValue
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(ctx, bytes); err != nil {
			return fmt.Errorf("arena: reserve %d bytes: %w", bytes, err)
		}
	}
	a.stats.BytesReserved.Add(uint64(bytes))
	return nil
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return Stats{
		ChunksAllocated: a.stats.ChunksAllocated.Load(),
		BytesReserved:   a.stats.BytesReserved.Load(),
		BytesUsed:       a.stats.BytesUsed.Load(),
		ActiveChunks:    a.stats.ActiveChunks.Load(),
		TotalAllocs:     a.stats.TotalAllocs.Load(),
	}
}

// Free returns the reserved bytes to the memory acquirer and closes the arena.
//
// Slices already handed out stay valid; they are ordinary Go memory and are
// reclaimed by the garbage collector once unreferenced. Free only ends the
// arena's accounting. Do NOT call Free concurrently with allocations.
func (a *Arena) Free() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed.Swap(true) {
		return
	}

	if a.acquirer != nil {
		if reserved := a.stats.BytesReserved.Load(); reserved > 0 {
			a.acquirer.ReleaseMemory(int64(reserved))
		}
	}

	a.current.Store(nil)
	a.chunks = 0
	a.stats.ActiveChunks.Store(0)
	a.stats.BytesReserved.Store(0)
	a.stats.BytesUsed.Store(0)
}

// Usage returns the memory usage percentage.
func (a *Arena) Usage() float64 {
	stats := a.Stats()
	if stats.BytesReserved == 0 {
		return 0
	}
	return float64(stats.BytesUsed) / float64(stats.BytesReserved) * 100
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{chunks: %d, reserved: %.2f MB, used: %.2f MB, usage: %.1f%%, allocs: %d}",
		stats.ActiveChunks,
		float64(stats.BytesReserved)/(1024*1024),
		float64(stats.BytesUsed)/(1024*1024),
		a.Usage(),
		stats.TotalAllocs,
	)
}
