package geovec

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/geovec/internal/arena"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

type options struct {
	kernel           kernel.Kernel
	workers          int
	grainSize        int
	workerBudget     int
	arenaChunkLen    int
	memoryLimit      int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Engine constructor behavior.
type Option func(*options)

// WithKernel replaces the scalar geometry kernel. If nil is passed, the
// planar kernel is used.
func WithKernel(k kernel.Kernel) Option {
	return func(o *options) {
		if k == nil {
			k = kernel.NewPlanar()
		}
		o.kernel = k
	}
}

// WithWorkers caps the goroutines a single call may use, the caller's
// included. Values <= 1 evaluate every call on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGrainSize sets the minimum number of elements per parallel chunk.
// Arrays smaller than two chunks are evaluated serially.
func WithGrainSize(n int) Option {
	return func(o *options) {
		o.grainSize = n
	}
}

// WithWorkerBudget sets the number of extra worker goroutines shared by
// all concurrent calls on one Engine.
//
// A call asks for up to WithWorkers-1 extra workers and proceeds with what
// the budget grants, down to none. This keeps many concurrent calls from
// oversubscribing the CPU.
func WithWorkerBudget(n int) Option {
	return func(o *options) {
		o.workerBudget = n
	}
}

// WithArenaChunkSize sets the number of float64 values per arena chunk.
// The arena backs coordinate storage of geometries created by Transform.
func WithArenaChunkSize(n int) Option {
	return func(o *options) {
		o.arenaChunkLen = n
	}
}

// WithMemoryLimit caps the bytes the coordinate arena may reserve. Zero
// disables the limit. Exceeding it fails the call with ErrMemoryLimit.
//
// Arena reservations are only returned by Close, so the limit bounds the
// coordinate storage an Engine hands out over its lifetime.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geovec.BasicMetricsCollector{}
//	eng, _ := geovec.New(geovec.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Calls: %d, Avg latency: %dns\n", stats.CallCount, stats.CallAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geovec.NewJSONLogger(slog.LevelDebug)
//	eng, _ := geovec.New(geovec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	workers := runtime.GOMAXPROCS(0)
	o := options{
		kernel:           kernel.NewPlanar(),
		workers:          workers,
		workerBudget:     workers - 1,
		arenaChunkLen:    arena.DefaultChunkLen,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type callOptions struct {
	out ndarray.BoolArray
}

// CallOption configures a single predicate call.
type CallOption func(*callOptions)

// Out directs a predicate to write into sink and return it. sink must have
// the broadcast result shape, otherwise the call fails with ErrShape before
// any element is evaluated.
func Out(sink ndarray.BoolArray) CallOption {
	return func(o *callOptions) {
		o.out = sink
	}
}

func applyCallOptions(optFns []CallOption) callOptions {
	var o callOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
