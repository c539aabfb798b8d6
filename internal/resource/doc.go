// Package resource implements process-wide limits shared by every Engine call.
//
// The Controller governs two resources:
//
//   - Workers: extra goroutines a vectorized call may fan out to. Calls ask for
//     a number of workers and receive whatever the shared budget can spare
//     right now, never blocking. A call that receives nothing runs inline.
//   - Memory: bytes reserved by the coordinate arena. Reservation is
//     non-blocking and fails fast with ErrMemoryLimitExceeded.
//
// Typical use:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:       8,
//	    MemoryLimitBytes: 256 << 20,
//	})
//
//	n := rc.AcquireWorkers(4) // 0..4
//	defer rc.ReleaseWorkers(n)
//
// # Nil Safety
//
// All methods handle a nil Controller: workers are granted as requested and
// memory is never limited.
package resource
