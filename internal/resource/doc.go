// Package resource implements the Controller for run-wide limits.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: budget for the sieve table and queue storage (non-blocking, fail-fast)
//   - Workers: slots for sieve worker goroutines (non-blocking, fail-fast)
//   - IO: rate limit for snapshot uploads (token bucket)
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Worker Slots   │  IO Rate Limiter        │
//	│  (fail-fast)    │  (fail-fast)    │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  TryAcquire-    │  AcquireIO              │
//	│  ReleaseMemory  │  Worker         │                         │
//	│  MemoryUsage    │  ReleaseWorker  │                         │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(tableBytes); err != nil {
//	    // ErrMemoryLimitExceeded - the run cannot start
//	}
//	defer rc.ReleaseMemory(tableBytes)
//
// # Worker Slots
//
// A worker that cannot get a slot is a start failure, never a wait:
//
//	if !rc.TryAcquireWorker() {
//	    return ErrNoWorkerSlot
//	}
//	defer rc.ReleaseWorker()
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
