// Package engine implements the sieve orchestrator.
//
// A run moves through a fixed sequence of phases:
//   - Init: reserve memory, allocate the table and queue, start the workers
//   - SeedLow: serially sieve [2, ⌊√⌊√N⌋⌋] and dispatch every prime found
//   - SeedHigh: dispatch every surviving candidate in (⌊√⌊√N⌋⌋, ⌊√N⌋]
//   - Shutdown: enqueue one sentinel per worker plus one, then close the queue
//   - Join: wait for every worker
//   - Report: hand the finished table to the caller
//
// Workers run from Init onward, so the bounded queue drains while seeding
// is still in progress.
package engine
