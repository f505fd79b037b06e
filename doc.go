// Package sievego computes all primes up to a bound with a parallel sieve of
// Eratosthenes.
//
// One producer goroutine discovers seed primes up to ⌊√N⌋ and hands them to a
// fixed pool of workers through a bounded blocking queue. Each worker clears
// the multiples of the primes it receives in a shared table of lock-free
// flags. When seeding is done the producer enqueues one sentinel per worker
// (plus a spare) and closes the queue, joins the pool and reads the table.
//
// # Quick Start
//
//	res, err := sievego.Run(ctx, 10_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Count()) // 1229
//
// # Configuration
//
//	res, err := sievego.Run(ctx, 1_000_000,
//	    sievego.WithWorkers(8),
//	    sievego.WithQueueCapacity(256),
//	    sievego.WithMemoryLimit(64<<20),
//	    sievego.WithLogger(sievego.NewJSONLogger(slog.LevelDebug)),
//	)
//
// # Failure Model
//
// A run either completes or returns an error and no result. Storage that does
// not fit the memory budget yields ErrAllocation before any worker starts. A
// worker that cannot obtain a slot yields ErrWorkerStart after every started
// worker has been stopped and joined.
//
// # Persistence
//
// Results can be saved to any blobstore.Store (local disk, S3, MinIO) and
// loaded back:
//
//	store := blobstore.NewLocalStore("./primes")
//	_, _ = res.Save(ctx, store, "run-1")
//	again, _ := sievego.LoadLatest(ctx, store)
package sievego
