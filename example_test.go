package sievego_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/sievego"
	"github.com/hupe1980/sievego/blobstore"
)

// ExampleRun computes the primes up to 30.
func ExampleRun() {
	res, err := sievego.Run(context.Background(), 30)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Primes())
	fmt.Println("total_Primes =", res.Count())
	// Output:
	// [2 3 5 7 11 13 17 19 23 29]
	// total_Primes = 10
}

// ExampleRun_options tunes the pool and queue.
func ExampleRun_options() {
	res, err := sievego.Run(context.Background(), 10000,
		sievego.WithWorkers(8),
		sievego.WithQueueCapacity(16),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Count(), res.IsPrime(9973))
	// Output: 1229 true
}

// ExampleResult_Save persists a result and loads it back.
func ExampleResult_Save() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	res, err := sievego.Run(ctx, 100)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := res.Save(ctx, store, "hundred"); err != nil {
		log.Fatal(err)
	}

	loaded, err := sievego.LoadLatest(ctx, store)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(loaded.N, loaded.Count())
	// Output: 100 25
}
