package sievego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/internal/engine"
	"github.com/hupe1980/sievego/internal/worker"
	"github.com/hupe1980/sievego/snapshot"
)

var (
	// ErrInvalidConfig is returned for a negative bound or a non-positive
	// worker count or queue capacity.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAllocation is returned when table or queue storage cannot be reserved.
	ErrAllocation = errors.New("allocation failed")

	// ErrWorkerStart is returned when a worker could not be started.
	ErrWorkerStart = errors.New("worker start failed")

	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrCorruptSnapshot is returned when a stored snapshot fails validation.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// ErrAllocationFailure reports storage that did not fit the memory budget.
// No worker was started and nothing stays reserved.
//
// It matches ErrAllocation with errors.Is.
type ErrAllocationFailure struct {
	Bytes int64 // bytes needed for table and queue
	Limit int64 // configured memory limit
	cause error
}

func (e *ErrAllocationFailure) Error() string {
	return fmt.Sprintf("allocation failed: need %d bytes, limit %d", e.Bytes, e.Limit)
}

func (e *ErrAllocationFailure) Is(target error) bool { return target == ErrAllocation }

func (e *ErrAllocationFailure) Unwrap() error { return e.cause }

// ErrThreadStart reports a worker that could not be started. The workers
// started before it have been stopped and joined.
//
// It matches ErrWorkerStart with errors.Is.
type ErrThreadStart struct {
	Index   int // index of the failed worker
	Started int // workers that had been running
	cause   error
}

func (e *ErrThreadStart) Error() string {
	return fmt.Sprintf("worker %d failed to start (%d running were stopped)", e.Index, e.Started)
}

func (e *ErrThreadStart) Is(target error) bool { return target == ErrWorkerStart }

func (e *ErrThreadStart) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ae *engine.AllocationError
	if errors.As(err, &ae) {
		return &ErrAllocationFailure{Bytes: ae.Bytes, Limit: ae.Limit, cause: err}
	}
	var se *worker.StartError
	if errors.As(err, &se) {
		return &ErrThreadStart{Index: se.Index, Started: se.Started, cause: err}
	}

	if errors.Is(err, engine.ErrInvalidArgument) || errors.Is(err, worker.ErrInvalidSize) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if errors.Is(err, snapshot.ErrCorrupt) ||
		errors.Is(err, snapshot.ErrUnknownCodec) ||
		errors.Is(err, snapshot.ErrUnknownCompression) ||
		errors.Is(err, snapshot.ErrUnsupportedVersion) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
