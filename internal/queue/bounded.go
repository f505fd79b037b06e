package queue

import (
	"errors"
	"sync"
)

// Sentinel is the reserved value that tells a consumer there is no more work.
// Payload values are always positive, so it never collides with real work.
const Sentinel = -1

// DefaultCapacity is the capacity used when none is configured.
const DefaultCapacity = 1000

var (
	// ErrClosed is returned by Put once the queue has been closed.
	ErrClosed = errors.New("queue: closed")

	// ErrInvalidCapacity is returned by New for a capacity below one.
	ErrInvalidCapacity = errors.New("queue: capacity must be positive")
)

// Bounded is a fixed-capacity blocking FIFO of ints backed by a circular buffer.
//
// All state is guarded by a single mutex. Producers wait on notFull, consumers
// on notEmpty. Close wakes every waiter on both conditions.
type Bounded struct {
	mu       sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond

	buf    []int
	head   int // next slot to read
	tail   int // next slot to write
	count  int
	closed bool
}

// New creates a Bounded queue holding at most capacity values.
func New(capacity int) (*Bounded, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	q := &Bounded{buf: make([]int, capacity)}
	q.notFull.L = &q.mu
	q.notEmpty.L = &q.mu
	return q, nil
}

// Put appends v at the tail, blocking while the queue is full.
// It fails only if the queue is (or becomes, while waiting) closed.
func (q *Bounded) Put(v int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == len(q.buf) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++

	q.notEmpty.Signal()
	return nil
}

// Next removes and returns the head value, blocking while the queue is empty.
// It returns false once the queue is closed and fully drained.
func (q *Bounded) Next() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		return 0, false
	}

	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--

	q.notFull.Signal()
	return v, true
}

// Get removes and returns the head value, blocking while the queue is empty.
// A closed and drained queue yields Sentinel.
func (q *Bounded) Get() int {
	v, ok := q.Next()
	if !ok {
		return Sentinel
	}
	return v
}

// Close marks the queue closed and wakes all waiting producers and consumers.
// Values already buffered remain readable. Close is idempotent.
func (q *Bounded) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the number of buffered values.
func (q *Bounded) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *Bounded) Cap() int {
	return len(q.buf)
}
