// Package worker runs the fixed pool of sieve workers.
//
// Each worker drains the shared bounded queue. A positive value is a seed
// prime whose multiples get cleared from the table; the sentinel (or a
// closed, drained queue) ends the worker. The pool size never changes after
// Start and workers observe no other termination signal.
package worker
