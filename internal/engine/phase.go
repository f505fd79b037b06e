package engine

import "context"

// Phase is a step of a sieve run.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseSeedLow
	PhaseSeedHigh
	PhaseShutdown
	PhaseJoin
	PhaseReport
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseSeedLow:
		return "seed_low"
	case PhaseSeedHigh:
		return "seed_high"
	case PhaseShutdown:
		return "shutdown"
	case PhaseJoin:
		return "join"
	case PhaseReport:
		return "report"
	default:
		return "unknown"
	}
}

// Observer receives progress callbacks from a run.
// OnPrime is called concurrently from worker goroutines.
type Observer interface {
	OnPhase(ctx context.Context, phase Phase)
	OnDispatch(p int)
	OnPrime(worker, p, cleared int)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

func (NoopObserver) OnPhase(context.Context, Phase) {}
func (NoopObserver) OnDispatch(int)                 {}
func (NoopObserver) OnPrime(int, int, int)          {}
