package booking

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// SubmitGuard ensures at most one in-flight booking submission per user. A
// second submit while one is outstanding is rejected rather than producing a
// duplicate BookingRequest. The guard stays held until the in-flight attempt
// settles, success or error.
type SubmitGuard struct {
	inFlight atomic.Bool
}

// Begin marks a submission as in flight. Returns false if one already is.
func (g *SubmitGuard) Begin() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// End releases the guard.
func (g *SubmitGuard) End() {
	g.inFlight.Store(false)
}

// GuardSet hands out one SubmitGuard per user.
type GuardSet struct {
	guards sync.Map // uuid.UUID -> *SubmitGuard
}

// For returns the guard for the given user, creating it on first use.
func (s *GuardSet) For(userID uuid.UUID) *SubmitGuard {
	if g, ok := s.guards.Load(userID); ok {
		return g.(*SubmitGuard)
	}
	g, _ := s.guards.LoadOrStore(userID, &SubmitGuard{})
	return g.(*SubmitGuard)
}
