package llm

import (
	"sync"
	"time"
)

// GuardState is what the client reports about its endpoint's health
type GuardState struct {
	Failures   int // consecutive failures since the last good reply
	CoolingOff bool
	Until      time.Time
}

// Guard pauses generation after a streak of failed calls. While paused,
// Generate fails fast and players fall back to their heuristics. Once the
// pause is over a single call is let through; another failure pauses again.
type Guard struct {
	mu        sync.Mutex
	threshold int
	pause     time.Duration
	streak    int
	until     time.Time
	clock     func() time.Time
}

func NewGuard(threshold int, pause time.Duration) *Guard {
	return &Guard{threshold: threshold, pause: pause, clock: time.Now}
}

// Check reports whether a call may go out now
func (g *Guard) Check() (GuardState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.until.IsZero() && !g.clock().Before(g.until) {
		g.until = time.Time{}
	}
	st := g.state()
	return st, !st.CoolingOff
}

// Fail counts a failed call and starts a pause once the streak reaches
// the threshold
func (g *Guard) Fail() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.streak++
	if g.threshold > 0 && g.streak >= g.threshold {
		g.until = g.clock().Add(g.pause)
	}
	return g.state()
}

// Succeed ends the streak
func (g *Guard) Succeed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.streak = 0
	g.until = time.Time{}
}

func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Guard) state() GuardState {
	return GuardState{Failures: g.streak, CoolingOff: !g.until.IsZero(), Until: g.until}
}
