// Package spam holds the per-member rate detector and the lexical content filter.
package spam

import (
	"sync"
	"time"
)

// Defaults used when config leaves them unset
const (
	DefaultHorizon   = 5 * time.Second
	DefaultThreshold = 5
)

// Verdict is the outcome of one observed message
type Verdict struct {
	Suppress bool
	Count    int
}

type windowKey struct {
	community string
	member    string
}

// Guard counts messages per (community, member) over a trailing horizon.
// Tripping does not reset the window; every message past the threshold
// within the horizon is suppressed. State lives in memory only.
type Guard struct {
	horizon   time.Duration
	threshold int

	mu      sync.Mutex
	windows map[windowKey][]time.Time
}

// NewGuard creates a guard. Non-positive values fall back to the defaults.
func NewGuard(horizon time.Duration, threshold int) *Guard {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Guard{
		horizon:   horizon,
		threshold: threshold,
		windows:   make(map[windowKey][]time.Time),
	}
}

// Observe records a message at ts and reports whether it must be suppressed
func (g *Guard) Observe(community, member string, ts time.Time) Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := windowKey{community, member}
	window := prune(g.windows[key], ts.Add(-g.horizon))
	window = append(window, ts)
	g.windows[key] = window

	return Verdict{Suppress: len(window) > g.threshold, Count: len(window)}
}

// Count returns the live window size of the member at now
func (g *Guard) Count(community, member string, now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := windowKey{community, member}
	window, ok := g.windows[key]
	if !ok {
		return 0
	}
	window = prune(window, now.Add(-g.horizon))
	g.windows[key] = window
	return len(window)
}

// Forget drops the member's window
func (g *Guard) Forget(community, member string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.windows, windowKey{community, member})
}

// Sweep drops every window with no message inside the horizon at now and
// returns how many were dropped
func (g *Guard) Sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := now.Add(-g.horizon)
	dropped := 0
	for key, window := range g.windows {
		window = prune(window, cutoff)
		if len(window) == 0 {
			delete(g.windows, key)
			dropped++
			continue
		}
		g.windows[key] = window
	}
	return dropped
}

// prune removes timestamps before cutoff in place
func prune(window []time.Time, cutoff time.Time) []time.Time {
	kept := window[:0]
	for _, ts := range window {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
