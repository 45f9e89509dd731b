package spam

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSixEventsWithinHorizonTrip(t *testing.T) {
	g := NewGuard(5*time.Second, 5)
	for i := 0; i < 5; i++ {
		v := g.Observe("g1", "u1", t0.Add(time.Duration(i)*time.Second))
		assert.False(t, v.Suppress, "event %d", i+1)
	}
	v := g.Observe("g1", "u1", t0.Add(5*time.Second))
	assert.True(t, v.Suppress)
	assert.Equal(t, 6, v.Count)
}

func TestSpacedEventsNeverTrip(t *testing.T) {
	g := NewGuard(5*time.Second, 5)
	for i := 0; i < 6; i++ {
		v := g.Observe("g1", "u1", t0.Add(time.Duration(2*i)*time.Second))
		assert.False(t, v.Suppress, "event %d", i+1)
		assert.LessOrEqual(t, v.Count, 3)
	}
}

func TestBurstFlagsSixthOnwards(t *testing.T) {
	g := NewGuard(DefaultHorizon, DefaultThreshold)
	var flagged []int
	for i := 1; i <= 20; i++ {
		v := g.Observe("g1", "u1", t0.Add(time.Duration(i)*40*time.Millisecond))
		if v.Suppress {
			flagged = append(flagged, i)
		}
	}

	want := make([]int, 0, 15)
	for i := 6; i <= 20; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, flagged)
}

func TestWindowsArePerCommunityAndMember(t *testing.T) {
	g := NewGuard(5*time.Second, 2)
	g.Observe("g1", "u1", t0)
	g.Observe("g1", "u1", t0)

	assert.False(t, g.Observe("g2", "u1", t0).Suppress)
	assert.False(t, g.Observe("g1", "u2", t0).Suppress)
	assert.True(t, g.Observe("g1", "u1", t0).Suppress)
}

func TestSweepAndForget(t *testing.T) {
	g := NewGuard(5*time.Second, 5)
	g.Observe("g1", "idle", t0)
	g.Observe("g1", "busy", t0)
	g.Observe("g1", "busy", t0.Add(9*time.Second))

	assert.Equal(t, 1, g.Sweep(t0.Add(10*time.Second)))
	assert.Equal(t, 0, g.Count("g1", "idle", t0.Add(10*time.Second)))
	assert.Equal(t, 1, g.Count("g1", "busy", t0.Add(10*time.Second)))

	g.Forget("g1", "busy")
	assert.Equal(t, 0, g.Count("g1", "busy", t0.Add(10*time.Second)))
}

func TestGuardIsSafeForConcurrentUse(t *testing.T) {
	g := NewGuard(time.Minute, 1000)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Observe("g1", "u1", t0)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, g.Count("g1", "u1", t0))
}

func TestFilterMatchesFoldedWords(t *testing.T) {
	f := NewFilter([]string{"tonto", "mala palabra"}, false)
	require.True(t, f.Enabled())

	m, ok := f.Check("Eres un TÓNTO!!")
	require.True(t, ok)
	assert.Equal(t, MatchBannedWord, m.Kind)
	assert.Equal(t, "tonto", m.Term)

	m, ok = f.Check("eso es una mala, palabra")
	require.True(t, ok)
	assert.Equal(t, "mala palabra", m.Term)

	_, ok = f.Check("tontería no cuenta")
	assert.False(t, ok)
}

func TestFilterLinks(t *testing.T) {
	f := NewFilter(nil, true)

	m, ok := f.Check("mira https://example.com/x")
	require.True(t, ok)
	assert.Equal(t, MatchLink, m.Kind)

	_, ok = f.Check("únete a discord.gg/abc")
	assert.True(t, ok)

	_, ok = f.Check("sin enlaces aquí")
	assert.False(t, ok)

	assert.False(t, NewFilter(nil, false).Enabled())
	_, ok = NewFilter(nil, false).Check("https://example.com")
	assert.False(t, ok)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hola", "que", "tal"}, Tokenize("¡Hola, qué tal!"))
}
