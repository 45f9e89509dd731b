package leveling

import (
	"math"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier/notifiertest"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mod  = models.MemberRef{ID: "m1"}
	here = models.Origin{Community: "g1"}
)

func message(community, author string) models.MessageEvent {
	return models.MessageEvent{
		Community: models.CommunityRef{ID: community},
		Channel:   models.ChannelRef{ID: "c1"},
		Author:    models.MemberRef{ID: author},
		Content:   "hola",
		Timestamp: time.Now(),
	}
}

func fixedGain(e *Engine, v int64) {
	e.gain = func(int64) int64 { return v - e.minGain }
}

func TestCurveIsMonotonic(t *testing.T) {
	c := Curve{Base: 100}
	prev := c.Level(0)
	for xp := int64(1); xp <= 50000; xp++ {
		lvl := c.Level(xp)
		require.GreaterOrEqual(t, lvl, prev, "xp %d", xp)
		prev = lvl
	}
	assert.Equal(t, 0, c.Level(-5))
}

func TestCurveRoundTrip(t *testing.T) {
	for _, base := range []int64{1, 7, 100, 250} {
		c := Curve{Base: base}
		for n := 0; n <= 2000; n++ {
			require.Equal(t, n, c.Level(c.XPForLevel(n)), "base %d level %d", base, n)
			if n > 0 {
				require.Equal(t, n-1, c.Level(c.XPForLevel(n)-1), "base %d level %d", base, n)
			}
		}
	}
}

func TestCurveDefaults(t *testing.T) {
	c := Curve{}
	assert.Equal(t, int64(400), c.XPForLevel(2))
	assert.Equal(t, 1, c.Level(399))
	assert.Equal(t, 2, c.Level(400))
}

func TestGainStaysInRange(t *testing.T) {
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), nil)
	for range 1000 {
		v := e.roll()
		require.GreaterOrEqual(t, v, int64(5))
		require.LessOrEqual(t, v, int64(15))
	}
}

func TestOnMessageIgnoresBotsAndDirectMessages(t *testing.T) {
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), nil)

	bot := message("g1", "b1")
	bot.Bot = true
	_, _, err := e.OnMessage(bot)
	require.NoError(t, err)

	_, _, err = e.OnMessage(message("", "u1"))
	require.NoError(t, err)

	assert.Equal(t, int64(0), e.Progress("g1", "b1").XP)
	assert.Empty(t, e.Leaderboard("g1", 10))
}

func TestLevelUpAnnouncedOnceWithFinalLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.MinGain, opts.MaxGain = 1000, 1000
	e := NewEngine(store.NewMemoryBackend(), opts, nil)

	up, ok, err := e.OnMessage(message("g1", "u1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, up.Level)
	assert.Equal(t, int64(1000), up.XP)

	fixedGain(e, 1000)
	up, ok, err = e.OnMessage(message("g1", "u1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, up.Level)
}

func TestNoLevelUpWithinLevel(t *testing.T) {
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), nil)
	fixedGain(e, 10)

	for i := 0; i < 9; i++ {
		_, ok, err := e.OnMessage(message("g1", "u1"))
		require.NoError(t, err)
		assert.False(t, ok, "message %d", i+1)
	}
	_, ok, err := e.OnMessage(message("g1", "u1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Progress{XP: 100, Level: 1, NextLevelXP: 400}, e.Progress("g1", "u1"))
}

func TestAddAndRemoveLevels(t *testing.T) {
	rec := notifiertest.New()
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), modlog.New(rec))
	member := models.MemberRef{ID: "u1"}

	p, err := e.AddLevels("g1", member, 3, mod, here)
	require.NoError(t, err)
	assert.Equal(t, Progress{XP: 900, Level: 3, NextLevelXP: 1600}, p)

	p, err = e.RemoveLevels("g1", member, 1, mod, here)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(400), p.XP)

	p, err = e.RemoveLevels("g1", member, 10, mod, here)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, int64(0), p.XP)

	_, err = e.AddLevels("g1", member, 0, mod, here)
	assert.Error(t, err)

	assert.Equal(t, []string{modlog.ActionAddLevels, modlog.ActionRemoveLevels, modlog.ActionRemoveLevels}, rec.AuditActions())
}

func TestCurveMaxLevelFitsInt64(t *testing.T) {
	for _, base := range []int64{1, 100, 1 << 40, math.MaxInt64} {
		c := Curve{Base: base}
		limit := c.MaxLevel()
		require.LessOrEqual(t, limit, MaxLevel)
		xp := c.XPForLevel(limit)
		require.Positive(t, xp, "base %d", base)
		assert.Equal(t, limit, c.Level(xp), "base %d", base)
		assert.Equal(t, xp, c.XPForLevel(limit+1_000_000_000), "base %d", base)
	}
	assert.Equal(t, MaxLevel, Curve{}.MaxLevel())
	assert.Equal(t, int64(3037000499), isqrt(math.MaxInt64))
}

func TestAddLevelsClampsHugeAmounts(t *testing.T) {
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), nil)
	member := models.MemberRef{ID: "u1"}

	p, err := e.AddLevels("g1", member, 1_000_000_000, mod, here)
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, p.Level)
	assert.Equal(t, e.Curve().XPForLevel(MaxLevel), p.XP)

	p, err = e.AddLevels("g1", member, math.MaxInt, mod, here)
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, p.Level)

	p, err = e.RemoveLevels("g1", member, math.MaxInt, mod, here)
	require.NoError(t, err)
	assert.Equal(t, Progress{XP: 0, Level: 0, NextLevelXP: 100}, p)
}

func TestLeaderboardStableOnTies(t *testing.T) {
	e := NewEngine(store.NewMemoryBackend(), DefaultOptions(), nil)
	fixedGain(e, 10)

	for _, author := range []string{"first", "second", "third", "third", "fourth"} {
		_, _, err := e.OnMessage(message("g1", author))
		require.NoError(t, err)
	}
	_, _, err := e.OnMessage(message("g2", "other"))
	require.NoError(t, err)

	board := e.Leaderboard("g1", 3)
	require.Len(t, board, 3)
	assert.Equal(t, "third", board[0].MemberID)
	assert.Equal(t, int64(20), board[0].XP)
	assert.Equal(t, "first", board[1].MemberID)
	assert.Equal(t, "second", board[2].MemberID)
	assert.Equal(t, 3, board[2].Rank)

	assert.Len(t, e.Leaderboard("g1", 0), 4)
}
