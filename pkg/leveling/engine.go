// Package leveling tracks member experience and derives levels from it.
package leveling

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// StoreName is the document holding experience per member
const StoreName = "levels"

// Options tune the engine
type Options struct {
	Curve   Curve
	MinGain int64
	MaxGain int64
}

// DefaultOptions are the values used when config leaves them unset
func DefaultOptions() Options {
	return Options{Curve: Curve{Base: DefaultCurveBase}, MinGain: 5, MaxGain: 15}
}

// LevelUp is reported when a message pushes a member to a higher level
type LevelUp struct {
	Community string
	Channel   models.ChannelRef
	Member    models.MemberRef
	Level     int
	XP        int64
}

// Progress is a member's current standing
type Progress struct {
	XP          int64 `json:"xp"`
	Level       int   `json:"level"`
	NextLevelXP int64 `json:"next_level_xp"`
}

// Standing is one leaderboard row
type Standing struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"member_id"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
}

// Engine accrues experience from messages
type Engine struct {
	store *store.RecordStore[int64]
	curve Curve
	log   *modlog.Log

	minGain int64
	maxGain int64
	// gain returns a value in [0, n)
	gain func(n int64) int64
}

// NewEngine opens the level store on backend
func NewEngine(backend store.Backend, opts Options, log *modlog.Log) *Engine {
	if log == nil {
		log = modlog.New(nil)
	}
	if opts.MinGain < 0 {
		opts.MinGain = 0
	}
	if opts.MaxGain < opts.MinGain {
		opts.MaxGain = opts.MinGain
	}
	return &Engine{
		store:   store.NewRecordStore[int64](StoreName, backend),
		curve:   opts.Curve,
		log:     log,
		minGain: opts.MinGain,
		maxGain: opts.MaxGain,
		gain:    rand.Int64N,
	}
}

// Curve returns the curve in use
func (e *Engine) Curve() Curve {
	return e.curve
}

func (e *Engine) roll() int64 {
	return e.minGain + e.gain(e.maxGain-e.minGain+1)
}

// OnMessage adds a random amount of experience for the author. Bots and
// direct messages are ignored. At most one LevelUp is returned per message,
// carrying the final level.
func (e *Engine) OnMessage(ev models.MessageEvent) (LevelUp, bool, error) {
	if ev.Bot || !ev.InCommunity() {
		return LevelUp{}, false, nil
	}

	delta := e.roll()
	var prior, next int64
	err := e.store.Modify(ev.Community.ID, ev.Author.ID, func(cur int64, _ bool) (int64, bool, error) {
		prior = cur
		next = cur + delta
		if next < cur {
			next = math.MaxInt64
		}
		return next, true, nil
	})
	if err != nil {
		return LevelUp{}, false, err
	}

	before, after := e.curve.Level(prior), e.curve.Level(next)
	if after <= before {
		return LevelUp{}, false, nil
	}

	logger.Debug(fmt.Sprintf("%s subió a nivel %d en %s", ev.Author, after, ev.Community.ID), "Leveling")
	return LevelUp{
		Community: ev.Community.ID,
		Channel:   ev.Channel,
		Member:    ev.Author,
		Level:     after,
		XP:        next,
	}, true, nil
}

// Progress returns the member's experience and level
func (e *Engine) Progress(community, memberID string) Progress {
	xp, _ := e.store.Get(community, memberID)
	return e.progress(xp)
}

func (e *Engine) progress(xp int64) Progress {
	level := e.curve.Level(xp)
	return Progress{XP: xp, Level: level, NextLevelXP: e.curve.XPForLevel(level + 1)}
}

// AddLevels raises the member n levels, setting experience to the start of
// the target level
func (e *Engine) AddLevels(community string, member models.MemberRef, n int, moderator models.MemberRef, origin models.Origin) (Progress, error) {
	return e.shift(community, member, n, modlog.ActionAddLevels, moderator, origin)
}

// RemoveLevels lowers the member n levels, never below level 0
func (e *Engine) RemoveLevels(community string, member models.MemberRef, n int, moderator models.MemberRef, origin models.Origin) (Progress, error) {
	return e.shift(community, member, -n, modlog.ActionRemoveLevels, moderator, origin)
}

func (e *Engine) shift(community string, member models.MemberRef, delta int, action string, moderator models.MemberRef, origin models.Origin) (Progress, error) {
	if delta == 0 {
		return Progress{}, fmt.Errorf("%w: level amount must be positive", pgerrors.ErrOutOfRange)
	}

	limit := e.curve.MaxLevel()
	delta = max(-limit, min(delta, limit))

	var xp int64
	err := e.store.Modify(community, member.ID, func(cur int64, _ bool) (int64, bool, error) {
		target := max(0, min(e.curve.Level(cur)+delta, limit))
		xp = e.curve.XPForLevel(target)
		return xp, true, nil
	})
	if err != nil {
		return Progress{}, err
	}

	p := e.progress(xp)
	logger.Info(fmt.Sprintf("%s ahora es nivel %d en %s (%s)", member, p.Level, community, action), "Leveling")

	e.log.Emit(modlog.Entry{
		Action:    action,
		Community: community,
		Target:    member.Mention(),
		Moderator: moderator,
		Reason:    fmt.Sprintf("Nivel %d", p.Level),
		Origin:    origin,
	})
	return p, nil
}

// Leaderboard ranks the community by experience, ties in first-seen order.
// topN <= 0 returns every member.
func (e *Engine) Leaderboard(community string, topN int) []Standing {
	entries := e.store.Partition(community)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	out := make([]Standing, 0, len(entries))
	for i, entry := range entries {
		out = append(out, Standing{
			Rank:     i + 1,
			MemberID: entry.Key,
			XP:       entry.Value,
			Level:    e.curve.Level(entry.Value),
		})
	}
	return out
}
