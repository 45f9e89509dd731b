// Package engine wires the moderation components together and fans inbound
// events out to them.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/bans"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/leveling"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier"
	"github.com/PancyStudios/PancyGuardGo/pkg/spam"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/PancyStudios/PancyGuardGo/pkg/warnings"
	"github.com/PancyStudios/PancyGuardGo/pkg/watcher"
	"github.com/sourcegraph/conc/pool"
)

// Suppression reasons
const (
	ReasonSpam       = "spam"
	ReasonBannedWord = string(spam.MatchBannedWord)
	ReasonLink       = string(spam.MatchLink)
)

// Deps are the collaborators the engine cannot build from config
type Deps struct {
	Backend   store.Backend
	Notifier  notifier.Notifier
	Publisher modlog.Publisher
}

// MessageOutcome merges what every observer decided about one message
type MessageOutcome struct {
	Suppress  bool
	Reasons   []string
	Match     *spam.Match
	LevelUp   *leveling.LevelUp
	Forwarded []watcher.Delivery
}

// Engine owns every moderation component
type Engine struct {
	Warnings *warnings.Ledger
	Bans     *bans.Registry
	Levels   *leveling.Engine
	Spam     *spam.Guard
	Filter   *spam.Filter
	ModLog   *modlog.Log

	Presence  *watcher.PresenceWatcher
	Messages  *watcher.MessageWatcher
	presences *watcher.PresenceCache

	watchMode string
}

// New builds the engine from cfg
func New(cfg *config.Config, deps Deps) (*Engine, error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("engine: %w: no storage backend", pgerrors.ErrStorageUnavailable)
	}
	n := deps.Notifier
	if n == nil {
		n = notifier.Nop{}
	}

	log := modlog.New(n)
	if deps.Publisher != nil {
		log.WithPublisher(deps.Publisher)
	}

	opts := leveling.DefaultOptions()
	if cfg.LevelCurveBase > 0 {
		opts.Curve = leveling.Curve{Base: int64(cfg.LevelCurveBase)}
	}
	if cfg.XPMin > 0 {
		opts.MinGain = int64(cfg.XPMin)
	}
	if cfg.XPMax > 0 {
		opts.MaxGain = int64(cfg.XPMax)
	}

	mode := cfg.WatchMode
	if mode != config.WatchPresence {
		mode = config.WatchMessage
	}

	e := &Engine{
		Warnings:  warnings.NewLedger(deps.Backend, n, log),
		Bans:      bans.NewRegistry(deps.Backend, log),
		Levels:    leveling.NewEngine(deps.Backend, opts, log),
		Spam:      spam.NewGuard(cfg.SpamWindow, cfg.SpamThreshold),
		Filter:    spam.NewFilter(cfg.BannedWords, cfg.BlockLinks),
		ModLog:    log,
		Presence:  watcher.NewPresenceWatcher(n),
		Messages:  watcher.NewMessageWatcher(n),
		presences: watcher.NewPresenceCache(),
		watchMode: mode,
	}

	logger.System(fmt.Sprintf("Motor de moderación listo (watch: %s, filtro: %t)", mode, e.Filter.Enabled()), "Engine")
	return e, nil
}

// NewBackend returns the storage backend selected by cfg. The Mongo backend
// needs a connected database.
func NewBackend(cfg *config.Config, db *database.Database) (store.Backend, error) {
	if !cfg.UsesMongo() {
		return store.NewFileBackend(cfg.DataDir), nil
	}
	if db == nil {
		return nil, fmt.Errorf("%w: mongo backend selected without a database", pgerrors.ErrStorageUnavailable)
	}
	col := db.GetCollection(database.SnapshotsCollection)
	if col == nil {
		return nil, fmt.Errorf("%w: database not connected", pgerrors.ErrStorageUnavailable)
	}
	return store.NewMongoBackend(col), nil
}

// WatchMode returns the configured watch semantics
func (e *Engine) WatchMode() string {
	return e.watchMode
}

// WatchTable returns the table the watch commands manage
func (e *Engine) WatchTable() *watcher.Table {
	if e.watchMode == config.WatchPresence {
		return e.Presence.Table
	}
	return e.Messages.Table
}

// HandleMessage runs the spam guard, the content filter, leveling and the
// message watcher concurrently. The returned error comes from leveling only;
// the other observers still report their verdicts.
func (e *Engine) HandleMessage(ev models.MessageEvent) (MessageOutcome, error) {
	var out MessageOutcome
	if ev.Bot || !ev.InCommunity() {
		return out, nil
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	var mu sync.Mutex
	p := pool.New().WithErrors()

	p.Go(func() error {
		v := e.Spam.Observe(ev.Community.ID, ev.Author.ID, ev.Timestamp)
		if v.Suppress {
			mu.Lock()
			out.Suppress = true
			out.Reasons = append(out.Reasons, ReasonSpam)
			mu.Unlock()
		}
		return nil
	})

	p.Go(func() error {
		m, ok := e.Filter.Check(ev.Content)
		if ok {
			mu.Lock()
			out.Suppress = true
			out.Reasons = append(out.Reasons, string(m.Kind))
			out.Match = &m
			mu.Unlock()
		}
		return nil
	})

	p.Go(func() error {
		up, ok, err := e.Levels.OnMessage(ev)
		if err != nil {
			return fmt.Errorf("leveling: %w", err)
		}
		if ok {
			mu.Lock()
			out.LevelUp = &up
			mu.Unlock()
		}
		return nil
	})

	p.Go(func() error {
		forwarded := e.Messages.OnMessage(ev)
		mu.Lock()
		out.Forwarded = forwarded
		mu.Unlock()
		return nil
	})

	err := p.Wait()
	if out.Suppress {
		logger.Debug(fmt.Sprintf("Mensaje de %s suprimido en %s: %v", ev.Author, ev.Community.ID, out.Reasons), "SpamGuard")
	}
	return out, err
}

// HandlePresence notifies the observers of ev.Member
func (e *Engine) HandlePresence(ev models.PresenceEvent) []watcher.Delivery {
	return e.Presence.OnPresence(ev)
}

// ObservePresence builds the presence event from the last seen activity set
// of member and handles it
func (e *Engine) ObservePresence(member models.MemberRef, current []string) []watcher.Delivery {
	previous := e.presences.Swap(member.ID, current)
	return e.HandlePresence(models.PresenceEvent{Member: member, Previous: previous, Current: current})
}

// StartSweeper drops idle spam windows every interval until stop is called
func (e *Engine) StartSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	pgerrors.Go(func() {
		for {
			select {
			case now := <-ticker.C:
				if n := e.Spam.Sweep(now); n > 0 {
					logger.Debug(fmt.Sprintf("%d ventanas de spam inactivas eliminadas", n), "SpamGuard")
				}
			case <-done:
				return
			}
		}
	})

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
