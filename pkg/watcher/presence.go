package watcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier"
)

// Delivery is the result of one notification attempt. Err is nil on success.
type Delivery struct {
	Observer string
	Text     string
	Err      error
}

// Diff is the set difference between two activity snapshots
type Diff struct {
	Started []string
	Stopped []string
}

// Empty reports whether nothing changed
func (d Diff) Empty() bool {
	return len(d.Started) == 0 && len(d.Stopped) == 0
}

// DiffActivities compares two activity sets, ignoring order and duplicates
func DiffActivities(previous, current []string) Diff {
	prev := toSet(previous)
	cur := toSet(current)

	var d Diff
	for a := range cur {
		if _, ok := prev[a]; !ok {
			d.Started = append(d.Started, a)
		}
	}
	for a := range prev {
		if _, ok := cur[a]; !ok {
			d.Stopped = append(d.Stopped, a)
		}
	}
	sort.Strings(d.Started)
	sort.Strings(d.Stopped)
	return d
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// PresenceWatcher tells observers when their target's activities change
type PresenceWatcher struct {
	*Table
	notifier notifier.Notifier
}

// NewPresenceWatcher creates a watcher with its own table
func NewPresenceWatcher(n notifier.Notifier) *PresenceWatcher {
	if n == nil {
		n = notifier.Nop{}
	}
	return &PresenceWatcher{Table: NewTable(), notifier: n}
}

// OnPresence notifies every observer of ev.Member when the activity set
// changed. Failed deliveries are logged and reported, never retried.
func (w *PresenceWatcher) OnPresence(ev models.PresenceEvent) []Delivery {
	observers := w.ObserversOf(ev.Member.ID)
	if len(observers) == 0 {
		return nil
	}

	diff := DiffActivities(ev.Previous, ev.Current)
	if diff.Empty() {
		return nil
	}

	text := presenceSummary(ev.Member, diff)
	out := make([]Delivery, 0, len(observers))
	for _, observer := range observers {
		d := Delivery{Observer: observer, Text: text}
		if err := w.notifier.SendDirect(models.MemberRef{ID: observer}, text); err != nil {
			d.Err = fmt.Errorf("%w: %v", pgerrors.ErrDeliveryFailure, err)
			logger.Debug(fmt.Sprintf("No se pudo avisar a %s sobre %s: %v", observer, ev.Member, err), "Watcher")
		}
		out = append(out, d)
	}
	return out
}

func presenceSummary(member models.MemberRef, d Diff) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👀 **%s** cambió su actividad.", member)
	if len(d.Started) > 0 {
		fmt.Fprintf(&b, "\n▶️ Empezó: %s", strings.Join(d.Started, ", "))
	}
	if len(d.Stopped) > 0 {
		fmt.Fprintf(&b, "\n⏹️ Dejó: %s", strings.Join(d.Stopped, ", "))
	}
	return b.String()
}

// PresenceCache remembers the last activity set seen per member, since
// platform presence updates only carry the new state
type PresenceCache struct {
	mu   sync.Mutex
	last map[string][]string
}

// NewPresenceCache returns an empty cache
func NewPresenceCache() *PresenceCache {
	return &PresenceCache{last: make(map[string][]string)}
}

// Swap stores current for member and returns the previous set
func (c *PresenceCache) Swap(memberID string, current []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.last[memberID]
	stored := make([]string, len(current))
	copy(stored, current)
	c.last[memberID] = stored
	return prev
}
