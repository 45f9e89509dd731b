// Package watcher forwards a member's activity to the members watching them.
//
// Each observer watches at most one target; watching again replaces the
// previous subscription. Presence watching and message watching keep their
// own tables.
package watcher

import "sync"

// Table maps observers to their single target
type Table struct {
	mu      sync.RWMutex
	targets map[string]string
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{targets: make(map[string]string)}
}

// Watch subscribes observer to target and returns the replaced target, if any
func (t *Table) Watch(observer, target string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, had := t.targets[observer]
	t.targets[observer] = target
	return prev, had
}

// Unwatch drops the observer's subscription and reports whether one existed
func (t *Table) Unwatch(observer string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.targets[observer]; !ok {
		return false
	}
	delete(t.targets, observer)
	return true
}

// Target returns who observer is watching
func (t *Table) Target(observer string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	target, ok := t.targets[observer]
	return target, ok
}

// ObserversOf returns every observer watching target. A member watching
// themselves is never returned.
func (t *Table) ObserversOf(target string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []string
	for observer, tgt := range t.targets {
		if tgt == target && observer != target {
			out = append(out, observer)
		}
	}
	return out
}

// Len returns the number of subscriptions
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.targets)
}
