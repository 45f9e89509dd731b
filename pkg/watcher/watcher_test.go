package watcher

import (
	"errors"
	"testing"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier/notifiertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presence(member string, prev, cur []string) models.PresenceEvent {
	return models.PresenceEvent{Member: models.MemberRef{ID: member}, Previous: prev, Current: cur}
}

func TestMutualWatchNotifiesOnlyObserver(t *testing.T) {
	rec := notifiertest.New()
	w := NewPresenceWatcher(rec)

	w.Watch("A", "B")
	w.Watch("B", "A")

	out := w.OnPresence(presence("B", nil, []string{"Minecraft"}))
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Observer)
	assert.NoError(t, out[0].Err)
	assert.Len(t, rec.DirectsTo("A"), 1)
	assert.Empty(t, rec.DirectsTo("B"))
}

func TestWatchReplacesSubscription(t *testing.T) {
	rec := notifiertest.New()
	w := NewPresenceWatcher(rec)

	w.Watch("A", "B")
	prev, had := w.Watch("A", "C")
	assert.True(t, had)
	assert.Equal(t, "B", prev)

	assert.Empty(t, w.OnPresence(presence("B", nil, []string{"Minecraft"})))
	assert.Len(t, w.OnPresence(presence("C", nil, []string{"Minecraft"})), 1)
	assert.Equal(t, 1, w.Len())
}

func TestUnchangedActivitiesAreSilent(t *testing.T) {
	rec := notifiertest.New()
	w := NewPresenceWatcher(rec)
	w.Watch("A", "B")

	assert.Empty(t, w.OnPresence(presence("B", []string{"x", "y"}, []string{"y", "x", "x"})))
	assert.Empty(t, rec.Directs)
}

func TestDiffActivities(t *testing.T) {
	d := DiffActivities([]string{"Spotify", "Minecraft"}, []string{"Minecraft", "Valorant"})
	assert.Equal(t, []string{"Valorant"}, d.Started)
	assert.Equal(t, []string{"Spotify"}, d.Stopped)
	assert.True(t, DiffActivities(nil, nil).Empty())
}

func TestPresenceDeliveryFailureIsReported(t *testing.T) {
	rec := notifiertest.New()
	rec.FailDirect["A"] = errors.New("dm closed")
	w := NewPresenceWatcher(rec)
	w.Watch("A", "B")
	w.Watch("D", "B")

	out := w.OnPresence(presence("B", nil, []string{"Fortnite"}))
	require.Len(t, out, 2)
	failed := 0
	for _, d := range out {
		if d.Err != nil {
			failed++
			assert.Equal(t, "A", d.Observer)
			assert.ErrorIs(t, d.Err, pgerrors.ErrDeliveryFailure)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestUnwatch(t *testing.T) {
	w := NewPresenceWatcher(nil)
	assert.False(t, w.Unwatch("A"))
	w.Watch("A", "B")
	assert.True(t, w.Unwatch("A"))
	_, ok := w.Target("A")
	assert.False(t, ok)
}

func TestPresenceCacheSwap(t *testing.T) {
	c := NewPresenceCache()
	assert.Nil(t, c.Swap("u1", []string{"a"}))
	assert.Equal(t, []string{"a"}, c.Swap("u1", []string{"b"}))
}

func TestMessageWatcherForwards(t *testing.T) {
	rec := notifiertest.New()
	w := NewMessageWatcher(rec)
	w.Watch("A", "B")

	ev := models.MessageEvent{
		Community: models.CommunityRef{ID: "g1", Name: "Pancy HQ"},
		Channel:   models.ChannelRef{ID: "c1", Name: "staff-privado"},
		Author:    models.MemberRef{ID: "B", DisplayName: "bob"},
		Content:   "contraseña del panel: hunter2",
	}
	out := w.OnMessage(ev)
	require.Len(t, out, 1)
	assert.Equal(t, "👀 **bob** acaba de enviar un mensaje en #staff-privado en **Pancy HQ**.", out[0].Text)
	assert.NotContains(t, out[0].Text, "hunter2")
	assert.Equal(t, []string{out[0].Text}, rec.DirectsTo("A"))

	ev.Community = models.CommunityRef{}
	assert.Empty(t, w.OnMessage(ev))
}

func TestTablesAreSeparate(t *testing.T) {
	p := NewPresenceWatcher(nil)
	m := NewMessageWatcher(nil)
	p.Watch("A", "B")

	_, ok := m.Target("A")
	assert.False(t, ok)
}

func TestSelfWatchIsIgnoredByBothWatchers(t *testing.T) {
	rec := notifiertest.New()
	p := NewPresenceWatcher(rec)
	m := NewMessageWatcher(rec)
	p.Watch("A", "A")
	m.Watch("A", "A")

	assert.Empty(t, p.ObserversOf("A"))
	assert.Empty(t, p.OnPresence(presence("A", nil, []string{"Minecraft"})))
	assert.Empty(t, m.OnMessage(models.MessageEvent{
		Community: models.CommunityRef{ID: "g1"},
		Channel:   models.ChannelRef{ID: "c1"},
		Author:    models.MemberRef{ID: "A"},
	}))
	assert.Empty(t, rec.DirectsTo("A"))
}

func TestMessageNoticeFallsBackToIDs(t *testing.T) {
	text := messageNotice(models.MessageEvent{
		Community: models.CommunityRef{ID: "g1"},
		Channel:   models.ChannelRef{ID: "c1"},
		Author:    models.MemberRef{ID: "B"},
	})
	assert.Contains(t, text, "#c1")
	assert.Contains(t, text, "**g1**")
}
