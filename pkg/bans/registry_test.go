package bans

import (
	"testing"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier/notifiertest"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	target = models.MemberRef{ID: "u1", DisplayName: "troll"}
	modA   = models.MemberRef{ID: "m1", DisplayName: "modA"}
	modB   = models.MemberRef{ID: "m2", DisplayName: "modB"}
	origin = models.Origin{Community: "g1", Channel: models.ChannelRef{ID: "c1"}}
)

func TestBanTwiceKeepsOneRecord(t *testing.T) {
	rec := notifiertest.New()
	r := NewRegistry(store.NewMemoryBackend(), modlog.New(rec))

	_, err := r.Ban("10.0.0.1", target, "first", modA, origin)
	require.NoError(t, err)
	_, err = r.Ban("10.0.0.1", target, "second", modB, origin)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, "10.0.0.1", list[0].Identifier)
	assert.Equal(t, "second", list[0].Record.Reason)
	assert.Equal(t, "m2", list[0].Record.Moderator)
	assert.Equal(t, []string{modlog.ActionIPBan, modlog.ActionIPBan}, rec.AuditActions())
}

func TestUnbanUnknownIsNotFound(t *testing.T) {
	r := NewRegistry(store.NewMemoryBackend(), nil)

	_, err := r.Unban("never-banned", modA, origin)
	assert.ErrorIs(t, err, pgerrors.ErrNotFound)
}

func TestUnbanReturnsRecord(t *testing.T) {
	r := NewRegistry(store.NewMemoryBackend(), nil)
	_, err := r.Ban("abc", target, "evasion", modA, origin)
	require.NoError(t, err)

	removed, err := r.Unban("abc", modB, origin)
	require.NoError(t, err)
	assert.Equal(t, "u1", removed.UserID)
	assert.Equal(t, "evasion", removed.Reason)

	_, ok := r.Lookup("abc")
	assert.False(t, ok)
	assert.Empty(t, r.List())
}

func TestListKeepsStorageOrderAcrossRestart(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	r := NewRegistry(backend, nil)
	for _, id := range []string{"z", "a", "m"} {
		_, err := r.Ban(id, target, "r", modA, origin)
		require.NoError(t, err)
	}

	reopened := NewRegistry(backend, nil)
	var ids []string
	for _, b := range reopened.List() {
		ids = append(ids, b.Identifier)
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)

	record, ok := reopened.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "troll", record.UserName)
}
