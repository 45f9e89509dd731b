package warnings

import (
	"errors"
	"fmt"
	"testing"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier/notifiertest"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.MemberRef{ID: "u1", DisplayName: "alice"}
	mod   = models.MemberRef{ID: "m1", DisplayName: "mod"}
	here  = models.Origin{Community: "g1", Channel: models.ChannelRef{ID: "c1", Name: "general"}}
)

func newLedger(t *testing.T) (*Ledger, *notifiertest.Recorder, *store.MemoryBackend) {
	t.Helper()
	rec := notifiertest.New()
	backend := store.NewMemoryBackend()
	return NewLedger(backend, rec, modlog.New(rec)), rec, backend
}

func reasons(entries []models.WarningEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Reason)
	}
	return out
}

func TestAddAndRemoveCompacts(t *testing.T) {
	l, rec, backend := newLedger(t)

	for i, r := range []string{"a", "b", "c", "d"} {
		res, err := l.Add("g1", alice, r, mod, here)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.Count)
		assert.NoError(t, res.Delivery)
	}

	removed, err := l.Remove("g1", alice, 2, mod, here)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Reason)
	assert.Equal(t, []string{"a", "c", "d"}, reasons(l.List("g1", "u1")))

	removed, err = l.Remove("g1", alice, 3, mod, here)
	require.NoError(t, err)
	assert.Equal(t, "d", removed.Reason)
	assert.Equal(t, []string{"a", "c"}, reasons(l.List("g1", "u1")))

	for range 2 {
		_, err = l.Remove("g1", alice, 1, mod, here)
		require.NoError(t, err)
	}

	assert.NotNil(t, l.List("g1", "u1"))
	assert.Empty(t, l.List("g1", "u1"))

	data, err := backend.Load(StoreName)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	assert.Equal(t, []string{
		modlog.ActionWarn, modlog.ActionWarn, modlog.ActionWarn, modlog.ActionWarn,
		modlog.ActionRemoveWarning, modlog.ActionRemoveWarning, modlog.ActionRemoveWarning, modlog.ActionRemoveWarning,
	}, rec.AuditActions())
}

func TestRemoveOutOfRangeNeverMutates(t *testing.T) {
	l, rec, _ := newLedger(t)
	_, err := l.Add("g1", alice, "a", mod, here)
	require.NoError(t, err)
	_, err = l.Add("g1", alice, "b", mod, here)
	require.NoError(t, err)

	for _, idx := range []int{0, -1, 3, 100} {
		_, err := l.Remove("g1", alice, idx, mod, here)
		assert.ErrorIs(t, err, pgerrors.ErrOutOfRange, "index %d", idx)
		assert.NotErrorIs(t, err, pgerrors.ErrNoWarnings)
	}

	assert.Equal(t, []string{"a", "b"}, reasons(l.List("g1", "u1")))
	assert.Len(t, rec.Audits, 2)
}

func TestRemoveWithoutWarnings(t *testing.T) {
	l, _, _ := newLedger(t)

	_, err := l.Remove("g1", alice, 1, mod, here)
	assert.ErrorIs(t, err, pgerrors.ErrNoWarnings)
	assert.ErrorIs(t, err, pgerrors.ErrNotFound)
	assert.ErrorIs(t, err, pgerrors.ErrOutOfRange)
}

func TestCommunitiesAreIndependent(t *testing.T) {
	l, _, _ := newLedger(t)
	_, err := l.Add("g1", alice, "a", mod, here)
	require.NoError(t, err)

	assert.Empty(t, l.List("g2", "u1"))
	_, err = l.Remove("g2", alice, 1, mod, here)
	assert.ErrorIs(t, err, pgerrors.ErrNoWarnings)
	assert.Equal(t, 1, l.Count("g1", "u1"))
}

func TestEmptyReasonIsKept(t *testing.T) {
	l, _, _ := newLedger(t)
	_, err := l.Add("g1", alice, "", mod, here)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, reasons(l.List("g1", "u1")))
}

func TestDeliveryFailureIsSoft(t *testing.T) {
	l, rec, _ := newLedger(t)
	rec.FailDirect["u1"] = errors.New("cannot send messages to this user")

	res, err := l.Add("g1", alice, "spam", mod, here)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.ErrorIs(t, res.Delivery, pgerrors.ErrDeliveryFailure)
	assert.Equal(t, 1, l.Count("g1", "u1"))
}

func TestLegacyDocumentLoads(t *testing.T) {
	backend := store.NewMemoryBackend()
	require.NoError(t, backend.Save(StoreName, []byte(`{"g1":{"u1":["old reason",{"reason":"new","issued_by":"m1"}]}}`)))

	l := NewLedger(backend, nil, nil)
	entries := l.List("g1", "u1")
	require.Len(t, entries, 2)
	assert.Equal(t, "old reason", entries[0].Reason)
	assert.Equal(t, "m1", entries[1].IssuedBy)
}

func TestLedgerSurvivesRestart(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	l := NewLedger(backend, nil, nil)
	_, err := l.Add("g1", alice, "first", mod, here)
	require.NoError(t, err)

	reopened := NewLedger(backend, nil, nil)
	entries := reopened.List("g1", "u1")
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Reason)
	assert.Equal(t, "m1", entries[0].IssuedBy)
}

func TestConcurrentAddsAllPersist(t *testing.T) {
	l, _, backend := newLedger(t)

	const workers = 30
	var wg conc.WaitGroup
	for i := range workers {
		wg.Go(func() {
			_, err := l.Add("g1", alice, fmt.Sprintf("motivo %d", i), mod, here)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, workers, l.Count("g1", alice.ID))
	reopened := NewLedger(backend, nil, nil)
	assert.Len(t, reopened.List("g1", alice.ID), workers)
}
