package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/goccy/go-json"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	*MemoryBackend
	fail bool
}

func (b *failingBackend) Save(name string, data []byte) error {
	if b.fail {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Save(name, data)
}

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":4,"alpha":2,"mid":3}`, string(data))

	decoded := NewOrderedMap[int]()
	require.NoError(t, json.Unmarshal([]byte(`{"b":1,"a":2,"c":3}`), decoded))
	assert.Equal(t, []string{"b", "a", "c"}, decoded.Keys())

	assert.True(t, decoded.Delete("a"))
	assert.False(t, decoded.Delete("a"))
	assert.Equal(t, []string{"b", "c"}, decoded.Keys())
}

func TestOrderedMapRejectsNonObjects(t *testing.T) {
	m := NewOrderedMap[int]()
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), m))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), m))
}

func TestRecordStorePrunesEmptyCommunities(t *testing.T) {
	s := NewRecordStore[int]("levels", NewMemoryBackend())

	require.NoError(t, s.Put("g1", "u1", 10))
	require.NoError(t, s.Put("g1", "u2", 20))
	require.NoError(t, s.Put("g2", "u1", 30))

	v, ok := s.Get("g1", "u1")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = s.Get("g2", "u2")
	assert.False(t, ok)

	removed, existed, err := s.Remove("g2", "u1")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, 30, removed)
	assert.Equal(t, []string{"g1"}, s.Communities())

	_, existed, err = s.Remove("g2", "u1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRecordStoreSurvivesReopen(t *testing.T) {
	backend := NewFileBackend(t.TempDir())

	s := NewRecordStore[int]("levels", backend)
	require.NoError(t, s.Put("g1", "late", 5))
	require.NoError(t, s.Put("g1", "early", 50))

	reopened := NewRecordStore[int]("levels", backend)
	entries := reopened.Partition("g1")
	require.Len(t, entries, 2)
	assert.Equal(t, "late", entries[0].Key)
	assert.Equal(t, 50, entries[1].Value)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	s := NewRecordStore[int]("levels", backend)
	require.NoError(t, s.Put("g1", "u1", 1))

	backend.fail = true
	err := s.Put("g1", "u1", 2)
	require.Error(t, err)
	assert.True(t, pgerrors.Is(err, pgerrors.ErrStorageUnavailable))

	v, _ := s.Get("g1", "u1")
	assert.Equal(t, 1, v)

	data, err := backend.Load("levels")
	require.NoError(t, err)
	assert.JSONEq(t, `{"g1":{"u1":1}}`, string(data))
}

func TestModifyErrorAbortsWithoutSaving(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewRecordStore[int]("levels", backend)

	boom := errors.New("rejected")
	err := s.Modify("g1", "u1", func(int, bool) (int, bool, error) { return 0, false, boom })
	assert.ErrorIs(t, err, boom)

	_, err = backend.Load("levels")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "warnings.json"), []byte("{not json"), 0644))

	s := NewRecordStore[[]string]("warnings", NewFileBackend(dir))
	assert.Empty(t, s.Communities())

	require.NoError(t, s.Put("g1", "u1", []string{"spam"}))
	data, err := os.ReadFile(filepath.Join(dir, "warnings.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"g1":{"u1":["spam"]}}`, string(data))
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)
	require.NoError(t, b.Save("bans", []byte(`{}`)))
	require.NoError(t, b.Save("bans", []byte(`{"1.2.3.4":{}}`)))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bans.json", files[0].Name())
}

func TestConcurrentModifyLosesNoUpdates(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	s := NewRecordStore[int]("counters", backend)

	const workers = 50
	var wg conc.WaitGroup
	for range workers {
		wg.Go(func() {
			err := s.Modify("g1", "u1", func(cur int, _ bool) (int, bool, error) {
				return cur + 1, true, nil
			})
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	v, ok := s.Get("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, workers, v)

	v, ok = NewRecordStore[int]("counters", backend).Get("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, workers, v)
}
