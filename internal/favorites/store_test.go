package favorites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "favorites.json"))
}

func TestStore_AddRemoveContains(t *testing.T) {
	s := tempStore(t)

	assert.False(t, s.Contains(25))
	assert.True(t, s.Add(25), "first add reports newly added")
	assert.False(t, s.Add(25), "duplicate add reports already present")
	assert.True(t, s.Contains(25))
	assert.Equal(t, []int{25}, s.All())

	assert.True(t, s.Remove(25))
	assert.True(t, s.Remove(25), "removing an absent id still succeeds")
	assert.False(t, s.Contains(25))
	assert.Empty(t, s.All())
}

func TestStore_ToggleTwiceRestoresStateAndNotifiesTwice(t *testing.T) {
	s := tempStore(t)

	notified := 0
	unsubscribe := s.Subscribe(func() { notified++ })
	defer unsubscribe()

	assert.True(t, s.Toggle(7), "first toggle favorites the id")
	assert.False(t, s.Toggle(7), "second toggle unfavorites it")

	assert.False(t, s.Contains(7))
	assert.Equal(t, 2, notified, "toggle();toggle() emits exactly two notifications")
}

func TestStore_DuplicateAddDoesNotNotify(t *testing.T) {
	s := tempStore(t)

	notified := 0
	defer s.Subscribe(func() { notified++ })()

	s.Add(1)
	s.Add(1)
	s.Remove(99) // absent
	assert.Equal(t, 1, notified)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := tempStore(t)

	notified := 0
	unsubscribe := s.Subscribe(func() { notified++ })

	s.Add(1)
	unsubscribe()
	s.Add(2)

	assert.Equal(t, 1, notified)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	first := Open(path)
	first.Add(4)
	first.Add(2)

	second := Open(path)
	assert.Equal(t, []int{2, 4}, second.All(), "ids persist sorted across sessions")
}

func TestStore_CorruptStorageSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o644))

	s := Open(path)
	assert.Empty(t, s.All(), "malformed storage reads as the empty set")

	// The first mutation repairs the file.
	s.Add(1)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[1]", string(raw))
}

func TestStore_IgnoresNonPositiveIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("[0,-2,3]"), 0o644))

	s := Open(path)
	assert.Equal(t, []int{3}, s.All())
}

func TestStore_PruneRemovesManyWithOneNotification(t *testing.T) {
	s := tempStore(t)
	s.Add(1)
	s.Add(2)
	s.Add(3)

	notified := 0
	defer s.Subscribe(func() { notified++ })()

	s.Prune(1, 3, 42) // 42 absent
	assert.Equal(t, []int{2}, s.All())
	assert.Equal(t, 1, notified)

	s.Prune(99) // nothing to do
	assert.Equal(t, 1, notified)
}
