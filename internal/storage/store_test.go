package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("campaign")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("campaign", []byte{1, 2, 3}))
	data, err := s.Get("campaign")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	// Put is a full replacement.
	require.NoError(t, s.Put("campaign", []byte{4, 5}))
	data, err = s.Get("campaign")
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, data)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("quick", []byte{1}))
	require.NoError(t, s.Delete("quick"))
	_, err := s.Get("quick")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing slot is not an error.
	assert.NoError(t, s.Delete("quick"))
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("one", []byte{1}))
	require.NoError(t, s.Put("two", []byte{1, 2}))

	infos, err := s.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	sizes := map[string]int{}
	for _, info := range infos {
		sizes[info.Slot] = info.Size
		assert.False(t, info.SavedAt.IsZero())
	}
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, sizes)
}

func TestBadSlotNames(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"", "a b", "a;drop", "слот", "x/y"} {
		assert.ErrorIs(t, s.Put(name, []byte{1}), ErrBadSlot, name)
		_, err := s.Get(name)
		assert.ErrorIs(t, err, ErrBadSlot, name)
		assert.ErrorIs(t, s.Delete(name), ErrBadSlot, name)
	}
}
