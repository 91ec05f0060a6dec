package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "files"))
	require.NoError(t, err)
	return store
}

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSave(t *testing.T) {
	t.Run("plain save", func(t *testing.T) {
		store := newStore(t)
		stored, err := store.Save("a.txt", []byte("hello"))
		require.NoError(t, err)
		require.Equal(t, "a.txt", stored)
		require.True(t, store.Has("a.txt"))
	})

	t.Run("collisions get numbered", func(t *testing.T) {
		store := newStore(t)

		for _, wanted := range []string{"a.txt", "a(1).txt", "a(2).txt"} {
			stored, err := store.Save("a.txt", []byte("x"))
			require.NoError(t, err)
			require.Equal(t, wanted, stored)
		}
	})

	t.Run("path traversal is cut down to the base name", func(t *testing.T) {
		store := newStore(t)
		stored, err := store.Save("../../etc/passwd", []byte("boo"))
		require.NoError(t, err)
		require.Equal(t, "passwd", stored)
		require.True(t, store.Has("passwd"))
	})
}

func TestRename(t *testing.T) {
	store := newStore(t)
	_, err := store.Save("old.txt", []byte("content"))
	require.NoError(t, err)

	require.NoError(t, store.Rename("old.txt", "new.txt"))
	require.False(t, store.Has("old.txt"))
	require.True(t, store.Has("new.txt"))

	require.ErrorIs(t, store.Rename("absent.txt", "whatever"), ErrNotFound)
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	_, err := store.Save("doomed.txt", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove("doomed.txt"))
	require.False(t, store.Has("doomed.txt"))
	require.ErrorIs(t, store.Remove("doomed.txt"), ErrNotFound)
}

func TestRead(t *testing.T) {
	store := newStore(t)
	_, err := store.Save("data.bin", []byte{0x00, 0xff, 0x10})
	require.NoError(t, err)

	payload, info, err := store.Read("data.bin")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff, 0x10}, payload)
	require.EqualValues(t, 3, info.Size())

	_, _, err = store.Read("absent.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMIME(t *testing.T) {
	require.Equal(t, "text/plain; charset=utf-8", MIME("a.txt"))
	require.Equal(t, "image/png", MIME("pic.png"))
	require.Empty(t, MIME("noext"))
}

func TestExtension(t *testing.T) {
	require.Equal(t, ".png", Extension("image/png"))
	require.Empty(t, Extension("application/x-nonexistent-type"))
}
