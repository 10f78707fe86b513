package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ftp := NewClass("ftpfs", "ftp", Remote)
	tar := NewClass("tarfs", "utar", ReadOnly)
	e := newTestEngine(ftp, tar)

	filename := filepath.Join(t.TempDir(), "state", "panels.ini")
	store, err := OpenStore(e, filename)
	require.NoError(t, err)

	_, err = store.Get("panels", "left")
	assert.True(t, errors.Is(err, ErrNotStored))

	left := e.Parse("/home/joe/a.tgz#utar/docs")
	right := e.Parse("/#ftp:joe:secret@host:21/pub/#enc:KOI8-R/файлы")
	require.NoError(t, store.Put("panels", "left", left))
	require.NoError(t, store.Put("panels", "right", right))
	require.NoError(t, store.Put("history", "0", left))
	store.Delete("history", "0")
	require.NoError(t, store.Save())

	_, err = os.Stat(filename)
	require.NoError(t, err)

	reopened, err := OpenStore(e, filename)
	require.NoError(t, err)

	got, err := reopened.Get("panels", "left")
	require.NoError(t, err)
	assert.True(t, left.Equal(got))

	got, err = reopened.Get("panels", "right")
	require.NoError(t, err)
	assert.True(t, right.Equal(got))
	assert.Equal(t, "secret", got.Element(-1).Password)

	_, err = reopened.Get("history", "0")
	assert.True(t, errors.Is(err, ErrNotStored))
}

func TestStore_PutEmptyPath(t *testing.T) {
	store, err := OpenStore(newTestEngine(), filepath.Join(t.TempDir(), "x.ini"))
	require.NoError(t, err)

	var empty *EmptyPathError
	assert.True(t, errors.As(store.Put("a", "b", New()), &empty))
}

func TestStore_OpenBroken(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "broken.ini")
	require.NoError(t, os.WriteFile(filename, []byte("[unclosed\n"), 0o600))

	_, err := OpenStore(newTestEngine(), filename)
	assert.Error(t, err)
}

func TestStore_PutUnquotableValue(t *testing.T) {
	e := newTestEngine()
	filename := filepath.Join(t.TempDir(), "x.ini")
	store, err := OpenStore(e, filename)
	require.NoError(t, err)

	// triple quotes in the first line of a multi line value
	p := e.ParseFlags("/q`x\"\"\"y\nz", NoCanon)
	require.Equal(t, 1, p.Len())
	assert.ErrorIs(t, store.Put("panels", "left", p), ErrNotStorable)

	// quoting rules which still apply
	odd := e.ParseFlags("/a`b\nc;d#e", NoCanon)
	require.NoError(t, store.Put("panels", "right", odd))
	require.NoError(t, store.Save())

	reopened, err := OpenStore(e, filename)
	require.NoError(t, err)
	_, err = reopened.Get("panels", "left")
	assert.ErrorIs(t, err, ErrNotStored)
	got, err := reopened.Get("panels", "right")
	require.NoError(t, err)
	assert.Equal(t, "/a`b\nc;d#e", got.LastPath())
}
