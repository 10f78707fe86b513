package vfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/worldiety/vfspath/charset"
	"golang.org/x/text/encoding/charmap"
)

const mockHome = "/mock/home"

// newTestEngine creates an engine which does not touch the host: an empty in-memory filesystem for the
// probe, a fixed working and home directory and UTF-8 as display charset.
func newTestEngine(classes ...*Class) *Engine {
	e := NewEngine()
	e.Probe = FsProbe{Fs: afero.NewMemMapFs()}
	e.WorkDir = func() string { return "/work" }
	e.HomeDir = func() string { return mockHome }
	e.Charsets = charset.NewTable(charset.UTF8)
	for _, c := range classes {
		e.Registry.Register(c)
	}
	return e
}

func koi8(t *testing.T, s string) string {
	t.Helper()
	res, err := charmap.KOI8R.NewEncoder().String(s)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
