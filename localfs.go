package vfs

import (
	"os"

	"github.com/spf13/afero"
)

// LocalClass is the class of plain local paths, i.e. of all text which is not introduced by a class marker.
var LocalClass = &Class{Name: "localfs", Flags: Local}

// A Probe tells whether a path string names an existing file.
type Probe interface {
	Exists(path string) bool
}

var _ Probe = FsProbe{}

// FsProbe answers existence queries using an afero filesystem.
type FsProbe struct {
	Fs afero.Fs
}

// Exists details: see Probe#Exists
func (p FsProbe) Exists(path string) bool {
	ok, err := afero.Exists(p.Fs, path)
	return err == nil && ok
}

var osProbe Probe = FsProbe{Fs: afero.NewOsFs()}

func osWorkDir() string {
	dir, err := os.Getwd()
	if err != nil {
		log.Debugf("cannot determine working directory: %v", err)
		return "/"
	}
	return dir
}

func osHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return dir
}
