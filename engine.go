package vfs

import (
	"sync/atomic"

	"github.com/worldiety/vfspath/charset"
)

// An Engine parses, renders and persists paths against a class registry. Nil collaborators fall back to the
// operating system, see the field documentation. An Engine must not be modified after first use but can be
// shared by multiple goroutines.
type Engine struct {
	// Registry holds the classes. Defaults to a registry which only knows LocalClass.
	Registry *Registry

	// Charsets converts between the display charset and element charsets. Defaults to UTF-8 display.
	Charsets charset.Charsets

	// Probe tells if a path string exists as-is, so that a literal # in a filename is not taken as a class
	// marker. Defaults to the operating system filesystem.
	Probe Probe

	// WorkDir completes relative paths. Defaults to os.Getwd.
	WorkDir func() string

	// HomeDir is stripped by the StripHome flag. Defaults to os.UserHomeDir.
	HomeDir func() string
}

// NewEngine creates an engine with a fresh registry whose local class is LocalClass.
func NewEngine() *Engine {
	return &Engine{Registry: NewRegistry(LocalClass)}
}

var (
	fallbackRegistry = NewRegistry(LocalClass)
	fallbackCharsets = charset.NewTable(charset.UTF8)
)

func (e *Engine) registry() *Registry {
	if e.Registry == nil {
		return fallbackRegistry
	}
	return e.Registry
}

func (e *Engine) charsetTable() charset.Charsets {
	if e.Charsets == nil {
		return fallbackCharsets
	}
	return e.Charsets
}

func (e *Engine) probe() Probe {
	if e.Probe == nil {
		return osProbe
	}
	return e.Probe
}

func (e *Engine) workDir() string {
	if e.WorkDir == nil {
		return osWorkDir()
	}
	return e.WorkDir()
}

func (e *Engine) homeDir() string {
	if e.HomeDir == nil {
		return osHomeDir()
	}
	return e.HomeDir()
}

var engine atomic.Pointer[Engine]

func init() {
	engine.Store(NewEngine())
}

// Default returns the process wide engine, which is used by the package level functions and by paths which
// have not been created by an engine. Register the classes of your application at Default().Registry or
// replace it using SetDefault.
func Default() *Engine {
	return engine.Load()
}

// SetDefault updates the default engine. See also #Default()
func SetDefault(e *Engine) {
	engine.Store(e)
}

// Parse creates a path from a string. Delegates to Default()#Parse.
func Parse(path string) *Path {
	return Default().Parse(path)
}

// ParseFlags creates a path from a string using the given flags. Delegates to Default()#ParseFlags.
func ParseFlags(path string, flags Flags) *Path {
	return Default().ParseFlags(path, flags)
}

// Deserialize reconstructs a path from the output of Path#Serialize. Delegates to Default()#Deserialize.
func Deserialize(data string) (*Path, error) {
	return Default().Deserialize(data)
}

// BuildFilename joins the parts and parses the result. Delegates to Default()#BuildFilename.
func BuildFilename(parts ...string) *Path {
	return Default().BuildFilename(parts...)
}
