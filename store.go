package vfs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/facebookgo/atomicfile"
	"gopkg.in/ini.v1"
)

var (
	// ErrNotStored is returned by Store#Get for a missing entry.
	ErrNotStored = errors.New("path not stored")

	// ErrNotStorable is returned by Store#Put for a path whose serialized form cannot be written as an INI value,
	// e.g. a value which needs triple quotes but contains them in its first line.
	ErrNotStorable = errors.New("path cannot be stored as INI value")
)

// A Store persists paths across process runs, e.g. the directories of file panels. Each path is kept
// serialized as a value of an INI file, so the file stays readable by other tools.
type Store struct {
	engine   *Engine
	filename string
	file     *ini.File
}

// OpenStore loads filename. A missing file results in an empty store which is created by Save.
func OpenStore(e *Engine, filename string) (*Store, error) {
	s := &Store{engine: e, filename: filename}
	cfg, err := ini.Load(filename)
	switch {
	case err == nil:
		s.file = cfg
	case errors.Is(err, os.ErrNotExist):
		s.file = ini.Empty()
	default:
		return nil, fmt.Errorf("cannot load path store: %w", err)
	}
	log.Debugw("path store opened", "file", filename, "sections", len(s.file.SectionStrings()))
	return s, nil
}

// Put serializes p into section/key, replacing any previous value. The INI quoting rules cannot express every
// string, ErrNotStorable is returned for values which would not be read back unchanged.
func (s *Store) Put(section, key string, p *Path) error {
	data, err := p.Serialize()
	if err != nil {
		return err
	}
	if err := checkStorable(data); err != nil {
		return err
	}
	_, err = s.file.Section(section).NewKey(key, data)
	return err
}

// checkStorable writes value into a scratch file and reads it back.
func checkStorable(value string) error {
	tmp := ini.Empty()
	if _, err := tmp.Section("check").NewKey("value", value); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := tmp.WriteTo(&buf); err != nil {
		return err
	}
	back, err := ini.Load(buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotStorable, err)
	}
	if back.Section("check").Key("value").Value() != value {
		return ErrNotStorable
	}
	return nil
}

// Get deserializes the path stored at section/key.
func (s *Store) Get(section, key string) (*Path, error) {
	sec, err := s.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return nil, fmt.Errorf("%s/%s: %w", section, key, ErrNotStored)
	}
	return s.engine.Deserialize(sec.Key(key).Value())
}

// Delete removes section/key.
func (s *Store) Delete(section, key string) {
	if sec, err := s.file.GetSection(section); err == nil {
		sec.DeleteKey(key)
	}
}

// Save writes the store atomically, readers either see the previous or the new file.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.filename), 0o755); err != nil {
		return err
	}
	f, err := atomicfile.New(s.filename, 0o600)
	if err != nil {
		return err
	}
	if _, err := s.file.WriteTo(f); err != nil {
		silentAbort(f)
		return fmt.Errorf("cannot write path store: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Debugw("path store saved", "file", s.filename)
	return nil
}
