// Package charset answers which character encodings are available and converts text between them. Text is
// carried in Go strings as raw bytes of the respective encoding.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// UTF8 is the name of the default display charset.
const UTF8 = "UTF-8"

// ErrUnsupported is returned for charset names which are unknown or cannot be converted.
var ErrUnsupported = errors.New("unsupported charset")

// Charsets is the capability the path engine needs from the environment.
type Charsets interface {
	// IsSupported reports whether text can be converted to and from the named charset.
	IsSupported(name string) bool

	// Recode converts text from one charset into another.
	Recode(text, from, to string) (string, error)

	// Display returns the charset of the terminal, i.e. the charset of all text entered by the user.
	Display() string

	// Encoding resolves the named charset.
	Encoding(name string) (encoding.Encoding, error)
}

var _ Charsets = (*Table)(nil)

// A Table resolves IANA and MIME charset names using golang.org/x/text. The zero value uses UTF-8 as display
// charset.
type Table struct {
	// DisplayCharset overrides the display charset.
	DisplayCharset string

	mu    sync.Mutex
	cache map[string]encoding.Encoding
}

// NewTable returns a Table for the given display charset.
func NewTable(display string) *Table {
	return &Table{DisplayCharset: display}
}

var fold = cases.Fold()

// key normalizes a charset name for comparison.
func key(name string) string {
	return fold.String(strings.TrimSpace(name))
}

// Same reports whether two names denote the same charset spelling, ignoring case.
func Same(a, b string) bool {
	return key(a) == key(b)
}

// Display details: see Charsets#Display
func (t *Table) Display() string {
	if t.DisplayCharset == "" {
		return UTF8
	}
	return t.DisplayCharset
}

// IsSupported details: see Charsets#IsSupported
func (t *Table) IsSupported(name string) bool {
	_, err := t.Encoding(name)
	return err == nil
}

// Recode details: see Charsets#Recode
func (t *Table) Recode(text, from, to string) (string, error) {
	if Same(from, to) {
		return text, nil
	}
	src, err := t.Encoding(from)
	if err != nil {
		return "", err
	}
	dst, err := t.Encoding(to)
	if err != nil {
		return "", err
	}
	utf8, err := src.NewDecoder().String(text)
	if err != nil {
		return "", fmt.Errorf("decode from %s: %w", from, err)
	}
	out, err := dst.NewEncoder().String(utf8)
	if err != nil {
		return "", fmt.Errorf("encode to %s: %w", to, err)
	}
	return out, nil
}

// Encoding details: see Charsets#Encoding
func (t *Table) Encoding(name string) (encoding.Encoding, error) {
	k := key(name)
	if k == "" {
		return nil, ErrUnsupported
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if enc, ok := t.cache[k]; ok {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		enc, err = ianaindex.MIME.Encoding(name)
	}
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if t.cache == nil {
		t.cache = make(map[string]encoding.Encoding)
	}
	t.cache[k] = enc
	return enc, nil
}
