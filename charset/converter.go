package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
)

// ErrClosed is returned when a released Converter is used.
var ErrClosed = errors.New("converter is closed")

// A Converter translates text between a fixed charset and the display charset. It is an owned resource of a
// single path element and must be closed when the element is released. A Converter is not safe for
// concurrent use.
type Converter struct {
	name    string
	display string
	closed  bool

	// nil if name and display denote the same charset
	decoder        *encoding.Decoder
	encoder        *encoding.Encoder
	displayDecoder *encoding.Decoder
	displayEncoder *encoding.Encoder
}

// Open resolves the named charset and the display charset of cs and returns a Converter between them.
func Open(cs Charsets, name string) (*Converter, error) {
	enc, err := cs.Encoding(name)
	if err != nil {
		return nil, err
	}
	display, err := cs.Encoding(cs.Display())
	if err != nil {
		return nil, err
	}

	c := &Converter{name: name, display: cs.Display()}
	if !Same(name, c.display) {
		c.decoder, c.encoder = enc.NewDecoder(), enc.NewEncoder()
		c.displayDecoder, c.displayEncoder = display.NewDecoder(), display.NewEncoder()
	}
	return c, nil
}

// Name returns the charset this converter was opened for.
func (c *Converter) Name() string {
	return c.name
}

// ToDisplay converts text from the converter charset into the display charset.
func (c *Converter) ToDisplay(text string) (string, error) {
	if c.closed {
		return "", ErrClosed
	}
	if c.decoder == nil {
		return text, nil
	}
	return transcode(text, c.decoder, c.displayEncoder, c.name, c.display)
}

// FromDisplay converts text from the display charset into the converter charset.
func (c *Converter) FromDisplay(text string) (string, error) {
	if c.closed {
		return "", ErrClosed
	}
	if c.decoder == nil {
		return text, nil
	}
	return transcode(text, c.displayDecoder, c.encoder, c.display, c.name)
}

func transcode(text string, dec *encoding.Decoder, enc *encoding.Encoder, from, to string) (string, error) {
	utf8, err := dec.String(text)
	if err != nil {
		return "", fmt.Errorf("decode from %s: %w", from, err)
	}
	out, err := enc.String(utf8)
	if err != nil {
		return "", fmt.Errorf("encode to %s: %w", to, err)
	}
	return out, nil
}

// Close releases the transformers of the converter. Closing twice returns ErrClosed.
func (c *Converter) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.decoder, c.encoder = nil, nil
	c.displayDecoder, c.displayEncoder = nil, nil
	return nil
}
