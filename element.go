package vfs

import (
	"strconv"
	"strings"

	"github.com/worldiety/vfspath/charset"
)

// An Element is one layer of a composite path: a local sub-path which is interpreted by its class, optionally
// with network credentials and a charset.
type Element struct {
	Class *Class

	// Path is the sub-path inside the class, stored in the charset given by Encoding.
	Path string

	// Encoding is the charset name of Path or empty.
	Encoding string

	// VfsPrefix is the prefix token which introduced the element. It is empty for the outermost plain local
	// element.
	VfsPrefix string

	User     string
	Password string
	// Host is a hostname, an IPv4 address or an IPv6 address without brackets.
	Host string
	// Port is 0 if unspecified.
	Port int

	charsets  charset.Charsets
	converter *charset.Converter
}

// IsIPv6 reports whether Host is an IPv6 literal.
func (el *Element) IsIPv6() bool {
	return strings.Contains(el.Host, ":")
}

// Clone returns a deep copy. The charset converter is not shared, the clone opens its own on demand.
func (el *Element) Clone() *Element {
	if el == nil {
		return nil
	}
	tmp := *el
	tmp.converter = nil
	return &tmp
}

// Free releases the charset converter of the element.
func (el *Element) Free() error {
	if el.converter == nil {
		return nil
	}
	err := el.converter.Close()
	el.converter = nil
	return err
}

// Converter returns the charset converter of the element, opening it on first use. It returns nil if the
// element has no encoding or the encoding is not supported.
func (el *Element) Converter() *charset.Converter {
	if el.converter != nil || el.Encoding == "" {
		return el.converter
	}
	conv, err := charset.Open(el.charsetTable(), el.Encoding)
	if err != nil {
		return nil
	}
	el.converter = conv
	return conv
}

func (el *Element) charsetTable() charset.Charsets {
	if el.charsets != nil {
		return el.charsets
	}
	return Default().charsetTable()
}

// setEncoding replaces the encoding and drops a converter opened for the previous one.
func (el *Element) setEncoding(name string) error {
	err := el.Free()
	el.Encoding = name
	return err
}

// DisplayPath returns Path converted into the display charset. Without a usable converter, Path is returned
// unchanged.
func (el *Element) DisplayPath() string {
	conv := el.Converter()
	if conv == nil {
		return el.Path
	}
	s, err := conv.ToDisplay(el.Path)
	if err != nil {
		log.Debugf("cannot recode %q from %s: %v", el.Path, el.Encoding, err)
		return el.Path
	}
	return s
}

// URLParams renders the authority as user[:password]@host[:port]. IPv6 hosts are enclosed in brackets. The
// port is only written together with a host.
func (el *Element) URLParams(keepPassword bool) string {
	var sb strings.Builder
	if el.User != "" {
		sb.WriteString(el.User)
	}
	if keepPassword && el.Password != "" {
		sb.WriteByte(':')
		sb.WriteString(el.Password)
	}
	if el.Host != "" {
		if el.User != "" || el.Password != "" {
			sb.WriteByte('@')
		}
		if el.IsIPv6() {
			sb.WriteByte('[')
			sb.WriteString(el.Host)
			sb.WriteByte(']')
		} else {
			sb.WriteString(el.Host)
		}
		if el.Port != 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(el.Port))
		}
	}
	return sb.String()
}

// PrettyString renders the element for humans: the class prefix with the password stripped authority,
// followed by the sub-path, e.g. "ftp://user@host/pub".
func (el *Element) PrettyString() string {
	var sb strings.Builder
	if el.Class != nil && el.Class.Prefix() != "" {
		sb.WriteString(el.Class.Prefix())
		sb.WriteString(urlDelimiter)
		sb.WriteString(el.URLParams(false))
	}
	if !strings.HasPrefix(el.Path, "/") && sb.Len() > 0 {
		sb.WriteByte('/')
	}
	sb.WriteString(el.Path)
	return sb.String()
}
