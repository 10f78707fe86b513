package vfs

import (
	"bytes"
	"strings"
)

const encodingPrefix = "#enc:"

// Canonicalize completes a relative path with the working directory and normalizes it: duplicate slashes,
// "." and ".." segments and trailing slashes are removed. URL delimiters, the authority of remote classes and
// supported charset markers are respected. The empty string stays empty.
func (e *Engine) Canonicalize(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		if strings.HasPrefix(path, encodingPrefix) {
			return e.Canonicalize(e.buildFilename("/", path))
		}
		return e.Canonicalize(e.buildFilename(e.workDir(), path))
	}
	return e.canonicalizePathname(path)
}

// buildFilename joins the parts with single slashes, skipping empty parts. The result is absolute if the
// first part is.
func (e *Engine) buildFilename(parts ...string) string {
	var sb strings.Builder
	absolute := len(parts) > 0 && strings.HasPrefix(parts[0], "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		part = e.canonicalizePathname(part)
		sb.WriteString(strings.TrimPrefix(part, "/"))
		if !strings.HasSuffix(part, "/") && i < len(parts)-1 {
			sb.WriteByte('/')
		}
	}
	res := sb.String()
	if absolute {
		res = "/" + res
	}
	return e.canonicalizePathname(res)
}

// cut removes buf[from:to] in place.
func cut(buf []byte, from, to int) []byte {
	return append(buf[:from], buf[to:]...)
}

// isEncodingToken reports whether tok starts with a charset marker whose name is supported.
func (e *Engine) isEncodingToken(tok []byte) bool {
	if !bytes.HasPrefix(tok, []byte(encodingPrefix)) {
		return false
	}
	name := tok[len(encodingPrefix):]
	if i := bytes.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	return e.charsetTable().IsSupported(string(name))
}

func hasDelimiterAt(buf []byte, i int) bool {
	return i >= 0 && i+len(urlDelimiter) <= len(buf) && string(buf[i:i+len(urlDelimiter)]) == urlDelimiter
}

// canonicalizePathname normalizes an absolute or relative path without consulting the working directory.
func (e *Engine) canonicalizePathname(path string) string {
	buf := []byte(path)

	// keep the server of //server/share
	l := 0
	if len(buf) >= 2 && buf[0] == '/' && buf[1] == '/' {
		p := 2
		for p < len(buf) && buf[p] != '/' {
			p++
		}
		if p < len(buf) && p > 2 {
			l = p
		}
	}
	if len(buf)-l < 2 {
		return path
	}

	// a//b -> a/b, but not in ftp://
	for p := l; p < len(buf); p++ {
		if buf[p] == '/' && p+1 < len(buf) && buf[p+1] == '/' && (p == l || buf[p-1] != ':') {
			s := p + 2
			for s < len(buf) && buf[s] == '/' {
				s++
			}
			buf = cut(buf, p+1, s)
		}
	}

	// a/./b -> a/b
	for p := l; p < len(buf); {
		if buf[p] == '/' && p+2 < len(buf) && buf[p+1] == '.' && buf[p+2] == '/' {
			buf = cut(buf, p, p+2)
		} else {
			p++
		}
	}

	for p := len(buf) - 1; p > l && buf[p] == '/'; p-- {
		if hasDelimiterAt(buf, p-2) {
			break
		}
		buf = buf[:p]
	}

	if len(buf)-l >= 2 && buf[l] == '.' && buf[l+1] == '/' {
		if len(buf)-l == 2 {
			return string(buf[:l+1])
		}
		buf = cut(buf, l, l+2)
	}

	n := len(buf) - l
	if n < 2 {
		return string(buf)
	}
	last := len(buf) - 1
	if buf[last] == '/' && !bytes.HasSuffix(buf[l:], []byte(urlDelimiter)) {
		buf = buf[:last]
	} else if buf[last] == '.' && buf[last-1] == '/' {
		if n == 2 {
			return string(buf[:l+1])
		}
		buf = buf[:last-1]
	}

	return string(e.collapseDoubleDots(buf, l))
}

// collapseDoubleDots resolves "token/.." pairs in buf[l:].
func (e *Engine) collapseDoubleDots(buf []byte, l int) []byte {
	p := l
	for p+2 < len(buf) {
		if buf[p] != '/' || buf[p+1] != '.' || buf[p+2] != '.' || (p+3 < len(buf) && buf[p+3] != '/') {
			p++
			continue
		}

		// search for the previous token
		s := p - 1
		if s >= l+1 && hasDelimiterAt(buf, s-1) {
			s--
			for s >= l {
				c := buf[s]
				s--
				if c == '/' {
					break
				}
			}
		}

		for s >= l {
			if s-3 > l && hasDelimiterAt(buf, s-3) {
				vp := s - 3
				for vp > l {
					vp--
					if buf[vp] == '/' {
						break
					}
				}
				if buf[vp] == '/' {
					vp++
				}
				// the authority of a remote class belongs to its prefix token
				if c := e.registry().ByPrefix(string(buf[vp : s-3])); c != nil && c.Flags.Has(Remote) {
					s = vp
					continue
				}
			}
			if buf[s] == '/' {
				break
			}
			s--
		}
		s++

		// "../.." stays
		if s+2 == p && buf[s] == '.' && buf[s+1] == '.' {
			p += 3
			continue
		}

		if p+3 < len(buf) {
			switch {
			case s == l && buf[s] == '/':
				buf = cut(buf, s+1, p+4)
			case e.isEncodingToken(buf[s:]):
				buf = cut(buf, s, p+1)
			default:
				buf = cut(buf, s, p+4)
			}
			if s > l {
				p = s - 1
			} else {
				p = s
			}
			continue
		}

		// trailing ".."
		switch {
		case s == l:
			if buf[l] != '/' {
				buf[l] = '.'
			}
			buf = buf[:l+1]
		case s == l+1:
			buf = buf[:s]
		case e.isEncodingToken(buf[s:]):
			buf = append(buf[:s], '.', '.')
			p = s - 1
			for p > l && buf[p] != '/' {
				p--
			}
			continue
		case s >= l+3 && hasDelimiterAt(buf, s-3):
			buf = buf[:s]
		default:
			buf = buf[:s-1]
		}
		break
	}
	return buf
}
