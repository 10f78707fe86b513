package vfs

import (
	"strings"
)

// Parse creates a path from a string, see #ParseFlags.
func (e *Engine) Parse(path string) *Path {
	return e.ParseFlags(path, None)
}

// ParseFlags creates a path from a string. Two notations are understood and may be freely combined in
// multiple layers:
//
//  * marker notation: /local/archive.tgz#utar/dir/#ftp:user@host:21/pub
//  * url notation: /local/archive.tgz/utar://dir/ftp://user@host:21/pub
//
// The marker notation is used if the string contains at least one marker of a registered class (or if
// UseDeprecatedParser is set and the string contains no "://"), otherwise the url notation. Unless NoCanon is
// set, the string is canonicalized and completed by the working directory first. The empty string returns nil.
func (e *Engine) ParseFlags(path string, flags Flags) *Path {
	if path == "" {
		return nil
	}
	if flags&NoCanon == 0 {
		path = e.Canonicalize(path)
	}

	m, ok := e.findMarker(path)
	if ok || (flags&UseDeprecatedParser != 0 && !strings.Contains(path, urlDelimiter)) {
		return e.parseMarkers(path, m, ok)
	}
	return e.parseURL(path)
}

func (e *Engine) newElement(class *Class) *Element {
	return &Element{Class: class, charsets: e.charsetTable()}
}

// setLocalText fills Path and Encoding of el from the local text of an element.
func (e *Engine) setLocalText(el *Element, text string) {
	el.Path = e.translatePath(text)
	if _, name, _, ok := e.findEncoding(text); ok {
		el.Encoding = name
	}
}

// findEncoding returns the position of the last charset marker in text which starts the text or follows a
// slash and names a supported charset, together with that name and the end of the name.
func (e *Engine) findEncoding(text string) (start int, name string, end int, ok bool) {
	limit := len(text)
	for limit > 0 {
		i := strings.LastIndex(text[:limit], encodingPrefix)
		if i < 0 {
			return 0, "", 0, false
		}
		if i == 0 || text[i-1] == '/' {
			nameStart := i + len(encodingPrefix)
			nameEnd := len(text)
			if slash := strings.IndexByte(text[nameStart:], '/'); slash >= 0 {
				nameEnd = nameStart + slash
			}
			name := text[nameStart:nameEnd]
			if e.charsetTable().IsSupported(name) {
				return i, name, nameEnd, true
			}
		}
		limit = i
	}
	return 0, "", 0, false
}

// translatePath removes the charset markers from text and converts the text following each marker from the
// display charset into the named charset.
func (e *Engine) translatePath(text string) string {
	start, name, end, ok := e.findEncoding(text)
	if !ok {
		return text
	}
	head := e.translatePath(text[:start])
	if end >= len(text) {
		return head
	}
	tail := text[end+1:]
	cs := e.charsetTable()
	out, err := cs.Recode(tail, cs.Display(), name)
	if err != nil {
		log.Debugf("cannot recode %q to %s: %v", tail, name, err)
		out = tail
	}
	return head + out
}

// marker is a class marker found in a path string.
type marker struct {
	head  string // text before the #
	op    string // text between # and the next slash
	rest  string // text after that slash
	slash bool   // whether a slash follows op
	class *Class
}

// findMarker locates the rightmost # which introduces a registered class. A # at the very first position
// never does. If the whole string exists as a file, it does not contain any marker.
func (e *Engine) findMarker(path string) (marker, bool) {
	if strings.LastIndexByte(path, '#') < 1 {
		return marker{}, false
	}
	if e.probe().Exists(path) {
		return marker{}, false
	}
	for end := len(path); end > 1; {
		i := strings.LastIndexByte(path[:end], '#')
		if i < 1 {
			break
		}
		op, rest, slash := path[i+1:], "", false
		if j := strings.IndexByte(op, '/'); j >= 0 {
			op, rest, slash = op[:j], op[j+1:], true
		}
		if c := e.registry().ByPrefix(op); c != nil {
			return marker{head: path[:i], op: op, rest: rest, slash: slash, class: c}, true
		}
		// the byte before a rejected # is not searched again
		end = i - 1
	}
	return marker{}, false
}

// parseMarkers splits path at class markers from right to left. m and ok are the result of findMarker for
// the complete path.
func (e *Engine) parseMarkers(path string, m marker, ok bool) *Path {
	p := &Path{relative: !strings.HasPrefix(path, "/"), engine: e}

	for ok {
		p.prepend(e.markerElement(m))
		path = m.head
		m, ok = e.findMarker(path)
	}

	if path != "" {
		el := e.newElement(e.registry().Local())
		e.setLocalText(el, path)
		p.prepend(el)
	}
	return p
}

func (e *Engine) markerElement(m marker) *Element {
	el := e.newElement(m.class)

	prefix, params, hasParams := m.op, "", false
	if i := strings.IndexByte(m.op, ':'); i >= 0 {
		prefix, params, hasParams = m.op[:i], m.op[i+1:], true
	}

	local := m.rest
	// #prefix://authority/path
	if hasParams && params == "" && m.slash && strings.HasPrefix(local, "/") {
		local = local[1:]
		if m.class.Flags.Has(Remote) {
			if j := strings.IndexByte(local, '/'); j >= 0 {
				params, local = local[:j], local[j+1:]
			} else {
				params, local = local, ""
			}
		}
	}

	el.VfsPrefix = prefix
	if params != "" {
		parseCredentials(el, params)
	}
	e.setLocalText(el, local)
	return el
}

// parseURL splits path at "://" delimiters from right to left. The text between the delimiter and the
// preceding slash names the class. Delimiters with an unknown class are part of the path text.
func (e *Engine) parseURL(path string) *Path {
	p := &Path{relative: !strings.HasPrefix(path, "/"), engine: e}

	end := len(path)
	for {
		delim := strings.LastIndex(path[:end], urlDelimiter)
		if delim < 0 {
			break
		}

		realStart := delim
		for realStart > 0 && path[realStart] != '/' {
			realStart--
		}
		prefixStart := realStart
		if path[prefixStart] == '/' {
			prefixStart++
		}

		prefix := path[prefixStart:delim]
		class := e.registry().ByPrefix(prefix)
		if class == nil {
			end = delim
			continue
		}

		el := e.newElement(class)
		el.VfsPrefix = prefix
		rest := path[delim+len(urlDelimiter):]
		if class.Flags.Has(Remote) {
			authority := rest
			if slash := strings.IndexByte(rest, '/'); slash >= 0 {
				authority = rest[:slash]
				el.Path = e.translatePath(rest[slash+1:])
				if _, name, _, ok := e.findEncoding(rest[slash:]); ok {
					el.Encoding = name
				}
			}
			parseCredentials(el, authority)
		} else {
			e.setLocalText(el, rest)
		}
		p.prepend(el)

		switch {
		case realStart > 0 && path[realStart] == '/':
			path = path[:realStart]
		case realStart == 0 && path[0] != '/':
			path = ""
		default:
			path = path[:1]
		}
		end = len(path)
	}

	if path != "" {
		el := e.newElement(e.registry().Local())
		e.setLocalText(el, path)
		p.prepend(el)
	}
	return p
}
