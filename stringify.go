package vfs

import "strings"

// ToString renders all elements, see #ToStringN.
func (p *Path) ToString(flags Flags) string {
	return p.ToStringN(0, flags)
}

// ToStringN renders the first n elements. If n is 0 or larger than Len, all elements are rendered, a negative
// n excludes that many elements from the end. By default elements are written in marker notation, e.g.
// /archive.tgz#utar/dir, use URLSyntax for /archive.tgz/utar://dir.
func (p *Path) ToStringN(n int, flags Flags) string {
	if p == nil {
		return ""
	}
	if n == 0 || n > p.Len() {
		n = p.Len()
	}
	if n < 0 {
		n += p.Len()
	}

	w := &pathWriter{flags: flags, home: p.eng().homeDir}
	for i := 0; i < n; i++ {
		w.element(p.elements[i], i, p.relative && i == 0)
	}
	return w.sb.String()
}

type pathWriter struct {
	sb    strings.Builder
	flags Flags
	home  func() string
}

// separate appends a slash unless the buffer already ends with one. The very first element of a relative
// path is never separated.
func (w *pathWriter) separate(relative bool) {
	if relative {
		return
	}
	s := w.sb.String()
	if s == "" || s[len(s)-1] != '/' {
		w.sb.WriteByte('/')
	}
}

func (w *pathWriter) element(el *Element, index int, relative bool) {
	urlSyntax := w.flags&URLSyntax != 0
	if el.VfsPrefix != "" {
		params := el.URLParams(w.flags&StripPassword == 0)
		if urlSyntax {
			w.separate(relative)
			w.sb.WriteString(el.VfsPrefix)
			w.sb.WriteString(urlDelimiter)
			if params != "" {
				w.sb.WriteString(params)
				w.sb.WriteByte('/')
			}
		} else {
			if w.sb.Len() == 0 && !relative {
				w.sb.WriteByte('/')
			}
			w.sb.WriteByte('#')
			w.sb.WriteString(el.VfsPrefix)
			if params != "" {
				w.sb.WriteByte(':')
				w.sb.WriteString(params)
			}
		}
	}

	if w.flags&Recode == 0 && el.Converter() != nil {
		if w.flags&HideCharset == 0 {
			w.separate(relative)
			w.sb.WriteString(encodingPrefix)
			w.sb.WriteString(el.Encoding)
		}
		w.path(el, el.DisplayPath(), index, relative)
		return
	}
	w.path(el, el.Path, index, relative)
}

func (w *pathWriter) path(el *Element, s string, index int, relative bool) {
	if w.flags&StripHome != 0 && index == 0 && el.Class != nil && el.Class.Flags.Has(Local) {
		w.sb.WriteString(stripHome(s, w.home()))
		return
	}
	if !strings.HasPrefix(s, "/") && s != "" {
		w.separate(relative)
	}
	w.sb.WriteString(s)
}

// stripHome replaces home at the start of dir with ~, if it is followed by a slash or the end of dir.
func stripHome(dir, home string) string {
	if home == "" || !strings.HasPrefix(dir, home) {
		return dir
	}
	rest := dir[len(home):]
	if rest == "" || rest[0] == '/' {
		return "~" + rest
	}
	return dir
}
