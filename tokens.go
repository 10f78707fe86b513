package vfs

import "strings"

// TokensCount returns the number of non-empty slash separated segments of all element sub-paths.
func (p *Path) TokensCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for _, el := range p.elements {
		count += len(pathTokens(el.Path))
	}
	return count
}

// Tokens returns length segments beginning at segment start, counted over all elements. Segments of an
// element other than the first local one are introduced by the url notation of their element, e.g.
// "path2/test1://user@host/path3". A negative start or length counts from the end, a length of 0 means all
// remaining segments. It returns false if start is out of range or a negative length exceeds the segments.
func (p *Path) Tokens(start, length int) (string, bool) {
	if p == nil {
		return "", false
	}
	count := p.TokensCount()
	if length == 0 {
		length = count
	}
	if length < 0 {
		length += count
		if length < 0 {
			return "", false
		}
	}
	if start < 0 {
		start += count
	}
	if start < 0 || start >= count {
		return "", false
	}
	if start+length > count {
		length = count - start
	}

	var ret strings.Builder
	for _, el := range p.elements {
		var elTokens strings.Builder
		for _, tok := range pathTokens(el.Path) {
			if start > 0 {
				start--
				continue
			}
			if length == 0 {
				addClassInfo(&ret, el, elTokens.String())
				return ret.String(), true
			}
			length--
			if elTokens.Len() != 0 {
				elTokens.WriteByte('/')
			}
			elTokens.WriteString(tok)
		}
		addClassInfo(&ret, el, elTokens.String())
	}
	return ret.String(), true
}

// addClassInfo appends the segments of one element. Unless it is the leading local element, the segments are
// introduced by the prefix and authority of the element in url notation.
func addClassInfo(ret *strings.Builder, el *Element, tokens string) {
	if tokens == "" {
		return
	}
	endsWithSlash := func() bool {
		s := ret.String()
		return s != "" && s[len(s)-1] == '/'
	}
	local := el.Class != nil && el.Class.Flags.Has(Local)
	if !local || ret.Len() > 0 {
		if ret.Len() > 0 && !endsWithSlash() {
			ret.WriteByte('/')
		}
		ret.WriteString(el.VfsPrefix)
		ret.WriteString(urlDelimiter)
		if params := el.URLParams(true); params != "" {
			ret.WriteString(params)
			ret.WriteByte('/')
		}
	}
	if el.Encoding != "" {
		if ret.Len() > 0 && !endsWithSlash() {
			ret.WriteByte('/')
		}
		ret.WriteString(encodingPrefix)
		ret.WriteString(el.Encoding)
		ret.WriteByte('/')
	}
	ret.WriteString(tokens)
}

// TokensPath parses the result of Tokens without canonicalization. It returns nil if start is out of range.
func (e *Engine) TokensPath(p *Path, start, length int) *Path {
	s, ok := p.Tokens(start, length)
	if !ok {
		return nil
	}
	return e.ParseFlags(s, NoCanon)
}
