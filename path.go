package vfs

import (
	"strings"

	"go.uber.org/multierr"
)

// A Path is a chain of elements, each one a layer of a composite filesystem path. Index 0 is the outermost
// element, usually a local path, the last element is the innermost one and denotes the actual target.
//
// Example
//
//  /home/user/archive.tgz#utar/docs/#ftp:joe@host:21/pub
//
// has three elements: the local path /home/user/archive.tgz, the sub-path docs inside the archive (class
// with prefix utar) and the remote path pub on the ftp host.
//
// A Path is owned by its creator and must not be used concurrently. Free releases the charset converters of
// its elements.
type Path struct {
	elements []*Element
	relative bool

	str      string
	strValid bool

	engine *Engine
}

// New creates an empty path which is rendered by the Default engine.
func New() *Path {
	return &Path{}
}

func (p *Path) eng() *Engine {
	if p == nil || p.engine == nil {
		return Default()
	}
	return p.engine
}

func (p *Path) invalidate() {
	p.strValid = false
	p.str = ""
}

func (p *Path) prepend(el *Element) {
	p.elements = append([]*Element{el}, p.elements...)
	p.invalidate()
}

// Len returns the number of elements.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.elements)
}

// Relative reports whether the path was parsed from a string which did not start with a slash.
func (p *Path) Relative() bool {
	if p == nil {
		return false
	}
	return p.relative
}

// SetRelative marks the path as relative, so that it is rendered without a leading slash.
func (p *Path) SetRelative(relative bool) {
	p.relative = relative
	p.invalidate()
}

// Element returns the element at index. Negative indices count from the end, -1 is the last element. It
// returns nil if the index is out of range.
func (p *Path) Element(index int) *Element {
	if index < 0 {
		index += p.Len()
	}
	if index < 0 || index >= p.Len() {
		return nil
	}
	return p.elements[index]
}

// Elements returns a copy of the element list.
func (p *Path) Elements() []*Element {
	if p == nil {
		return nil
	}
	tmp := make([]*Element, len(p.elements))
	copy(tmp, p.elements)
	return tmp
}

// Append adds el as the new innermost element. The path takes ownership of el.
func (p *Path) Append(el *Element) {
	p.elements = append(p.elements, el)
	p.invalidate()
}

// Remove deletes and frees the element at index, negative indices count from the end. The last remaining
// element is never removed.
func (p *Path) Remove(index int) error {
	if p.Len() <= 1 {
		return nil
	}
	if index < 0 {
		index += p.Len()
	}
	if index < 0 || index >= p.Len() {
		return nil
	}
	el := p.elements[index]
	p.elements = append(p.elements[:index], p.elements[index+1:]...)
	p.invalidate()
	return el.Free()
}

// Clone returns a deep copy. The clone has its own charset converters.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	tmp := &Path{relative: p.relative, engine: p.engine, str: p.str, strValid: p.strValid}
	tmp.elements = make([]*Element, len(p.elements))
	for i, el := range p.elements {
		tmp.elements[i] = el.Clone()
	}
	return tmp
}

// Free releases all elements. The path is empty afterwards.
func (p *Path) Free() error {
	if p == nil {
		return nil
	}
	var err error
	for _, el := range p.elements {
		err = multierr.Append(err, el.Free())
	}
	p.elements = nil
	p.invalidate()
	return err
}

// String returns the complete path in marker notation. The result is cached until the path is modified.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	if !p.strValid {
		p.str = p.ToStringN(0, None)
		p.strValid = true
	}
	return p.str
}

// StrLen returns the byte length of String.
func (p *Path) StrLen() int {
	return len(p.String())
}

// Equal compares the string representations.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return false
	}
	return p.String() == other.String()
}

// EqualN compares the first n bytes of the string representations.
func (p *Path) EqualN(other *Path, n int) bool {
	if p == nil || other == nil {
		return false
	}
	a, b := p.String(), other.String()
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	return a == b
}

// LastPath returns the sub-path of the innermost element or the empty string for an empty path.
func (p *Path) LastPath() string {
	el := p.Element(-1)
	if el == nil {
		return ""
	}
	return el.Path
}

// ChangeEncoding sets the charset of the innermost element. The bytes of its sub-path are not converted.
func (p *Path) ChangeEncoding(name string) error {
	el := p.Element(-1)
	if el == nil || el.Encoding == name {
		return nil
	}
	p.invalidate()
	return el.setEncoding(name)
}

// ToAbsolute returns a clone of an absolute path or parses a relative path again, which completes it with the
// working directory.
func (p *Path) ToAbsolute() *Path {
	if p == nil {
		return nil
	}
	if !p.relative {
		return p.Clone()
	}
	return p.eng().Parse(p.String())
}

// AppendPath returns a new path consisting of clones of the elements of p followed by the elements of all
// other paths. A nil p results in nil.
func (p *Path) AppendPath(others ...*Path) *Path {
	if p == nil {
		return nil
	}
	tmp := &Path{relative: p.relative, engine: p.engine}
	for _, src := range append([]*Path{p}, others...) {
		if src == nil {
			continue
		}
		for _, el := range src.elements {
			tmp.elements = append(tmp.elements, el.Clone())
		}
	}
	return tmp
}

// Join appends the parts as sub-paths to the string representation of p and parses the result.
func (p *Path) Join(parts ...string) *Path {
	if len(parts) == 0 {
		return p.Clone()
	}
	e := p.eng()
	return e.BuildFilename(p.String(), e.buildFilename(parts...))
}

// BuildFilename joins the parts using slashes and parses the result.
func (e *Engine) BuildFilename(parts ...string) *Path {
	if len(parts) == 0 {
		return nil
	}
	return e.Parse(e.buildFilename(parts...))
}

// pathTokens splits a sub-path at slashes, skipping empty tokens.
func pathTokens(path string) []string {
	tmp := strings.Split(path, "/")
	cleaned := tmp[:0]
	for _, str := range tmp {
		if str != "" {
			cleaned = append(cleaned, str)
		}
	}
	return cleaned
}
