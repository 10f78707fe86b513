package vfs

import "strings"

// ClassFlags describe the capabilities of a filesystem class.
type ClassFlags int

const (
	// Unknown is the zero value, a class without any capability flags.
	Unknown ClassFlags = 0
	// Local denotes a class whose paths are plain local paths.
	Local ClassFlags = 1 << (iota - 1)
	// NoLinks denotes a class which does not support hard or symbolic links.
	NoLinks
	// Remote denotes a network class. Its elements carry an authority (user, password, host, port).
	Remote
	// ReadOnly denotes a class which does not support writes.
	ReadOnly
	// UseTmp denotes a class which needs local temporary copies to open files.
	UseTmp
)

// Has reports whether all bits of f are set.
func (c ClassFlags) Has(f ClassFlags) bool {
	return c&f == f
}

// A Matcher decides whether a class is responsible for a prefix token.
type Matcher interface {
	Match(token string) bool
}

// LiteralPrefix matches every token which starts with the prefix.
type LiteralPrefix string

// Match details: see Matcher#Match
func (p LiteralPrefix) Match(token string) bool {
	return strings.HasPrefix(token, string(p))
}

// PredicateFunc adapts an arbitrary function as a Matcher, e.g. for classes which serve a whole family of
// prefixes.
type PredicateFunc func(token string) bool

// Match details: see Matcher#Match
func (f PredicateFunc) Match(token string) bool {
	return f(token)
}

// A Class is the descriptor of a filesystem implementation, as known to the path engine. Its backend is not
// part of this package.
type Class struct {
	Name    string
	Matcher Matcher
	Flags   ClassFlags
}

// NewClass creates a class which is matched by a literal prefix.
func NewClass(name, prefix string, flags ClassFlags) *Class {
	c := &Class{Name: name, Flags: flags}
	if prefix != "" {
		c.Matcher = LiteralPrefix(prefix)
	}
	return c
}

// Prefix returns the literal prefix or the empty string for predicate based or prefix-less classes.
func (c *Class) Prefix() string {
	if p, ok := c.Matcher.(LiteralPrefix); ok {
		return string(p)
	}
	return ""
}

// Match reports whether the class is responsible for token. Classes without a Matcher never match.
func (c *Class) Match(token string) bool {
	if c.Matcher == nil {
		return false
	}
	return c.Matcher.Match(token)
}

func (c *Class) String() string {
	return c.Name
}
