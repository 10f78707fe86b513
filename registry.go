package vfs

import (
	"sync"
)

// A Registry holds the classes in the order of registration. Index 0 is always the local class, which is the
// fallback for path text without a class marker and is never matched by prefix.
type Registry struct {
	mu      sync.RWMutex
	classes []*Class
}

// NewRegistry creates a registry whose local class is local.
func NewRegistry(local *Class) *Registry {
	return &Registry{classes: []*Class{local}}
}

// Register appends the class and returns the handle. Duplicates are not detected, the first registered class
// wins in lookups.
func (r *Registry) Register(c *Class) *Class {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = append(r.classes, c)
	log.Debugw("class registered", "name", c.Name, "prefix", c.Prefix(), "index", len(r.classes)-1)
	return c
}

// Unregister removes the class by identity. The local class cannot be removed.
func (r *Registry) Unregister(c *Class) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 1; i < len(r.classes); i++ {
		if r.classes[i] == c {
			r.classes = append(r.classes[:i], r.classes[i+1:]...)
			log.Debugw("class unregistered", "name", c.Name)
			return true
		}
	}
	return false
}

// Local returns the class at index 0.
func (r *Registry) Local() *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[0]
}

// ByPrefix tries to find the class which is responsible for the given token. The first matching class is
// returned or nil if nothing matches. The local class is never considered.
func (r *Registry) ByPrefix(token string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.classes[1:] {
		if c.Match(token) {
			return c
		}
	}
	return nil
}

// ByName returns the first class with exactly the given name or nil.
func (r *Registry) ByName(name string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Classes returns a snapshot of all classes in registration order.
func (r *Registry) Classes() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmp := make([]*Class, len(r.classes))
	copy(tmp, r.classes)
	return tmp
}

// Len returns the number of registered classes including the local class.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
