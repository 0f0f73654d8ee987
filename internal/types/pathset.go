// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import (
	"github.com/elliotchance/orderedmap/v2"
)

// PathSet is a deduplicated set of file paths that remembers insertion order.
// The zero value is not usable; create one with NewPathSet.
type PathSet struct {
	entries *orderedmap.OrderedMap[string, struct{}]
}

// NewPathSet returns a set holding the given paths in order, duplicates dropped.
func NewPathSet(paths ...string) *PathSet {
	s := &PathSet{entries: orderedmap.NewOrderedMap[string, struct{}]()}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts path and reports whether it was not already present.
func (s *PathSet) Add(path string) bool {
	if _, exists := s.entries.Get(path); exists {
		return false
	}
	s.entries.Set(path, struct{}{})
	return true
}

// Has reports whether path is in the set.
func (s *PathSet) Has(path string) bool {
	if s == nil {
		return false
	}
	_, exists := s.entries.Get(path)
	return exists
}

// Len returns the number of distinct paths.
func (s *PathSet) Len() int {
	if s == nil {
		return 0
	}
	return s.entries.Len()
}

// Paths returns the paths in insertion order.
func (s *PathSet) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, s.entries.Len())
	for el := s.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Map returns a new set with fn applied to every path. Paths that collapse to
// the same value after mapping are kept once, at the first position.
func (s *PathSet) Map(fn func(string) string) *PathSet {
	out := NewPathSet()
	for _, p := range s.Paths() {
		out.Add(fn(p))
	}
	return out
}
