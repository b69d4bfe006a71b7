// Package dirset provides a set of directory paths keyed by their cleaned,
// absolute form, so "/nas/a/", "/nas/./a" and "/nas/a" are the same member.
package dirset

import (
	"path/filepath"
	"sort"
)

// Set is a set of directory paths. The zero value is not usable; call New.
type Set struct {
	members map[string]struct{}
}

// New returns a set holding the given paths.
func New(paths ...string) *Set {
	s := &Set{members: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Key returns the canonical representation used for membership.
// Relative paths are made absolute against the working directory.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Add inserts path and reports whether it was not already present.
func (s *Set) Add(path string) bool {
	k := Key(path)
	if _, ok := s.members[k]; ok {
		return false
	}
	s.members[k] = struct{}{}
	return true
}

// Has reports whether path is a member.
func (s *Set) Has(path string) bool {
	_, ok := s.members[Key(path)]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Difference returns the members of s that are not in other.
func (s *Set) Difference(other *Set) *Set {
	out := New()
	for k := range s.members {
		if other == nil || !other.has(k) {
			out.members[k] = struct{}{}
		}
	}
	return out
}

// Union returns a set with the members of both s and other.
func (s *Set) Union(other *Set) *Set {
	out := New()
	for k := range s.members {
		out.members[k] = struct{}{}
	}
	if other != nil {
		for k := range other.members {
			out.members[k] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.members))
	for k := range s.members {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Set) has(key string) bool {
	_, ok := s.members[key]
	return ok
}
