package config

import (
	om "github.com/wk8/go-ordered-map/v2"
)

// PathSet is an insertion-ordered set of paths.
type PathSet struct {
	items *om.OrderedMap[string, struct{}]
}

// NewPathSet creates a set holding items in order, duplicates dropped.
func NewPathSet(items ...string) *PathSet {
	s := &PathSet{items: om.New[string, struct{}](len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends p unless present. It reports whether p was added.
func (s *PathSet) Add(p string) bool {
	_, present := s.items.Set(p, struct{}{})
	return !present
}

// Contains reports membership.
func (s *PathSet) Contains(p string) bool {
	_, ok := s.items.Get(p)
	return ok
}

// Items returns a copy of the members in insertion order.
func (s *PathSet) Items() []string {
	out := make([]string, 0, s.items.Len())
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Any reports whether some member satisfies match, stopping at the first.
func (s *PathSet) Any(match func(p string) bool) bool {
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		if match(pair.Key) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *PathSet) Len() int {
	return s.items.Len()
}

// OrderedMap is a string-keyed map that remembers insertion order.
// Overwriting a key keeps its original position.
type OrderedMap[V any] struct {
	pairs *om.OrderedMap[string, V]
}

// NewOrderedMap creates an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{pairs: om.New[string, V]()}
}

// Get returns the value for key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	return m.pairs.Get(key)
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.pairs.Get(key)
	return ok
}

// Set stores value under key.
func (m *OrderedMap[V]) Set(key string, value V) {
	m.pairs.Set(key, value)
}

// Delete removes key. It reports whether key was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	_, present := m.pairs.Delete(key)
	return present
}

// MoveToEnd re-inserts key after every other key. Missing keys are ignored.
func (m *OrderedMap[V]) MoveToEnd(key string) {
	_ = m.pairs.MoveToBack(key)
}

// Keys returns the keys in order.
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, m.pairs.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	return m.pairs.Len()
}
