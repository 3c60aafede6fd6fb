package redis

import (
	"iter"
	"maps"
	"slices"
)

// SortedMap is a read-only string-keyed map iterated in ascending key order.
type SortedMap[T any] struct {
	keys   []string
	values map[string]T
}

func newSortedMap[T any](values map[string]T) *SortedMap[T] {
	if values == nil {
		values = make(map[string]T)
	}
	return &SortedMap[T]{
		keys:   slices.Sorted(maps.Keys(values)),
		values: values,
	}
}

// Len returns the number of entries.
func (m *SortedMap[T]) Len() int {
	return len(m.keys)
}

// Get returns the value for key and whether it was present.
func (m *SortedMap[T]) Get(key string) (T, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in ascending order. The slice is a copy.
func (m *SortedMap[T]) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates entries in ascending key order.
func (m *SortedMap[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the entries as a plain map.
func (m *SortedMap[T]) Map() map[string]T {
	return maps.Clone(m.values)
}
