package collections

import (
	"slices"
	"sync"
)

// --------------------------------------------------------------------------
// Lockable Map
// --------------------------------------------------------------------------

// LockableMap is a map where every method call is mutually exclusive.
// It behaves like a plain Go map otherwise (no ordering guarantees).
// Use Locked for compound read-modify-write operations.
type LockableMap[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K]V
}

// NewLockableMap creates an empty LockableMap.
func NewLockableMap[K comparable, V any]() *LockableMap[K, V] {
	return &LockableMap[K, V]{data: make(map[K]V)}
}

// Get returns the value for key.
func (m *LockableMap[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key.
func (m *LockableMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// SetDefault stores value under key if the key is missing and returns the stored value.
func (m *LockableMap[K, V]) SetDefault(key K, value V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v
	}
	m.data[key] = value
	return value
}

// Delete removes key.
func (m *LockableMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Pop removes key and returns its value.
func (m *LockableMap[K, V]) Pop(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	delete(m.data, key)
	return v, ok
}

// Has reports whether key is present.
func (m *LockableMap[K, V]) Has(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Len returns the number of entries.
func (m *LockableMap[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Keys returns a snapshot of the keys.
func (m *LockableMap[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a copy of the map.
func (m *LockableMap[K, V]) Snapshot() map[K]V {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make(map[K]V, len(m.data))
	for k, v := range m.data {
		c[k] = v
	}
	return c
}

// Clear removes all entries.
func (m *LockableMap[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
}

// Locked runs fn with exclusive access to the underlying map.
// fn must not retain the map or call other methods of m.
func (m *LockableMap[K, V]) Locked(fn func(data map[K]V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.data)
}

// --------------------------------------------------------------------------
// Lockable List
// --------------------------------------------------------------------------

// LockableList is a slice-backed list where every method call is mutually exclusive.
type LockableList[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewLockableList creates a list holding a copy of items.
func NewLockableList[T any](items ...T) *LockableList[T] {
	return &LockableList[T]{items: slices.Clone(items)}
}

// Append adds items to the end of the list.
func (l *LockableList[T]) Append(items ...T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, items...)
}

// Get returns the item at index i.
func (l *LockableList[T]) Get(i int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Set replaces the item at index i. It reports whether i was in range.
func (l *LockableList[T]) Set(i int, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// Pop removes and returns the last item.
func (l *LockableList[T]) Pop() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	v := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// RemoveAt removes and returns the item at index i.
func (l *LockableList[T]) RemoveAt(i int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v, true
}

// Len returns the number of items.
func (l *LockableList[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Snapshot returns a copy of the items.
func (l *LockableList[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Clear removes all items.
func (l *LockableList[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Locked runs fn with exclusive access to the items. The returned slice replaces the items.
func (l *LockableList[T]) Locked(fn func(items []T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = fn(l.items)
}
