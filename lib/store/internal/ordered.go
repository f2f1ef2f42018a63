package internal

import "slices"

// --------------------------------------------------------------------------
// Ordered Map
// --------------------------------------------------------------------------

// OrderedMap is an insertion-ordered map from string keys to values.
// keys holds the iteration order, index maps each key to its value.
// Replacing the value of an existing key keeps its position.
//
// Thread-safety: OrderedMap is not thread-safe, callers serialize access.
type OrderedMap[V any] struct {
	keys  []string
	index map[string]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		keys:  make([]string, 0),
		index: make(map[string]V),
	}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Get returns the value for key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.index[key]
	return v, ok
}

// Put inserts or replaces key. It returns the previous value and whether the key existed.
func (m *OrderedMap[V]) Put(key string, value V) (prev V, existed bool) {
	prev, existed = m.index[key]
	if !existed {
		m.keys = append(m.keys, key)
	}
	m.index[key] = value
	return prev, existed
}

// Remove deletes key. It returns the removed value, its position and whether the key existed.
func (m *OrderedMap[V]) Remove(key string) (prev V, pos int, existed bool) {
	prev, existed = m.index[key]
	if !existed {
		return prev, -1, false
	}
	pos = slices.Index(m.keys, key)
	m.keys = slices.Delete(m.keys, pos, pos+1)
	delete(m.index, key)
	return prev, pos, true
}

// InsertAt inserts a key that is not present at position pos.
// It is used to undo a Remove without changing the iteration order.
func (m *OrderedMap[V]) InsertAt(pos int, key string, value V) {
	if _, ok := m.index[key]; ok {
		m.index[key] = value
		return
	}
	pos = max(0, min(pos, len(m.keys)))
	m.keys = slices.Insert(m.keys, pos, key)
	m.index[key] = value
}

// Keys returns a copy of the keys in iteration order.
func (m *OrderedMap[V]) Keys() []string {
	return slices.Clone(m.keys)
}

// Values returns a copy of the values in iteration order.
func (m *OrderedMap[V]) Values() []V {
	values := make([]V, len(m.keys))
	for i, k := range m.keys {
		values[i] = m.index[k]
	}
	return values
}

// Range calls fn for each entry in iteration order until fn returns false.
// fn must not modify the map.
func (m *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.index[k]) {
			return
		}
	}
}

// Clone returns an independent copy of the map. Values are copied shallowly.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	c := &OrderedMap[V]{
		keys:  slices.Clone(m.keys),
		index: make(map[string]V, len(m.index)),
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	return c
}
