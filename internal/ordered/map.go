// Package ordered provides an insertion-ordered map keyed by string.
//
// Catalog groups, group products and shopping-list entries are addressed by
// 1-based position as well as by name, so iteration order must be stable and
// survive renames.
package ordered

// Map is a string-keyed map that remembers insertion order.
// The zero value is ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New constructs an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Len reports the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. New keys are appended to the end; existing
// keys keep their position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	if m == nil || m.values == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	idx := m.index(key)
	m.keys = append(m.keys[:idx], m.keys[idx+1:]...)
	return true
}

// Rename moves the value stored under from to to, keeping its position.
// It returns false when from is missing or to is already taken.
func (m *Map[V]) Rename(from, to string) bool {
	if m == nil || m.values == nil {
		return false
	}
	v, ok := m.values[from]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	if _, taken := m.values[to]; taken {
		return false
	}
	delete(m.values, from)
	m.values[to] = v
	m.keys[m.index(from)] = to
	return true
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// At returns the key at the 1-based position n.
func (m *Map[V]) At(n int) (string, bool) {
	if m == nil || n < 1 || n > len(m.keys) {
		return "", false
	}
	return m.keys[n-1], true
}

// Range calls fn for every entry in order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func (m *Map[V]) index(key string) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}
