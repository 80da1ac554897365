package unsolveddomain

import "iter"

// OrderedMap is a map that iterates in key insertion order. Overwriting an
// existing key keeps its original position. The zero value is ready to use.
type OrderedMap[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{vals: make(map[K]V)}
}

func (m *OrderedMap[K, V]) Set(key K, val V) {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, ok := m.vals[key]
	return val, ok
}

func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.vals[key]
	return ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the values in key insertion order. Never nil.
func (m *OrderedMap[K, V]) Values() []V {
	vals := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		vals = append(vals, m.vals[k])
	}
	return vals
}

// All iterates over key-value pairs in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}
