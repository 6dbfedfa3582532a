package service

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string-keyed map that remembers insertion order and keeps
// it when encoded as a JSON object.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: map[string]V{}}
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores v under key; an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MapOrdered returns a map with the keys of m in the same order and each
// value passed through fn. A nil m maps to nil.
func MapOrdered[V, W any](m *OrderedMap[V], fn func(V) W) *OrderedMap[W] {
	if m == nil {
		return nil
	}
	out := NewOrderedMap[W]()
	for _, key := range m.keys {
		out.Set(key, fn(m.values[key]))
	}
	return out
}

// child returns the nested map under key, creating it on first use.
func child[V any](m *OrderedMap[*OrderedMap[V]], key string) *OrderedMap[V] {
	if c, ok := m.Get(key); ok {
		return c
	}
	c := NewOrderedMap[V]()
	m.Set(key, c)
	return c
}
