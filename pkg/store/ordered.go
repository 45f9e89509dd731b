package store

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// OrderedMap is a string-keyed map that remembers first-insertion order.
// It encodes as a JSON object with keys in that order and decodes objects
// keeping the order found in the source document.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Entry is a key/value pair of an OrderedMap
type Entry[V any] struct {
	Key   string
	Value V
}

// NewOrderedMap returns an empty map
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Get returns the value stored under key
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. Existing keys keep their position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, shifting later keys down. It reports whether key was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of keys
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the pairs in insertion order
func (m *OrderedMap[V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry[V]{Key: k, Value: m.values[k]})
	}
	return out
}

// MarshalJSON writes the map as an object in insertion order
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping the source key order
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json document")
	}

	*m = OrderedMap[V]{values: make(map[string]V)}

	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		return nil
	}
	if !root.IsObject() {
		return fmt.Errorf("expected json object, got %s", root.Type)
	}

	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		var v V
		if err := json.Unmarshal([]byte(value.Raw), &v); err != nil {
			decodeErr = fmt.Errorf("decoding %q: %w", key.String(), err)
			return false
		}
		m.Set(key.String(), v)
		return true
	})
	return decodeErr
}
