package registry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InputMap holds the collected values for one invocation, in field order.
// Its JSON encoding is the single argument handed to a tool.
type InputMap struct {
	values *orderedmap.OrderedMap[string, any]
}

// NewInputMap returns an empty InputMap.
func NewInputMap() *InputMap {
	return &InputMap{values: orderedmap.New[string, any]()}
}

// Set stores v under name. Re-setting a name keeps its original position.
func (m *InputMap) Set(name string, v any) {
	m.values.Set(name, v)
}

func (m *InputMap) Get(name string) (any, bool) {
	return m.values.Get(name)
}

func (m *InputMap) Len() int {
	return m.values.Len()
}

// Keys returns the field names in insertion order.
func (m *InputMap) Keys() []string {
	keys := make([]string, 0, m.values.Len())
	for pair := m.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every entry in insertion order.
func (m *InputMap) Each(fn func(name string, v any)) {
	for pair := m.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the map as a JSON object preserving field order.
func (m *InputMap) MarshalJSON() ([]byte, error) {
	return m.values.MarshalJSON()
}
