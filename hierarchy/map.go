package hierarchy

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/markdata/element"
)

type entry struct {
	key   string
	value any
}

// Map is an insertion-ordered string map. Values are nested *Map frames,
// elements, or plain values; marshaling preserves insertion order and
// serializes elements by their payload.
type Map struct {
	entries []entry
	index   map[string]int
}

func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Set inserts key, or replaces the value in place when the key already
// exists, keeping its original position.
func (m *Map) Set(key string, value any) {
	if i, ok := m.index[key]; ok {
		m.entries[i].value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, value: value})
}

// Get returns the value for key, or nil and false if absent.
func (m *Map) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].value, true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

func (m *Map) Len() int { return len(m.entries) }

// MarshalJSON writes the map as an ordered JSON object. The compact bytes
// re-indent cleanly under json.MarshalIndent.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(jsonValue(e.value))
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(v any) any {
	if el, ok := v.(element.Element); ok {
		return element.JSONPayload(el)
	}
	return v
}

// MarshalYAML builds an explicit mapping node so key order survives; the
// yaml package would otherwise sort map keys.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m.entries {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}
		valNode, err := yamlValue(e.value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Map:
		inner, err := t.MarshalYAML()
		if err != nil {
			return nil, err
		}
		return inner.(*yaml.Node), nil
	case element.Element:
		return element.YAMLPayload(t)
	default:
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return &node, nil
	}
}
