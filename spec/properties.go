package spec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Properties is an ordered name→Schema map for object properties. Keys are
// unique; setting an existing key replaces its schema in place, preserving
// the original position. Iteration order is declaration order, which keeps
// generated field order deterministic.
type Properties struct {
	keys    []string
	schemas map[string]*Schema
}

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties {
	return &Properties{schemas: make(map[string]*Schema)}
}

// Set adds or replaces the schema for name.
func (p *Properties) Set(name string, schema *Schema) {
	if p.schemas == nil {
		p.schemas = make(map[string]*Schema)
	}
	if _, exists := p.schemas[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.schemas[name] = schema
}

// Get returns the schema for name, or nil when absent.
func (p *Properties) Get(name string) *Schema {
	if p == nil {
		return nil
	}
	return p.schemas[name]
}

// Has reports whether name is present.
func (p *Properties) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.schemas[name]
	return ok
}

// Len returns the number of properties. Safe on a nil receiver.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property names in declaration order. The returned slice
// must not be mutated.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

// MarshalYAML emits the properties as a mapping node in declaration order.
func (p *Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range p.Keys() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(p.schemas[key]); err != nil {
			return nil, fmt.Errorf("encode property %q: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node, preserving key order and rejecting
// duplicate keys.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping node, got %v", value.Kind)
	}
	p.keys = nil
	p.schemas = make(map[string]*Schema, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if _, dup := p.schemas[key]; dup {
			return fmt.Errorf("properties: duplicate key %q", key)
		}
		var schema Schema
		if err := value.Content[i+1].Decode(&schema); err != nil {
			return fmt.Errorf("properties: decode %q: %w", key, err)
		}
		p.keys = append(p.keys, key)
		p.schemas[key] = &schema
	}
	return nil
}

// MarshalJSON emits the properties as a JSON object in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		valueData, err := json.Marshal(p.schemas[key])
		if err != nil {
			return nil, fmt.Errorf("encode property %q: %w", key, err)
		}
		buf.Write(valueData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected JSON object")
	}
	p.keys = nil
	p.schemas = make(map[string]*Schema)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		if _, dup := p.schemas[key]; dup {
			return fmt.Errorf("properties: duplicate key %q", key)
		}
		var schema Schema
		if err := dec.Decode(&schema); err != nil {
			return fmt.Errorf("properties: decode %q: %w", key, err)
		}
		p.keys = append(p.keys, key)
		p.schemas[key] = &schema
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
