package spec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// schemaAlias drops Schema's codec methods so the hooks below can delegate
// to stock struct decoding without recursing.
type schemaAlias Schema

// UnmarshalJSON accepts the two shapes the stock decoding cannot: boolean
// schemas, and a bare string in the type field. additionalProperties is
// normalized to *Schema or bool.
func (s *Schema) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if b, isBool := boolLiteral(trimmed); isBool {
		*s = Schema{Bool: &b}
		return nil
	}
	aux := struct {
		Types    any             `json:"type"`
		AddProps json.RawMessage `json:"additionalProperties"`
		*schemaAlias
	}{schemaAlias: (*schemaAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	types, err := typeSet(aux.Types)
	if err != nil {
		return err
	}
	s.Types = types
	s.AdditionalProperties = nil
	if len(aux.AddProps) > 0 {
		if b, isBool := boolLiteral(bytes.TrimSpace(aux.AddProps)); isBool {
			s.AdditionalProperties = b
		} else {
			sub := &Schema{}
			if err := json.Unmarshal(aux.AddProps, sub); err != nil {
				return err
			}
			s.AdditionalProperties = sub
		}
	}
	return nil
}

// MarshalJSON emits boolean schemas as bare booleans.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Bool != nil {
		return json.Marshal(*s.Bool)
	}
	return json.Marshal((*schemaAlias)(s))
}

// UnmarshalYAML accepts boolean schemas and a scalar type field.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("spec: schema node must be a mapping or boolean: %w", err)
		}
		*s = Schema{Bool: &b}
		return nil
	}
	normalizeTypeNode(node)
	if err := node.Decode((*schemaAlias)(s)); err != nil {
		return err
	}
	return s.normalizeAdditionalProps(node)
}

// MarshalYAML emits boolean schemas as bare booleans.
func (s *Schema) MarshalYAML() (any, error) {
	if s.Bool != nil {
		return *s.Bool, nil
	}
	return (*schemaAlias)(s), nil
}

// normalizeTypeNode rewrites a scalar type value into a one-element sequence
// so it decodes into the type set.
func normalizeTypeNode(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "type" {
			continue
		}
		if v := node.Content[i+1]; v.Kind == yaml.ScalarNode {
			node.Content[i+1] = &yaml.Node{
				Kind:    yaml.SequenceNode,
				Tag:     "!!seq",
				Content: []*yaml.Node{v},
			}
		}
		return
	}
}

// normalizeAdditionalProps re-decodes the additionalProperties value, which
// stock decoding leaves as a generic map, into *Schema or bool.
func (s *Schema) normalizeAdditionalProps(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "additionalProperties" {
			continue
		}
		v := node.Content[i+1]
		if v.Kind == yaml.ScalarNode {
			var b bool
			if err := v.Decode(&b); err != nil {
				return fmt.Errorf("spec: additionalProperties must be a schema or boolean: %w", err)
			}
			s.AdditionalProperties = b
			return nil
		}
		sub := &Schema{}
		if err := sub.UnmarshalYAML(v); err != nil {
			return err
		}
		s.AdditionalProperties = sub
		return nil
	}
	return nil
}

func boolLiteral(data []byte) (value, isBool bool) {
	switch string(data) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func typeSet(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, member := range t {
			str, ok := member.(string)
			if !ok {
				return nil, fmt.Errorf("spec: type set member %v is not a string", member)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("spec: type must be a string or list of strings, got %T", v)
	}
}
