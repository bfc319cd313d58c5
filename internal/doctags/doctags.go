// Package doctags implements the @tag side channel embedded in generated doc
// comments.
//
// Every schema or endpoint facet without a first-class Go representation is
// rendered as one tag line of the form:
//
//	@tagName value
//
// with exactly one tag per line. The value is either a bare literal, a
// double-quoted Go string (used whenever the literal contains newlines,
// surrounding whitespace, or itself begins with a double quote), or
// single-line JSON for structured data. Both the
// generator and the parser use this package, so the grammar round-trips
// deterministically.
package doctags

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Tag is one parsed @tagName value pair.
type Tag struct {
	Name  string
	Value string
}

// Encode renders a tag line (without comment markers). Values containing
// newlines or surrounding whitespace are quoted so the line stays single-line.
func Encode(name, value string) string {
	if value == "" {
		return "@" + name
	}
	return "@" + name + " " + escapeValue(value)
}

// EncodeJSON renders a tag line whose value is the compact JSON encoding of v.
// Map keys are emitted in sorted order by encoding/json, keeping output
// deterministic.
func EncodeJSON(name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return "@" + name + " " + string(data), nil
}

// escapeValue quotes values that would break the one-line grammar. Values
// beginning with a double quote are also quoted, so decode never mistakes a
// literal quoted string for an escaped one.
func escapeValue(s string) string {
	if strings.ContainsAny(s, "\n\r") || s != strings.TrimSpace(s) || strings.HasPrefix(s, `"`) {
		return strconv.Quote(s)
	}
	return s
}

// DecodeValue reverses escapeValue: quoted values are unquoted, everything
// else is returned as-is.
func DecodeValue(s string) string {
	if len(s) >= 2 && s[0] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}

// DecodeJSONValue unmarshals a structured tag value into target.
func DecodeJSONValue(value string, target any) error {
	return json.Unmarshal([]byte(value), target)
}

// ParseLine parses a single doc comment line into a tag. The line may carry a
// leading "//" marker. Returns false when the line is not a tag line.
func ParseLine(line string) (Tag, bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "@") || len(line) < 2 {
		return Tag{}, false
	}
	body := line[1:]
	name := body
	value := ""
	if i := strings.IndexByte(body, ' '); i >= 0 {
		name = body[:i]
		value = strings.TrimSpace(body[i+1:])
	}
	if name == "" {
		return Tag{}, false
	}
	return Tag{Name: name, Value: value}, true
}

// Extract collects all tags from a doc comment text, preserving their order
// of appearance. Non-tag lines are ignored.
func Extract(doc string) []Tag {
	var tags []Tag
	for _, line := range strings.Split(doc, "\n") {
		if tag, ok := ParseLine(line); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// First returns the value of the first tag with the given name, and whether
// it was present.
func First(tags []Tag, name string) (string, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// All returns the values of every tag with the given name, in order.
func All(tags []Tag, name string) []string {
	var values []string
	for _, t := range tags {
		if t.Name == name {
			values = append(values, t.Value)
		}
	}
	return values
}
