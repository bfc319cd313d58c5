package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestProperties_Order(t *testing.T) {
	p := NewProperties()
	p.Set("zebra", &Schema{Types: []string{"string"}})
	p.Set("apple", &Schema{Types: []string{"integer"}})
	p.Set("mango", &Schema{Types: []string{"boolean"}})

	assert.Equal(t, []string{"zebra", "apple", "mango"}, p.Keys(), "declaration order, not sorted")
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Has("apple"))
	assert.False(t, p.Has("pear"))
}

func TestProperties_SetReplacesInPlace(t *testing.T) {
	p := NewProperties()
	p.Set("a", &Schema{Types: []string{"string"}})
	p.Set("b", &Schema{Types: []string{"string"}})
	p.Set("a", &Schema{Types: []string{"integer"}})

	assert.Equal(t, []string{"a", "b"}, p.Keys())
	assert.Equal(t, []string{"integer"}, p.Get("a").Types)
}

func TestProperties_NilSafety(t *testing.T) {
	var p *Properties
	assert.Zero(t, p.Len())
	assert.Nil(t, p.Get("x"))
	assert.False(t, p.Has("x"))
	assert.Nil(t, p.Keys())
}

func TestProperties_JSONRoundTrip(t *testing.T) {
	p := NewProperties()
	p.Set("name", &Schema{Types: []string{"string"}})
	p.Set("age", &Schema{Types: []string{"integer"}, Format: "int32"})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"name":{"type":["string"]},"age":{"type":["integer"],"format":"int32"}}`, string(data))

	var decoded Properties
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"name", "age"}, decoded.Keys())
	assert.Equal(t, "int32", decoded.Get("age").Format)
}

func TestProperties_JSONDuplicateKey(t *testing.T) {
	var p Properties
	err := json.Unmarshal([]byte(`{"a":{"type":["string"]},"a":{"type":["integer"]}}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestProperties_YAMLRoundTrip(t *testing.T) {
	src := "zulu:\n  type: [string]\nalpha:\n  type: [integer]\n"

	var p Properties
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))
	assert.Equal(t, []string{"zulu", "alpha"}, p.Keys(), "YAML key order survives decoding")

	out, err := yaml.Marshal(&p)
	require.NoError(t, err)

	var again Properties
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, p.Keys(), again.Keys())
}
