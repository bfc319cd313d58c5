package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestSchemaJSONScalarType(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"string","format":"uuid"}`), &s))
	assert.Equal(t, []string{"string"}, s.Types)
	assert.Equal(t, "uuid", s.Format)
}

func TestSchemaJSONTypeList(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":["string","null"]}`), &s))
	assert.Equal(t, []string{"string", "null"}, s.Types)

	require.Error(t, json.Unmarshal([]byte(`{"type":[1]}`), &s))
	require.Error(t, json.Unmarshal([]byte(`{"type":{"bad":true}}`), &s))
}

func TestSchemaJSONBooleanForms(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`true`), &s))
	require.NotNil(t, s.Bool)
	assert.True(t, *s.Bool)

	data, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.Equal(t, "true", string(data))

	var f Schema
	require.NoError(t, json.Unmarshal([]byte(`false`), &f))
	require.NotNil(t, f.Bool)
	assert.False(t, *f.Bool)
}

func TestSchemaJSONAdditionalProperties(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","additionalProperties":{"type":"integer"}}`), &s))
	sub := s.AdditionalPropertiesSchema()
	require.NotNil(t, sub)
	assert.Equal(t, []string{"integer"}, sub.Types)

	var open Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","additionalProperties":false}`), &open))
	assert.Equal(t, false, open.AdditionalProperties)
	assert.Nil(t, open.AdditionalPropertiesSchema())
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	src := &Schema{
		Types:      []string{"object"},
		Properties: NewProperties(),
		Required:   []string{"id"},
	}
	src.Properties.Set("id", &Schema{Types: []string{"integer"}, Format: "int64"})
	src.AdditionalProperties = &Schema{Types: []string{"string"}}

	data, err := json.Marshal(src)
	require.NoError(t, err)

	var back Schema
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, src.Types, back.Types)
	assert.Equal(t, src.Required, back.Required)
	assert.Equal(t, []string{"id"}, back.Properties.Keys())
	require.NotNil(t, back.AdditionalPropertiesSchema())
}

func TestSchemaYAMLScalarType(t *testing.T) {
	var s Schema
	require.NoError(t, yaml.Unmarshal([]byte("type: integer\nformat: int32\n"), &s))
	assert.Equal(t, []string{"integer"}, s.Types)
	assert.Equal(t, "int32", s.Format)
}

func TestSchemaYAMLBooleanForm(t *testing.T) {
	var holder struct {
		Schema *Schema `yaml:"schema"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("schema: true\n"), &holder))
	require.NotNil(t, holder.Schema)
	require.NotNil(t, holder.Schema.Bool)
	assert.True(t, *holder.Schema.Bool)
}

func TestSchemaYAMLAdditionalProperties(t *testing.T) {
	var s Schema
	require.NoError(t, yaml.Unmarshal([]byte("type: object\nadditionalProperties:\n  type: string\n"), &s))
	sub := s.AdditionalPropertiesSchema()
	require.NotNil(t, sub)
	assert.Equal(t, []string{"string"}, sub.Types)

	var closed Schema
	require.NoError(t, yaml.Unmarshal([]byte("type: object\nadditionalProperties: false\n"), &closed))
	assert.Equal(t, false, closed.AdditionalProperties)
}
