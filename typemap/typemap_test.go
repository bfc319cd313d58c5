package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/spec"
)

func boolPtr(b bool) *bool { return &b }

func TestGoType(t *testing.T) {
	tests := []struct {
		name   string
		schema *spec.Schema
		want   string
	}{
		{"nil schema", nil, "any"},
		{"boolean true", &spec.Schema{Bool: boolPtr(true)}, "any"},
		{"boolean false", &spec.Schema{Bool: boolPtr(false)}, "struct{}"},
		{"local ref", &spec.Schema{Ref: "#/components/schemas/Pet"}, "Pet"},
		{"ref with kebab name", &spec.Schema{Ref: "#/components/schemas/order-item"}, "OrderItem"},
		{"file ref", &spec.Schema{Ref: "common/address.yaml"}, "Address"},
		{"plain string", &spec.Schema{Types: []string{"string"}}, "string"},
		{"date-time", &spec.Schema{Types: []string{"string"}, Format: "date-time"}, "time.Time"},
		{"date", &spec.Schema{Types: []string{"string"}, Format: "date"}, "time.Time"},
		{"byte format", &spec.Schema{Types: []string{"string"}, Format: "byte"}, "[]byte"},
		{"binary format", &spec.Schema{Types: []string{"string"}, Format: "binary"}, "[]byte"},
		{"content encoding", &spec.Schema{Types: []string{"string"}, ContentEncoding: "base64"}, "[]byte"},
		{"content media type", &spec.Schema{Types: []string{"string"}, ContentMediaType: "image/png"}, "[]byte"},
		{"integer default", &spec.Schema{Types: []string{"integer"}}, "int32"},
		{"integer int64", &spec.Schema{Types: []string{"integer"}, Format: "int64"}, "int64"},
		{"number default", &spec.Schema{Types: []string{"number"}}, "float64"},
		{"number float", &spec.Schema{Types: []string{"number"}, Format: "float"}, "float32"},
		{"boolean type", &spec.Schema{Types: []string{"boolean"}}, "bool"},
		{"array of string", &spec.Schema{
			Types: []string{"array"},
			Items: &spec.Schema{Types: []string{"string"}},
		}, "[]string"},
		{"array without items", &spec.Schema{Types: []string{"array"}}, "[]any"},
		{"string map", &spec.Schema{
			Types:                []string{"object"},
			AdditionalProperties: &spec.Schema{Types: []string{"integer"}, Format: "int64"},
		}, "map[string]int64"},
		{"named object", &spec.Schema{Name: "Pet", Types: []string{"object"}}, "Pet"},
		{"anonymous object", &spec.Schema{Types: []string{"object"}}, "any"},
		{"empty type set", &spec.Schema{}, "string"},
		{"null only", &spec.Schema{Types: []string{"null"}}, "any"},
		{"nullable string ignores null member", &spec.Schema{Types: []string{"string", "null"}}, "string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GoType(tt.schema, nil))
		})
	}
}

func TestGoType_NestedArrays(t *testing.T) {
	s := &spec.Schema{
		Types: []string{"array"},
		Items: &spec.Schema{
			Types: []string{"array"},
			Items: &spec.Schema{Ref: "#/components/schemas/Tag"},
		},
	}
	assert.Equal(t, "[][]Tag", GoType(s, nil))
}

func TestGoType_MapOnlyWithoutProperties(t *testing.T) {
	props := spec.NewProperties()
	props.Set("id", &spec.Schema{Types: []string{"string"}})
	s := &spec.Schema{
		Name:                 "Mixed",
		Types:                []string{"object"},
		Properties:           props,
		AdditionalProperties: &spec.Schema{Types: []string{"string"}},
	}
	assert.Equal(t, "Mixed", GoType(s, nil), "declared properties keep the nominal form")
}

func TestSchemaForTypeExpr_Scalars(t *testing.T) {
	tests := []struct {
		expr       string
		wantTypes  []string
		wantFormat string
	}{
		{"string", []string{"string"}, ""},
		{"bool", []string{"boolean"}, ""},
		{"int32", []string{"integer"}, "int32"},
		{"int64", []string{"integer"}, "int64"},
		{"int", []string{"integer"}, ""},
		{"float32", []string{"number"}, "float"},
		{"float64", []string{"number"}, ""},
		{"time.Time", []string{"string"}, "date-time"},
		{"[]byte", []string{"string"}, "byte"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s := SchemaForTypeExpr(tt.expr)
			assert.Equal(t, tt.wantTypes, s.Types)
			assert.Equal(t, tt.wantFormat, s.Format)
		})
	}
}

func TestSchemaForTypeExpr_Nullable(t *testing.T) {
	s := SchemaForTypeExpr("*string")
	assert.Equal(t, []string{"string", "null"}, s.Types)

	s = SchemaForTypeExpr("*[]int64")
	assert.Equal(t, []string{"array", "null"}, s.Types)
	require.NotNil(t, s.Items)
	assert.Equal(t, []string{"integer"}, s.Items.Types)
}

func TestSchemaForTypeExpr_Composite(t *testing.T) {
	s := SchemaForTypeExpr("[]string")
	assert.Equal(t, []string{"array"}, s.Types)
	require.NotNil(t, s.Items)
	assert.Equal(t, []string{"string"}, s.Items.Types)

	s = SchemaForTypeExpr("map[string]float64")
	assert.Equal(t, []string{"object"}, s.Types)
	sub, ok := s.AdditionalProperties.(*spec.Schema)
	require.True(t, ok)
	assert.Equal(t, []string{"number"}, sub.Types)

	s = SchemaForTypeExpr("map[string][]Pet")
	sub, ok = s.AdditionalProperties.(*spec.Schema)
	require.True(t, ok)
	assert.Equal(t, []string{"array"}, sub.Types)
	assert.Equal(t, "#/components/schemas/Pet", sub.Items.Ref)
}

func TestSchemaForTypeExpr_References(t *testing.T) {
	s := SchemaForTypeExpr("Pet")
	assert.Equal(t, "#/components/schemas/Pet", s.Ref)

	s = SchemaForTypeExpr("*Pet")
	assert.Equal(t, "#/components/schemas/Pet", s.Ref)
	assert.Empty(t, s.Types, "nullability is not expressible on a bare reference")
}

func TestSchemaForTypeExpr_Fallback(t *testing.T) {
	for _, expr := range []string{"chan int", "func()", "pkg.Thing", "lower"} {
		t.Run(expr, func(t *testing.T) {
			s := SchemaForTypeExpr(expr)
			assert.Equal(t, []string{"string"}, s.Types)
		})
	}
}

func TestSchemaForTypeExpr_Unit(t *testing.T) {
	s := SchemaForTypeExpr("struct{}")
	require.NotNil(t, s.Bool)
	assert.False(t, *s.Bool)

	s = SchemaForTypeExpr("any")
	assert.Nil(t, s.Bool)
	assert.Empty(t, s.Types)
	assert.Empty(t, s.Ref)
}

func TestRoundTrip_ForwardThenInverse(t *testing.T) {
	exprs := []string{
		"string", "bool", "int32", "int64", "float32", "float64",
		"time.Time", "[]byte", "[]string", "map[string]int64",
		"*string", "*[]time.Time",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			s := SchemaForTypeExpr(expr)
			got := GoType(s, nil)
			if s.Nullable() {
				got = "*" + got
			}
			assert.Equal(t, expr, got)
		})
	}
}
