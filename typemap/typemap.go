// Package typemap translates between canonical value-shape schemas and Go
// type expressions. The forward direction picks the narrowest Go type a
// schema admits; the inverse recovers a schema from a type expression the
// parsers encounter in existing source.
//
// The two directions are designed to agree: for every expression the forward
// mapping can emit, the inverse reconstructs a schema that maps forward to
// the same expression. The inverse is lossy beyond that subset; constraints,
// enums, and composition never survive a trip through a bare type expression
// and are carried in doc tags instead.
package typemap

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/restitch/restitch/internal/naming"
	"github.com/restitch/restitch/spec"
)

// GoType maps a schema to the Go type expression used for it at declaration
// and call sites. Nullability is not rendered here; callers prefix "*" when
// the use site is nullable. A nil schema maps to "any".
func GoType(s *spec.Schema, components *spec.Components) string {
	if s == nil {
		return "any"
	}
	if s.Bool != nil {
		if *s.Bool {
			return "any"
		}
		return "struct{}"
	}
	if s.Ref != "" {
		return naming.ToPascalCase(spec.ResolveRefToType(s.Ref))
	}

	switch s.PrimaryType() {
	case "string":
		if s.ContentEncoding != "" || s.ContentMediaType != "" {
			return "[]byte"
		}
		switch s.Format {
		case "date-time", "date":
			return "time.Time"
		case "byte", "binary":
			return "[]byte"
		}
		return "string"
	case "integer":
		if s.Format == "int64" {
			return "int64"
		}
		return "int32"
	case "number":
		if s.Format == "float" {
			return "float32"
		}
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		if s.Items == nil {
			return "[]any"
		}
		return "[]" + GoType(s.Items, components)
	case "object":
		if ap := s.AdditionalPropertiesSchema(); ap != nil && s.Properties.Len() == 0 {
			return "map[string]" + GoType(ap, components)
		}
		if s.Name != "" {
			return naming.ToPascalCase(s.Name)
		}
		return "any"
	case "":
		if len(s.Types) == 0 && !s.Nullable() {
			return "string"
		}
		return "any"
	default:
		return "any"
	}
}

// scalarSchemas is the inverse of the forward primitive table.
var scalarSchemas = map[string]func() *spec.Schema{
	"string":    func() *spec.Schema { return &spec.Schema{Types: []string{"string"}} },
	"bool":      func() *spec.Schema { return &spec.Schema{Types: []string{"boolean"}} },
	"int32":     func() *spec.Schema { return &spec.Schema{Types: []string{"integer"}, Format: "int32"} },
	"int64":     func() *spec.Schema { return &spec.Schema{Types: []string{"integer"}, Format: "int64"} },
	"int":       func() *spec.Schema { return &spec.Schema{Types: []string{"integer"}} },
	"float32":   func() *spec.Schema { return &spec.Schema{Types: []string{"number"}, Format: "float"} },
	"float64":   func() *spec.Schema { return &spec.Schema{Types: []string{"number"}} },
	"time.Time": func() *spec.Schema { return &spec.Schema{Types: []string{"string"}, Format: "date-time"} },
	"any":       func() *spec.Schema { return &spec.Schema{} },
	"struct{}": func() *spec.Schema {
		f := false
		return &spec.Schema{Bool: &f}
	},
}

// SchemaForTypeExpr recovers a schema from a Go type expression. A leading
// "*" adds "null" to the type set. Unrecognized exported identifiers become
// component references; everything else falls back to a string schema.
func SchemaForTypeExpr(expr string) *spec.Schema {
	expr = strings.TrimSpace(expr)

	nullable := false
	if strings.HasPrefix(expr, "*") {
		nullable = true
		expr = strings.TrimSpace(strings.TrimPrefix(expr, "*"))
	}

	s := schemaForBareExpr(expr)
	if nullable && s.Ref == "" && s.Bool == nil {
		s.Types = append(s.Types, "null")
	}
	return s
}

func schemaForBareExpr(expr string) *spec.Schema {
	if expr == "[]byte" {
		return &spec.Schema{Types: []string{"string"}, Format: "byte"}
	}
	if rest, ok := strings.CutPrefix(expr, "[]"); ok {
		return &spec.Schema{
			Types: []string{"array"},
			Items: SchemaForTypeExpr(rest),
		}
	}
	if rest, ok := strings.CutPrefix(expr, "map[string]"); ok {
		return &spec.Schema{
			Types:                []string{"object"},
			AdditionalProperties: SchemaForTypeExpr(rest),
		}
	}
	if build, ok := scalarSchemas[expr]; ok {
		return build()
	}
	if isExportedIdent(expr) {
		return &spec.Schema{Ref: "#/components/schemas/" + expr}
	}
	return &spec.Schema{Types: []string{"string"}}
}

func isExportedIdent(expr string) bool {
	first, _ := utf8.DecodeRuneInString(expr)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, r := range expr {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
