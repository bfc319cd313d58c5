package generator

import (
	"bytes"
	"fmt"

	"github.com/restitch/restitch/internal/naming"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
	"github.com/restitch/restitch/typemap"
)

// GenerateDto renders one Go declaration for a named schema: a struct, an
// enum with a const block, a closed union interface, or a type alias,
// depending on the schema's shape. Facets the Go type cannot carry are
// emitted as doc tags so a later parse recovers them.
//
// The schema must carry a Name. Output is deterministic and formatted unless
// [WithFormatting] disables the format pass.
func GenerateDto(schema *spec.Schema, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("generator: invalid options: %w", err)
	}
	if schema == nil {
		return "", stitcherrors.Validationf("", "schema", "schema is required")
	}
	if schema.Name == "" {
		return "", stitcherrors.Validationf("", "name", "schema has no name to declare")
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	buf := engine.GetBuffer()
	defer engine.PutBuffer(buf)

	if err := writeDtoDecl(buf, schema, cfg); err != nil {
		return "", err
	}
	if !cfg.format {
		return buf.String(), nil
	}
	formatted, err := engine.FormatFragment(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generator: %w", err)
	}
	cfg.logger.Debug("generated declaration", "name", schema.Name)
	return string(formatted), nil
}

// writeDtoDecl dispatches on the schema shape. Exactly one branch applies;
// the order below fixes precedence when a schema mixes shapes.
func writeDtoDecl(buf *bytes.Buffer, s *spec.Schema, cfg *config) error {
	name := toTypeName(s.Name)

	switch {
	case s.Bool != nil:
		return writeBoolAlias(buf, name, s)
	case s.Ref != "":
		return writeRefAlias(buf, name, s, cfg)
	case len(s.Enum) > 0 && s.PrimaryType() == "string":
		return writeStringEnum(buf, name, s)
	case len(s.Enum) > 0:
		return writeValueEnum(buf, name, s, cfg)
	case len(s.OneOf) > 0:
		return writeUnion(buf, name, s, cfg)
	case len(s.AllOf) > 0:
		return writeStruct(buf, name, s, cfg)
	case s.HasType("object") && s.Properties.Len() == 0 && s.AdditionalPropertiesSchema() != nil:
		return writeMapType(buf, name, s, cfg)
	case s.HasType("object"):
		return writeStruct(buf, name, s, cfg)
	case s.HasType("array"):
		return writeSliceType(buf, name, s, cfg)
	default:
		return writePrimitiveType(buf, name, s, cfg)
	}
}

// writeTypeDoc emits the doc comment for a top-level declaration: a heading
// line carrying a short description, a Deprecated marker when flagged, then
// the facet tag lines.
func writeTypeDoc(buf *bytes.Buffer, name string, s *spec.Schema, skip map[string]bool, extra []string) error {
	tags, err := schemaFacetTags(s, skip)
	if err != nil {
		return fmt.Errorf("generator: encode facets for %s: %w", name, err)
	}
	tags = append(tags, extra...)

	var lines []string
	if s.Description != "" && !needsDescriptionTag(s.Description) {
		lines = append(lines, name+" "+cleanDescription(s.Description))
	}
	if s.Deprecated {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Deprecated: this type is deprecated.")
	}
	if len(tags) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, tags...)
	}
	for _, line := range lines {
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil
}

func writeBoolAlias(buf *bytes.Buffer, name string, s *spec.Schema) error {
	if err := writeTypeDoc(buf, name, s, nil, nil); err != nil {
		return err
	}
	if *s.Bool {
		fmt.Fprintf(buf, "type %s = any\n", name)
	} else {
		fmt.Fprintf(buf, "type %s = struct{}\n", name)
	}
	return nil
}

func writeRefAlias(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	target := toTypeName(spec.ResolveRefToType(s.Ref))
	if err := writeTypeDoc(buf, name, s, nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(buf, "type %s = %s\n", name, target)
	return nil
}

// writeStringEnum emits a defined string type plus one const per literal.
// The const value is the original literal, so serialization never depends on
// the sanitized Go case name.
func writeStringEnum(buf *bytes.Buffer, name string, s *spec.Schema) error {
	skip := map[string]bool{"enum": true}
	if err := writeTypeDoc(buf, name, s, skip, nil); err != nil {
		return err
	}
	fmt.Fprintf(buf, "type %s string\n\n", name)
	buf.WriteString("const (\n")
	seen := map[string]bool{}
	for _, v := range s.Enum {
		literal := fmt.Sprint(v)
		caseName := naming.SanitizeEnumCase(literal)
		// Distinct literals can sanitize to the same case name; suffix the
		// later ones so every const keeps its own identifier.
		base := caseName
		for n := 2; seen[caseName]; n++ {
			caseName = fmt.Sprintf("%s%d", base, n)
		}
		seen[caseName] = true
		fmt.Fprintf(buf, "\t%s%s %s = %q\n", name, caseName, name, literal)
	}
	buf.WriteString(")\n")
	return nil
}

// writeValueEnum emits a defined primitive type whose admissible values ride
// in @enumValue tags; Go has no const-set idiom for non-string JSON literals
// that survives a round trip.
func writeValueEnum(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	skip := map[string]bool{"enum": true}
	var extra []string
	for _, v := range s.Enum {
		line, err := encodeJSONTag("enumValue", v)
		if err != nil {
			return fmt.Errorf("generator: encode enum value for %s: %w", name, err)
		}
		extra = append(extra, line)
	}
	if err := writeTypeDoc(buf, name, s, skip, extra); err != nil {
		return err
	}
	fmt.Fprintf(buf, "type %s %s\n", name, typemap.GoType(stripEnum(s), cfg.components))
	return nil
}

// stripEnum returns a copy of s without its enum, so the type mapper sees
// only the primitive shape.
func stripEnum(s *spec.Schema) *spec.Schema {
	c := *s
	c.Enum = nil
	return &c
}

// writeUnion emits a closed variant set as an unexported-method interface.
// Variant membership rides in @oneOf tags; concrete variant types satisfy the
// interface by declaring the marker method.
func writeUnion(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	skip := map[string]bool{"oneOf": true, "discriminator": true}
	var extra []string
	for _, variant := range s.OneOf {
		extra = append(extra, "@oneOf "+typemap.GoType(variant, cfg.components))
	}
	if s.Discriminator != nil {
		line, err := encodeJSONTag("discriminator", s.Discriminator)
		if err != nil {
			return fmt.Errorf("generator: encode discriminator for %s: %w", name, err)
		}
		extra = append(extra, line)
	}
	if err := writeTypeDoc(buf, name, s, skip, extra); err != nil {
		return err
	}
	fmt.Fprintf(buf, "type %s interface {\n\tis%s()\n}\n", name, name)
	return nil
}

// writeStruct emits an object schema as a struct. Reference members of allOf
// become embedded fields; inline allOf members cannot embed and are preserved
// as an @allOf tag instead.
func writeStruct(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	var embeds []string
	var inline []*spec.Schema
	for _, member := range s.AllOf {
		if member != nil && member.Ref != "" {
			embeds = append(embeds, toTypeName(spec.ResolveRefToType(member.Ref)))
		} else {
			inline = append(inline, member)
		}
	}

	skip := map[string]bool{"allOf": true}
	var extra []string
	if len(inline) > 0 {
		line, err := encodeJSONTag("allOf", inline)
		if err != nil {
			return fmt.Errorf("generator: encode inline allOf for %s: %w", name, err)
		}
		extra = append(extra, line)
	}
	if err := writeTypeDoc(buf, name, s, skip, extra); err != nil {
		return err
	}

	fmt.Fprintf(buf, "type %s struct {\n", name)
	for _, embed := range embeds {
		fmt.Fprintf(buf, "\t%s\n", embed)
	}
	for i, propName := range s.Properties.Keys() {
		prop := s.Properties.Get(propName)
		if i > 0 || len(embeds) > 0 {
			buf.WriteByte('\n')
		}
		if err := writeStructField(buf, s, propName, prop, cfg); err != nil {
			return err
		}
	}
	buf.WriteString("}\n")
	return nil
}

// writeStructField emits one property as a struct field. A field is nullable
// when its own type set admits null or the property is not required;
// nullable fields are pointer-typed and omitted when empty.
func writeStructField(buf *bytes.Buffer, parent *spec.Schema, propName string, prop *spec.Schema, cfg *config) error {
	nullable := prop.Nullable() || !parent.IsRequired(propName)

	tags, err := schemaFacetTags(prop, nil)
	if err != nil {
		return fmt.Errorf("generator: encode facets for field %s: %w", propName, err)
	}
	if prop != nil && prop.Description != "" && !needsDescriptionTag(prop.Description) {
		fmt.Fprintf(buf, "\t// %s\n", cleanDescription(prop.Description))
	}
	if prop != nil && prop.Deprecated {
		buf.WriteString("\t// Deprecated: this field is deprecated.\n")
	}
	for _, tag := range tags {
		fmt.Fprintf(buf, "\t// %s\n", tag)
	}

	goType := typemap.GoType(prop, cfg.components)
	jsonTag := propName
	if nullable {
		goType = "*" + goType
		jsonTag += ",omitempty"
	}
	fmt.Fprintf(buf, "\t%s %s `json:%q`\n", toFieldName(propName), goType, jsonTag)
	return nil
}

func writeMapType(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	skip := map[string]bool{"additionalProperties": true}
	if err := writeTypeDoc(buf, name, s, skip, nil); err != nil {
		return err
	}
	value := typemap.GoType(s.AdditionalPropertiesSchema(), cfg.components)
	fmt.Fprintf(buf, "type %s map[string]%s\n", name, value)
	return nil
}

func writeSliceType(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	if err := writeTypeDoc(buf, name, s, nil, nil); err != nil {
		return err
	}
	item := "any"
	if s.Items != nil {
		item = typemap.GoType(s.Items, cfg.components)
	}
	fmt.Fprintf(buf, "type %s []%s\n", name, item)
	return nil
}

func writePrimitiveType(buf *bytes.Buffer, name string, s *spec.Schema, cfg *config) error {
	if err := writeTypeDoc(buf, name, s, nil, nil); err != nil {
		return err
	}
	// Strip the name so the mapper does not hand the type back to itself.
	c := *s
	c.Name = ""
	fmt.Fprintf(buf, "type %s %s\n", name, typemap.GoType(&c, cfg.components))
	return nil
}
