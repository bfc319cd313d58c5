package generator

import (
	"strconv"
	"strings"

	"github.com/restitch/restitch/internal/doctags"
	"github.com/restitch/restitch/internal/maputil"
	"github.com/restitch/restitch/spec"
)

// encodeTag renders a single plain tag line.
func encodeTag(name, value string) string {
	return doctags.Encode(name, value)
}

// encodeJSONTag renders a single structured tag line.
func encodeJSONTag(name string, v any) (string, error) {
	return doctags.EncodeJSON(name, v)
}

// tagWriter accumulates encoded tag lines, capturing the first encoding error.
type tagWriter struct {
	lines []string
	err   error
}

func (w *tagWriter) add(name, value string) {
	w.lines = append(w.lines, doctags.Encode(name, value))
}

func (w *tagWriter) addJSON(name string, v any) {
	line, err := doctags.EncodeJSON(name, v)
	if err != nil {
		if w.err == nil {
			w.err = err
		}
		return
	}
	w.lines = append(w.lines, line)
}

func (w *tagWriter) addFloat(name string, v *float64) {
	if v != nil {
		w.add(name, strconv.FormatFloat(*v, 'g', -1, 64))
	}
}

func (w *tagWriter) addInt(name string, v *int) {
	if v != nil {
		w.add(name, strconv.Itoa(*v))
	}
}

// needsDescriptionTag reports whether a description cannot ride on the plain
// heading comment line and needs its own lossless tag.
func needsDescriptionTag(desc string) bool {
	return strings.ContainsAny(desc, "\n\r") || len([]rune(desc)) > maxDescriptionLength
}

// schemaFacetTags renders every facet of s that the emitted Go type cannot
// carry, one encoded tag line each, in a fixed order so output stays
// byte-deterministic. Facet names in skip are already represented by the
// surrounding declaration (an enum const block, a union interface, a map
// alias) and are not tagged again.
func schemaFacetTags(s *spec.Schema, skip map[string]bool) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	w := &tagWriter{}

	if s.Title != "" {
		w.add("title", s.Title)
	}
	if s.Description != "" && needsDescriptionTag(s.Description) && !skip["description"] {
		w.add("description", s.Description)
	}
	if s.Default != nil {
		w.addJSON("default", s.Default)
	}
	if s.Const != nil {
		w.addJSON("const", s.Const)
	}
	if s.Deprecated {
		w.add("deprecated", "true")
	}
	if s.ReadOnly {
		w.add("readOnly", "true")
	}
	if s.WriteOnly {
		w.add("writeOnly", "true")
	}

	if len(s.Enum) > 0 && !skip["enum"] {
		w.addJSON("enum", s.Enum)
	}

	// Value constraints
	w.addFloat("multipleOf", s.MultipleOf)
	w.addFloat("maximum", s.Maximum)
	w.addFloat("exclusiveMaximum", s.ExclusiveMaximum)
	w.addFloat("minimum", s.Minimum)
	w.addFloat("exclusiveMinimum", s.ExclusiveMinimum)
	w.addInt("maxLength", s.MaxLength)
	w.addInt("minLength", s.MinLength)
	if s.Pattern != "" {
		w.add("pattern", s.Pattern)
	}
	w.addInt("maxItems", s.MaxItems)
	w.addInt("minItems", s.MinItems)
	if s.UniqueItems {
		w.add("uniqueItems", "true")
	}
	w.addInt("maxContains", s.MaxContains)
	w.addInt("minContains", s.MinContains)
	w.addInt("maxProperties", s.MaxProperties)
	w.addInt("minProperties", s.MinProperties)

	// Structural 2020-12 keywords with no Go rendering
	if s.DynamicRef != "" {
		w.add("dynamicRef", s.DynamicRef)
	}
	if s.DynamicAnchor != "" {
		w.add("dynamicAnchor", s.DynamicAnchor)
	}
	if len(s.PrefixItems) > 0 {
		w.addJSON("prefixItems", s.PrefixItems)
	}
	if s.Contains != nil {
		w.addJSON("contains", s.Contains)
	}
	if s.PropertyNames != nil {
		w.addJSON("propertyNames", s.PropertyNames)
	}
	if len(s.PatternProperties) > 0 {
		w.addJSON("patternProperties", s.PatternProperties)
	}
	if len(s.DependentRequired) > 0 {
		w.addJSON("dependentRequired", s.DependentRequired)
	}
	if len(s.DependentSchemas) > 0 {
		w.addJSON("dependentSchemas", s.DependentSchemas)
	}
	if s.AdditionalProperties != nil && !skip["additionalProperties"] {
		w.addJSON("additionalProperties", s.AdditionalProperties)
	}

	// Composition the declaration shape could not absorb
	if len(s.AllOf) > 0 && !skip["allOf"] {
		w.addJSON("allOf", s.AllOf)
	}
	if len(s.AnyOf) > 0 {
		w.addJSON("anyOf", s.AnyOf)
	}
	if len(s.OneOf) > 0 && !skip["oneOf"] {
		w.addJSON("oneOf", s.OneOf)
	}
	if s.Not != nil {
		w.addJSON("not", s.Not)
	}
	if s.If != nil {
		w.addJSON("if", s.If)
	}
	if s.Then != nil {
		w.addJSON("then", s.Then)
	}
	if s.Else != nil {
		w.addJSON("else", s.Else)
	}
	if s.Discriminator != nil && !skip["discriminator"] {
		w.addJSON("discriminator", s.Discriminator)
	}

	if s.ContentEncoding != "" {
		w.add("contentEncoding", s.ContentEncoding)
	}
	if s.ContentMediaType != "" {
		w.add("contentMediaType", s.ContentMediaType)
	}
	if s.XML != nil {
		w.addJSON("xml", s.XML)
	}
	if s.ExternalDocs != nil {
		w.addJSON("externalDocs", s.ExternalDocs)
	}
	if s.Example != nil {
		w.addJSON("example", s.Example)
	}
	if len(s.Examples) > 0 {
		w.addJSON("examples", s.Examples)
	}
	if len(s.NamedExamples) > 0 {
		w.addJSON("namedExamples", s.NamedExamples)
	}

	for _, key := range maputil.SortedKeys(s.Extra) {
		w.addJSON(key, s.Extra[key])
	}

	return w.lines, w.err
}
