package parser

import (
	"go/ast"
	"strconv"
	"strings"

	"github.com/restitch/restitch/internal/doctags"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/typemap"
)

// splitDocComment separates a doc comment into its plain heading lines and
// its tag lines. Blank separator lines and Deprecated markers are dropped
// from the heading; deprecation is recovered from the marker separately.
func splitDocComment(doc *ast.CommentGroup) (heading []string, tags []doctags.Tag, deprecated bool) {
	if doc == nil {
		return nil, nil, false
	}
	for _, c := range doc.List {
		line := strings.TrimPrefix(c.Text, "//")
		line = strings.TrimSpace(line)
		if tag, ok := doctags.ParseLine(line); ok {
			tags = append(tags, tag)
			continue
		}
		if strings.HasPrefix(line, "Deprecated:") {
			deprecated = true
			continue
		}
		if line != "" {
			heading = append(heading, line)
		}
	}
	return heading, tags, deprecated
}

// headingDescription strips the declared name from the heading line, undoing
// the "Name description" comment convention.
func headingDescription(heading []string, name string) string {
	if len(heading) == 0 {
		return ""
	}
	desc := strings.Join(heading, " ")
	if rest, ok := strings.CutPrefix(desc, name+" "); ok {
		return rest
	}
	return desc
}

func floatPtrFromTag(value string) *float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func intPtrFromTag(value string) *int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// applySchemaTag writes one recovered facet back onto the schema. It is the
// inverse of the generator's facet emission; unknown tag names land in Extra.
func applySchemaTag(s *spec.Schema, tag doctags.Tag) {
	value := doctags.DecodeValue(tag.Value)
	switch tag.Name {
	case "title":
		s.Title = value
	case "description":
		s.Description = value
	case "default":
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) == nil {
			s.Default = v
		}
	case "const":
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) == nil {
			s.Const = v
		}
	case "deprecated":
		s.Deprecated = value == "true"
	case "readOnly":
		s.ReadOnly = value == "true"
	case "writeOnly":
		s.WriteOnly = value == "true"
	case "enum":
		var v []any
		if doctags.DecodeJSONValue(tag.Value, &v) == nil {
			s.Enum = v
		}
	case "enumValue":
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) == nil {
			s.Enum = append(s.Enum, v)
		}
	case "multipleOf":
		s.MultipleOf = floatPtrFromTag(value)
	case "maximum":
		s.Maximum = floatPtrFromTag(value)
	case "exclusiveMaximum":
		s.ExclusiveMaximum = floatPtrFromTag(value)
	case "minimum":
		s.Minimum = floatPtrFromTag(value)
	case "exclusiveMinimum":
		s.ExclusiveMinimum = floatPtrFromTag(value)
	case "maxLength":
		s.MaxLength = intPtrFromTag(value)
	case "minLength":
		s.MinLength = intPtrFromTag(value)
	case "pattern":
		s.Pattern = value
	case "maxItems":
		s.MaxItems = intPtrFromTag(value)
	case "minItems":
		s.MinItems = intPtrFromTag(value)
	case "uniqueItems":
		s.UniqueItems = value == "true"
	case "maxContains":
		s.MaxContains = intPtrFromTag(value)
	case "minContains":
		s.MinContains = intPtrFromTag(value)
	case "maxProperties":
		s.MaxProperties = intPtrFromTag(value)
	case "minProperties":
		s.MinProperties = intPtrFromTag(value)
	case "dynamicRef":
		s.DynamicRef = value
	case "dynamicAnchor":
		s.DynamicAnchor = value
	case "prefixItems":
		doctags.DecodeJSONValue(tag.Value, &s.PrefixItems)
	case "contains":
		doctags.DecodeJSONValue(tag.Value, &s.Contains)
	case "propertyNames":
		doctags.DecodeJSONValue(tag.Value, &s.PropertyNames)
	case "patternProperties":
		doctags.DecodeJSONValue(tag.Value, &s.PatternProperties)
	case "dependentRequired":
		doctags.DecodeJSONValue(tag.Value, &s.DependentRequired)
	case "dependentSchemas":
		doctags.DecodeJSONValue(tag.Value, &s.DependentSchemas)
	case "additionalProperties":
		var sub *spec.Schema
		if doctags.DecodeJSONValue(tag.Value, &sub) == nil {
			s.AdditionalProperties = sub
		}
	case "allOf":
		var members []*spec.Schema
		if doctags.DecodeJSONValue(tag.Value, &members) == nil {
			s.AllOf = append(s.AllOf, members...)
		}
	case "anyOf":
		doctags.DecodeJSONValue(tag.Value, &s.AnyOf)
	case "oneOf":
		// Union variants are tagged as Go type expressions, one per line.
		s.OneOf = append(s.OneOf, typemap.SchemaForTypeExpr(value))
	case "not":
		doctags.DecodeJSONValue(tag.Value, &s.Not)
	case "if":
		doctags.DecodeJSONValue(tag.Value, &s.If)
	case "then":
		doctags.DecodeJSONValue(tag.Value, &s.Then)
	case "else":
		doctags.DecodeJSONValue(tag.Value, &s.Else)
	case "discriminator":
		doctags.DecodeJSONValue(tag.Value, &s.Discriminator)
	case "contentEncoding":
		s.ContentEncoding = value
	case "contentMediaType":
		s.ContentMediaType = value
	case "xml":
		doctags.DecodeJSONValue(tag.Value, &s.XML)
	case "externalDocs":
		doctags.DecodeJSONValue(tag.Value, &s.ExternalDocs)
	case "example":
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) == nil {
			s.Example = v
		}
	case "examples":
		doctags.DecodeJSONValue(tag.Value, &s.Examples)
	case "namedExamples":
		doctags.DecodeJSONValue(tag.Value, &s.NamedExamples)
	default:
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) != nil {
			v = value
		}
		if s.Extra == nil {
			s.Extra = map[string]any{}
		}
		s.Extra[tag.Name] = v
	}
}
