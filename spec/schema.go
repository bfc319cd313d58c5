package spec

// Schema is the canonical, recursive description of a value shape. It follows
// JSON Schema Draft 2020-12 with the OpenAPI extensions, normalized into the
// form the generators consume: the type set is always explicit (membership of
// "null" signals nullability independent of required-ness), and all
// cross-entity references are non-owning name lookups via Ref.
//
// At most one of boolean schema, Ref, Enum, composition, and structure drives
// generation; the record generator's decision tree is total over these.
type Schema struct {
	// Name is the component name when this schema lives in a registry.
	// Inline schemas have an empty name.
	Name string `yaml:"-" json:"-"`

	// Bool is non-nil for the boolean schemas true/false.
	Bool *bool `yaml:"bool,omitempty" json:"bool,omitempty"`

	// Identity and reference
	Ref           string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	DynamicRef    string `yaml:"$dynamicRef,omitempty" json:"$dynamicRef,omitempty"`
	DynamicAnchor string `yaml:"$dynamicAnchor,omitempty" json:"$dynamicAnchor,omitempty"`

	// Type set; e.g. {"string"} or {"array", "null"}.
	Types  []string `yaml:"type,omitempty" json:"type,omitempty"`
	Format string   `yaml:"format,omitempty" json:"format,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Const       any    `yaml:"const,omitempty" json:"const,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	ReadOnly    bool   `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly   bool   `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	// Value constraints
	Enum             []any    `yaml:"enum,omitempty" json:"enum,omitempty"`
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum *float64 `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`
	MaxLength        *int     `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength        *int     `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern          string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array facets
	Items       *Schema   `yaml:"items,omitempty" json:"items,omitempty"`
	PrefixItems []*Schema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"`
	Contains    *Schema   `yaml:"contains,omitempty" json:"contains,omitempty"`
	MaxItems    *int      `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int      `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool      `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	MaxContains *int      `yaml:"maxContains,omitempty" json:"maxContains,omitempty"`
	MinContains *int      `yaml:"minContains,omitempty" json:"minContains,omitempty"`

	// Object facets
	Properties           *Properties         `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string            `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties any                 `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	PatternProperties    map[string]*Schema  `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	PropertyNames        *Schema             `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"`
	MaxProperties        *int                `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int                `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`
	DependentRequired    map[string][]string `yaml:"dependentRequired,omitempty" json:"dependentRequired,omitempty"`
	DependentSchemas     map[string]*Schema  `yaml:"dependentSchemas,omitempty" json:"dependentSchemas,omitempty"`

	// Composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`
	If    *Schema   `yaml:"if,omitempty" json:"if,omitempty"`
	Then  *Schema   `yaml:"then,omitempty" json:"then,omitempty"`
	Else  *Schema   `yaml:"else,omitempty" json:"else,omitempty"`

	// Content and projection
	ContentEncoding  string         `yaml:"contentEncoding,omitempty" json:"contentEncoding,omitempty"`
	ContentMediaType string         `yaml:"contentMediaType,omitempty" json:"contentMediaType,omitempty"`
	Discriminator    *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	XML              *XML           `yaml:"xml,omitempty" json:"xml,omitempty"`

	// Documentation
	ExternalDocs *ExternalDocs       `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Example      any                 `yaml:"example,omitempty" json:"example,omitempty"`
	Examples     []any               `yaml:"examples,omitempty" json:"examples,omitempty"`
	NamedExamples map[string]*Example `yaml:"namedExamples,omitempty" json:"namedExamples,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// HasType reports whether t is a member of the schema's type set.
func (s *Schema) HasType(t string) bool {
	if s == nil {
		return false
	}
	for _, st := range s.Types {
		if st == t {
			return true
		}
	}
	return false
}

// PrimaryType returns the first non-"null" member of the type set, or "".
func (s *Schema) PrimaryType() string {
	if s == nil {
		return ""
	}
	for _, t := range s.Types {
		if t != "null" {
			return t
		}
	}
	return ""
}

// Nullable reports whether "null" is a member of the type set.
func (s *Schema) Nullable() bool {
	return s.HasType("null")
}

// IsRequired reports whether name appears in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AdditionalPropertiesSchema returns the additionalProperties schema when one
// is declared, or nil for the boolean and absent forms.
func (s *Schema) AdditionalPropertiesSchema() *Schema {
	if s == nil {
		return nil
	}
	if sub, ok := s.AdditionalProperties.(*Schema); ok {
		return sub
	}
	return nil
}

// Discriminator names the property that selects a concrete variant within a
// closed polymorphic union, with optional mapping from property values to
// schema names.
type Discriminator struct {
	PropertyName   string            `yaml:"propertyName" json:"propertyName"`
	Mapping        map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	DefaultMapping string            `yaml:"defaultMapping,omitempty" json:"defaultMapping,omitempty"`
	Extra          map[string]any    `yaml:",inline" json:"-"`
}

// XML carries metadata for XML projection of a schema.
type XML struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Namespace string         `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Prefix    string         `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Attribute bool           `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Wrapped   bool           `yaml:"wrapped,omitempty" json:"wrapped,omitempty"`
	Extra     map[string]any `yaml:",inline" json:"-"`
}

// ExternalDocs points to external documentation for a schema or operation.
type ExternalDocs struct {
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string         `yaml:"url" json:"url"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Example represents a keyed example object.
type Example struct {
	Summary       string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
	Value         any            `yaml:"value,omitempty" json:"value,omitempty"`
	ExternalValue string         `yaml:"externalValue,omitempty" json:"externalValue,omitempty"`
	Extra         map[string]any `yaml:",inline" json:"-"`
}
