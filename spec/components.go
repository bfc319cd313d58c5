package spec

// Components is the document-wide registry of reusable named definitions.
// All cross-entity references are non-owning, name-based lookups into these
// maps. The model never embeds copies, so reference cycles between named
// schemas remain representable without cyclic ownership.
type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers         map[string]*Parameter      `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	Examples        map[string]*Example        `yaml:"examples,omitempty" json:"examples,omitempty"`
	Links           map[string]*Link           `yaml:"links,omitempty" json:"links,omitempty"`
	Callbacks       map[string]*PathItem       `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`
	PathItems       map[string]*PathItem       `yaml:"pathItems,omitempty" json:"pathItems,omitempty"`
	MediaTypes      map[string]*MediaType      `yaml:"mediaTypes,omitempty" json:"mediaTypes,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Schema looks up a named schema, also setting its Name so generators can
// emit the declaration under its registry name. Returns nil when absent.
func (c *Components) Schema(name string) *Schema {
	if c == nil {
		return nil
	}
	s := c.Schemas[name]
	if s != nil && s.Name == "" {
		s.Name = name
	}
	return s
}

// PathItem looks up a named path item. Returns nil when absent.
func (c *Components) PathItem(name string) *PathItem {
	if c == nil {
		return nil
	}
	return c.PathItems[name]
}

// Link represents a design-time link for a response.
type Link struct {
	OperationRef string         `yaml:"operationRef,omitempty" json:"operationRef,omitempty"`
	OperationID  string         `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters   map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody  any            `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Description  string         `yaml:"description,omitempty" json:"description,omitempty"`
	Server       *Server        `yaml:"server,omitempty" json:"server,omitempty"`
	Extra        map[string]any `yaml:",inline" json:"-"`
}
