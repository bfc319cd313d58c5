package spec

// Document is the root of the specification model. The heavy schema and
// endpoint payload hangs off Paths, Webhooks, and Components; the remaining
// fields are document-wide metadata kept separable so client generation can
// consume only the context it needs.
type Document struct {
	OpenAPI           string                `yaml:"openapi" json:"openapi"`
	JSONSchemaDialect string                `yaml:"jsonSchemaDialect,omitempty" json:"jsonSchemaDialect,omitempty"`
	Self              string                `yaml:"$self,omitempty" json:"$self,omitempty"`
	Info              *Info                 `yaml:"info,omitempty" json:"info,omitempty"`
	Servers           []*Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Security          []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	Tags              []*Tag                `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs      *ExternalDocs         `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Paths             Paths                 `yaml:"paths,omitempty" json:"paths,omitempty"`
	Webhooks          Paths                 `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
	Components        *Components           `yaml:"components,omitempty" json:"components,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info carries the document's identifying metadata.
type Info struct {
	Title          string         `yaml:"title" json:"title"`
	Version        string         `yaml:"version" json:"version"`
	Summary        string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string         `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact       `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License       `yaml:"license,omitempty" json:"license,omitempty"`
	Extra          map[string]any `yaml:",inline" json:"-"`
}

// Contact identifies the API's maintainers.
type Contact struct {
	Name  string         `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string         `yaml:"url,omitempty" json:"url,omitempty"`
	Email string         `yaml:"email,omitempty" json:"email,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"`
}

// License identifies the API's license.
type License struct {
	Name       string         `yaml:"name" json:"name"`
	Identifier string         `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	URL        string         `yaml:"url,omitempty" json:"url,omitempty"`
	Extra      map[string]any `yaml:",inline" json:"-"`
}

// Tag is one document-level tag declaration.
type Tag struct {
	Name         string         `yaml:"name" json:"name"`
	Description  string         `yaml:"description,omitempty" json:"description,omitempty"`
	ExternalDocs *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Extra        map[string]any `yaml:",inline" json:"-"`
}
