package spec

import "strings"

// Method identifies an HTTP method slot. The enumeration is closed except for
// MethodCustom, which carries its verb in Endpoint.CustomVerb.
type Method string

const (
	MethodGet     Method = "get"
	MethodPut     Method = "put"
	MethodPost    Method = "post"
	MethodDelete  Method = "delete"
	MethodOptions Method = "options"
	MethodHead    Method = "head"
	MethodPatch   Method = "patch"
	MethodTrace   Method = "trace"
	MethodQuery   Method = "query"
	MethodCustom  Method = "custom"
)

// StandardMethods lists the standard method slots in canonical order.
var StandardMethods = []Method{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

// MethodFromVerb maps a verb string onto a Method. Unknown verbs map to
// MethodCustom; the caller records the verb in Endpoint.CustomVerb.
func MethodFromVerb(verb string) Method {
	m := Method(strings.ToLower(verb))
	for _, std := range StandardMethods {
		if m == std {
			return std
		}
	}
	return MethodCustom
}

// Verb returns the wire-format verb for an endpoint's method, upper-cased.
func (e *Endpoint) Verb() string {
	if e.Method == MethodCustom {
		return strings.ToUpper(e.CustomVerb)
	}
	return strings.ToUpper(string(e.Method))
}

// Location identifies where a parameter is serialized.
type Location string

const (
	LocationPath        Location = "path"
	LocationQuery       Location = "query"
	LocationHeader      Location = "header"
	LocationCookie      Location = "cookie"
	// LocationQuerystring binds a single string parameter as the entire raw
	// query string. It must not coexist with ordinary query parameters.
	LocationQuerystring Location = "querystring"
)

// Endpoint is one HTTP operation's complete metadata, flattened out of its
// path item. The path string always comes from the paths map key.
type Endpoint struct {
	Path       string `yaml:"path" json:"path"`
	Method     Method `yaml:"method" json:"method"`
	CustomVerb string `yaml:"customVerb,omitempty" json:"customVerb,omitempty"`

	// OperationID is the operation's identifier. OperationIDDerived records
	// whether it was synthesized (from path and method) rather than declared.
	OperationID        string `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	OperationIDDerived bool   `yaml:"operationIdDerived,omitempty" json:"operationIdDerived,omitempty"`

	Summary     string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Deprecated  bool          `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	Parameters  []*Parameter         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody         `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty" json:"responses,omitempty"`
	Callbacks   map[string]*PathItem `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`

	Servers []*Server `yaml:"servers,omitempty" json:"servers,omitempty"`

	// Security lists the endpoint's security requirements.
	// SecurityExplicitEmpty distinguishes "security: []" (explicitly
	// disabled) from security simply not being stated.
	Security              []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	SecurityExplicitEmpty bool                  `yaml:"securityExplicitEmpty,omitempty" json:"securityExplicitEmpty,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a single operation parameter.
//
// Schema and Content are mutually informative: a content map implies custom
// media-type serialization of the value. A parameter may declare a style or
// content, never both.
type Parameter struct {
	Name        string   `yaml:"name" json:"name"`
	In          Location `yaml:"in" json:"in"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool     `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	Style           string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode         *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	AllowReserved   bool                  `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`
	AllowEmptyValue bool                  `yaml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty"`
	Schema          *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"`
	Content         map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`

	Example  any                 `yaml:"example,omitempty" json:"example,omitempty"`
	Examples map[string]*Example `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ExplodeEnabled resolves the explode flag against its style-dependent
// default: form style explodes by default, every other style does not.
func (p *Parameter) ExplodeEnabled() bool {
	if p.Explode != nil {
		return *p.Explode
	}
	return p.EffectiveStyle() == StyleForm
}

// Parameter serialization styles.
const (
	StyleForm           = "form"
	StyleSimple         = "simple"
	StyleMatrix         = "matrix"
	StyleLabel          = "label"
	StyleSpaceDelimited = "spaceDelimited"
	StylePipeDelimited  = "pipeDelimited"
	StyleDeepObject     = "deepObject"
)

// EffectiveStyle resolves the style against its location-dependent default:
// query and cookie parameters default to form, path and header to simple.
func (p *Parameter) EffectiveStyle() string {
	if p.Style != "" {
		return p.Style
	}
	switch p.In {
	case LocationPath, LocationHeader:
		return StyleSimple
	default:
		return StyleForm
	}
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// Response describes a single response keyed by status code.
type Response struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     map[string]*Parameter `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType pairs a media type key with schema and examples.
type MediaType struct {
	Schema   *Schema              `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example  any                  `yaml:"example,omitempty" json:"example,omitempty"`
	Examples map[string]*Example  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Encoding map[string]*Encoding `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Extra    map[string]any       `yaml:",inline" json:"-"`
}

// Encoding defines serialization overrides for one body property.
type Encoding struct {
	ContentType   string                `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Headers       map[string]*Parameter `yaml:"headers,omitempty" json:"headers,omitempty"`
	Style         string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode       *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	AllowReserved bool                  `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`
	Extra         map[string]any        `yaml:",inline" json:"-"`
}

// Server describes a server a client can target.
type Server struct {
	URL         string                     `yaml:"url" json:"url"`
	Description string                     `yaml:"description,omitempty" json:"description,omitempty"`
	Variables   map[string]*ServerVariable `yaml:"variables,omitempty" json:"variables,omitempty"`
	Extra       map[string]any             `yaml:",inline" json:"-"`
}

// ServerVariable is one substitutable {placeholder} in a server URL.
type ServerVariable struct {
	Default     string         `yaml:"default" json:"default"`
	Enum        []string       `yaml:"enum,omitempty" json:"enum,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// SecurityRequirement maps scheme names to required scopes.
type SecurityRequirement map[string][]string

// SecurityScheme describes one named security scheme in the components
// registry.
type SecurityScheme struct {
	Type             string         `yaml:"type" json:"type"` // "apiKey", "http", "oauth2", "openIdConnect", "mutualTLS"
	Description      string         `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string         `yaml:"name,omitempty" json:"name,omitempty"` // apiKey parameter name
	In               Location       `yaml:"in,omitempty" json:"in,omitempty"`     // apiKey location
	Scheme           string         `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string         `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	Flows            *OAuthFlows    `yaml:"flows,omitempty" json:"flows,omitempty"`
	OpenIDConnectURL string         `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
	Extra            map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlows groups the OAuth2 flow configurations.
type OAuthFlows struct {
	Implicit          *OAuthFlow     `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Password          *OAuthFlow     `yaml:"password,omitempty" json:"password,omitempty"`
	ClientCredentials *OAuthFlow     `yaml:"clientCredentials,omitempty" json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow     `yaml:"authorizationCode,omitempty" json:"authorizationCode,omitempty"`
	DeviceAuthorization *OAuthFlow   `yaml:"deviceAuthorization,omitempty" json:"deviceAuthorization,omitempty"`
	Extra             map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlow is one OAuth2 flow's endpoints and scopes.
type OAuthFlow struct {
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	TokenURL         string            `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	RefreshURL       string            `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	DeviceAuthorizationURL string      `yaml:"deviceAuthorizationUrl,omitempty" json:"deviceAuthorizationUrl,omitempty"`
	Scopes           map[string]string `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	Extra            map[string]any    `yaml:",inline" json:"-"`
}
