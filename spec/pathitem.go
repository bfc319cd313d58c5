package spec

// Paths maps URL path templates (or webhook names) to their path items.
type Paths map[string]*PathItem

// Operation is one un-flattened method slot on a path item. It carries the
// same metadata as an Endpoint minus the path and method, which the flatten
// transform supplies from the enclosing map key and slot.
type Operation struct {
	OperationID        string `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	OperationIDDerived bool   `yaml:"operationIdDerived,omitempty" json:"operationIdDerived,omitempty"`

	Summary      string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	Tags         []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Deprecated   bool          `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	Parameters  []*Parameter         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody         `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty" json:"responses,omitempty"`
	Callbacks   map[string]*PathItem `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`

	Servers []*Server `yaml:"servers,omitempty" json:"servers,omitempty"`

	Security              []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	SecurityExplicitEmpty bool                  `yaml:"securityExplicitEmpty,omitempty" json:"securityExplicitEmpty,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// PathItem bundles the operations available on a single path or webhook,
// plus path-level metadata that cascades to child operations unless they
// override it. A path item may itself be a reference to another path item.
type PathItem struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Get     *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty" json:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty" json:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty" json:"trace,omitempty"`
	Query   *Operation `yaml:"query,omitempty" json:"query,omitempty"`

	// AdditionalOperations holds operations for non-standard verbs, keyed by
	// the verb string.
	AdditionalOperations map[string]*Operation `yaml:"additionalOperations,omitempty" json:"additionalOperations,omitempty"`

	Parameters []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Servers    []*Server    `yaml:"servers,omitempty" json:"servers,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Slot returns the operation in the given standard method slot, or nil.
func (pi *PathItem) Slot(m Method) *Operation {
	if pi == nil {
		return nil
	}
	switch m {
	case MethodGet:
		return pi.Get
	case MethodPut:
		return pi.Put
	case MethodPost:
		return pi.Post
	case MethodDelete:
		return pi.Delete
	case MethodOptions:
		return pi.Options
	case MethodHead:
		return pi.Head
	case MethodPatch:
		return pi.Patch
	case MethodTrace:
		return pi.Trace
	case MethodQuery:
		return pi.Query
	default:
		return nil
	}
}

// SetSlot assigns op to the given standard method slot. Non-standard methods
// are ignored; callers route those through AdditionalOperations.
func (pi *PathItem) SetSlot(m Method, op *Operation) {
	switch m {
	case MethodGet:
		pi.Get = op
	case MethodPut:
		pi.Put = op
	case MethodPost:
		pi.Post = op
	case MethodDelete:
		pi.Delete = op
	case MethodOptions:
		pi.Options = op
	case MethodHead:
		pi.Head = op
	case MethodPatch:
		pi.Patch = op
	case MethodTrace:
		pi.Trace = op
	case MethodQuery:
		pi.Query = op
	}
}
