package generator

import (
	"bytes"
	"fmt"

	"github.com/restitch/restitch/internal/maputil"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
)

// GenerateClient renders a complete HTTP client for a set of flattened
// endpoints: one method per endpoint plus a ClientInterface entry, request
// serialization per parameter style, body encoding per media type, and
// security scaffolding once per distinct scheme.
//
// All endpoint parameter combinations are validated before any text is
// produced; an invalid combination fails atomically with a
// [stitcherrors.ValidationError].
func GenerateClient(doc *spec.Document, endpoints []*spec.Endpoint, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("generator: invalid options: %w", err)
	}
	if cfg.components == nil && doc != nil {
		cfg.components = doc.Components
	}

	endpoints = withoutNilEndpoints(endpoints)
	if err := validateEndpoints(endpoints); err != nil {
		return "", err
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	buf := engine.GetBuffer()
	defer engine.PutBuffer(buf)

	writeClientHeader(buf, doc, cfg)
	fmt.Fprintf(buf, "package %s\n\n", cfg.packageName)
	if err := writeClientInterface(buf, endpoints, cfg); err != nil {
		return "", err
	}
	writeClientTypes(buf, cfg)
	writeClientStruct(buf, doc, cfg)
	writeClientConstructor(buf, cfg)
	writeClientOptions(buf, cfg)
	writeClientError(buf)
	writeClientHelpers(buf)
	if err := writeSecuritySchemes(buf, doc, cfg); err != nil {
		return "", err
	}
	for _, ep := range endpoints {
		if err := writeClientMethod(buf, doc, ep, cfg); err != nil {
			return "", err
		}
	}

	if !cfg.format {
		return buf.String(), nil
	}
	formatted, err := engine.Format("client.go", buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generator: %w", err)
	}
	cfg.logger.Debug("generated client", "endpoints", len(endpoints))
	return string(formatted), nil
}

// withoutNilEndpoints drops nil entries, matching the merger's handling of
// sparse caller slices. The input is never mutated.
func withoutNilEndpoints(endpoints []*spec.Endpoint) []*spec.Endpoint {
	kept := make([]*spec.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if ep != nil {
			kept = append(kept, ep)
		}
	}
	return kept
}

// validateEndpoints rejects parameter combinations that cannot serialize.
// It runs over every endpoint before any output exists, so a failing set
// never produces partial text.
func validateEndpoints(endpoints []*spec.Endpoint) error {
	for _, ep := range endpoints {
		if ep == nil {
			continue
		}
		opPath := ep.Path + "." + string(ep.Method)
		var sawQuery, sawQuerystring bool
		for _, p := range ep.Parameters {
			if p == nil {
				continue
			}
			if p.Style != "" && len(p.Content) > 0 {
				return stitcherrors.Validationf(opPath, p.Name,
					"parameter declares both style %q and content", p.Style)
			}
			switch p.In {
			case spec.LocationQuery:
				sawQuery = true
			case spec.LocationQuerystring:
				if sawQuerystring {
					return stitcherrors.Validationf(opPath, p.Name,
						"multiple querystring parameters declared")
				}
				sawQuerystring = true
				if p.Schema.PrimaryType() != "string" {
					return stitcherrors.Validationf(opPath, p.Name,
						"querystring parameter must have type string, got %q", p.Schema.PrimaryType())
				}
			}
		}
		if sawQuery && sawQuerystring {
			return stitcherrors.Validationf(opPath, "",
				"querystring parameter cannot coexist with query parameters")
		}
	}
	return nil
}

// writeClientHeader emits the file-level doc block: the API title and the
// document's root metadata as tags for the reverse parser.
func writeClientHeader(buf *bytes.Buffer, doc *spec.Document, cfg *config) {
	title := "API"
	if doc != nil && doc.Info != nil && doc.Info.Title != "" {
		title = doc.Info.Title
	}
	fmt.Fprintf(buf, "// %s client.\n", title)
	buf.WriteString("//\n")
	if doc != nil {
		if doc.Info != nil {
			if doc.Info.Title != "" {
				buf.WriteString("// " + encodeTag("apiTitle", doc.Info.Title) + "\n")
			}
			if doc.Info.Version != "" {
				buf.WriteString("// " + encodeTag("apiVersion", doc.Info.Version) + "\n")
			}
		}
		for _, srv := range doc.Servers {
			if line, err := encodeJSONTag("server", srv); err == nil {
				buf.WriteString("// " + line + "\n")
			}
		}
	}
}

// writeClientInterface emits the ClientInterface with one entry per endpoint,
// so callers can depend on an interface and tests can substitute the client.
func writeClientInterface(buf *bytes.Buffer, endpoints []*spec.Endpoint, cfg *config) error {
	fmt.Fprintf(buf, "// %sInterface captures every generated operation.\n", cfg.clientName)
	fmt.Fprintf(buf, "type %sInterface interface {\n", cfg.clientName)
	for _, ep := range endpoints {
		sig, err := methodSignature(ep, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "\t%s\n", sig)
	}
	buf.WriteString("}\n\n")
	return nil
}

func writeClientTypes(buf *bytes.Buffer, cfg *config) {
	buf.WriteString("// RequestEditorFn can modify an HTTP request before it is sent.\n")
	buf.WriteString("type RequestEditorFn func(ctx context.Context, req *http.Request) error\n\n")

	fmt.Fprintf(buf, "// %sOption configures a %s.\n", cfg.clientName, cfg.clientName)
	fmt.Fprintf(buf, "type %sOption func(*%s) error\n\n", cfg.clientName, cfg.clientName)
}

func writeClientStruct(buf *bytes.Buffer, doc *spec.Document, cfg *config) {
	fmt.Fprintf(buf, "// %s is the API client.\n", cfg.clientName)
	fmt.Fprintf(buf, "type %s struct {\n", cfg.clientName)
	buf.WriteString("\t// BaseURL is the base URL for API requests.\n")
	buf.WriteString("\tBaseURL string\n")
	buf.WriteString("\t// HTTPClient is the HTTP client used for requests.\n")
	buf.WriteString("\tHTTPClient *http.Client\n")
	buf.WriteString("\t// RequestEditors can modify requests before sending.\n")
	buf.WriteString("\tRequestEditors []RequestEditorFn\n")
	if hasMutualTLS(doc) {
		buf.WriteString("\t// TLSConfig is applied to the transport when set.\n")
		buf.WriteString("\tTLSConfig *tls.Config\n")
	}
	buf.WriteString("}\n\n")
	fmt.Fprintf(buf, "var _ %sInterface = (*%s)(nil)\n\n", cfg.clientName, cfg.clientName)
}

func writeClientConstructor(buf *bytes.Buffer, cfg *config) {
	name := cfg.clientName
	fmt.Fprintf(buf, "// New%s creates a new API client.\n", name)
	fmt.Fprintf(buf, "func New%s(baseURL string, opts ...%sOption) (*%s, error) {\n", name, name, name)
	fmt.Fprintf(buf, "\tc := &%s{\n", name)
	buf.WriteString("\t\tBaseURL:    strings.TrimSuffix(baseURL, \"/\"),\n")
	buf.WriteString("\t\tHTTPClient: http.DefaultClient,\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tfor _, opt := range opts {\n")
	buf.WriteString("\t\tif err := opt(c); err != nil {\n")
	buf.WriteString("\t\t\treturn nil, err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn c, nil\n")
	buf.WriteString("}\n\n")
}

func writeClientOptions(buf *bytes.Buffer, cfg *config) {
	name := cfg.clientName
	buf.WriteString("// WithHTTPClient sets the HTTP client.\n")
	fmt.Fprintf(buf, "func WithHTTPClient(client *http.Client) %sOption {\n", name)
	fmt.Fprintf(buf, "\treturn func(c *%s) error {\n", name)
	buf.WriteString("\t\tc.HTTPClient = client\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// WithRequestEditor adds a request editor function.\n")
	fmt.Fprintf(buf, "func WithRequestEditor(fn RequestEditorFn) %sOption {\n", name)
	fmt.Fprintf(buf, "\treturn func(c *%s) error {\n", name)
	buf.WriteString("\t\tc.RequestEditors = append(c.RequestEditors, fn)\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

func writeClientError(buf *bytes.Buffer) {
	buf.WriteString("// ClientError wraps any transport, encoding, or status failure from a\n")
	buf.WriteString("// generated operation.\n")
	buf.WriteString("type ClientError struct {\n")
	buf.WriteString("\t// Op is the operation name.\n")
	buf.WriteString("\tOp string\n")
	buf.WriteString("\t// StatusCode is the HTTP status when a response was received.\n")
	buf.WriteString("\tStatusCode int\n")
	buf.WriteString("\t// Body is the raw response body for non-success statuses.\n")
	buf.WriteString("\tBody []byte\n")
	buf.WriteString("\t// Err is the underlying error, if any.\n")
	buf.WriteString("\tErr error\n")
	buf.WriteString("}\n\n")
	buf.WriteString("func (e *ClientError) Error() string {\n")
	buf.WriteString("\tif e.Err != nil {\n")
	buf.WriteString("\t\treturn fmt.Sprintf(\"%s: %v\", e.Op, e.Err)\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn fmt.Sprintf(\"%s: unexpected status %d\", e.Op, e.StatusCode)\n")
	buf.WriteString("}\n\n")
	buf.WriteString("func (e *ClientError) Unwrap() error { return e.Err }\n\n")
}

// writeClientHelpers emits the small runtime helpers the generated method
// bodies call: style-aware escaping, form and multipart body encoding, and
// deterministic map iteration.
func writeClientHelpers(buf *bytes.Buffer) {
	buf.WriteString("// escapePath percent-encodes a path segment value. When allowReserved is\n")
	buf.WriteString("// set, reserved characters pass through unescaped.\n")
	buf.WriteString("func escapePath(v string, allowReserved bool) string {\n")
	buf.WriteString("\tif allowReserved {\n")
	buf.WriteString("\t\treturn v\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn url.PathEscape(v)\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// queryPair renders one name=value query component.\n")
	buf.WriteString("func queryPair(name, value string, allowReserved bool) string {\n")
	buf.WriteString("\tif allowReserved {\n")
	buf.WriteString("\t\treturn url.QueryEscape(name) + \"=\" + value\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn url.QueryEscape(name) + \"=\" + url.QueryEscape(value)\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// sortedKeys returns the map's keys in sorted order so request\n")
	buf.WriteString("// serialization is deterministic.\n")
	buf.WriteString("func sortedKeys[V any](m map[string]V) []string {\n")
	buf.WriteString("\tkeys := make([]string, 0, len(m))\n")
	buf.WriteString("\tfor k := range m {\n")
	buf.WriteString("\t\tkeys = append(keys, k)\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tsort.Strings(keys)\n")
	buf.WriteString("\treturn keys\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// serializeContent renders a content-typed parameter value for binding.\n")
	buf.WriteString("func serializeContent(mediaType string, v any) (string, error) {\n")
	buf.WriteString("\tif strings.HasPrefix(mediaType, \"application/json\") || strings.HasSuffix(mediaType, \"+json\") {\n")
	buf.WriteString("\t\tdata, err := json.Marshal(v)\n")
	buf.WriteString("\t\tif err != nil {\n")
	buf.WriteString("\t\t\treturn \"\", err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\treturn string(data), nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn fmt.Sprint(v), nil\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// formFieldOpt overrides serialization for one form body field.\n")
	buf.WriteString("type formFieldOpt struct {\n")
	buf.WriteString("\tStyle         string\n")
	buf.WriteString("\tExplode       bool\n")
	buf.WriteString("\tAllowReserved bool\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// encodeForm renders a value as application/x-www-form-urlencoded text.\n")
	buf.WriteString("// The value is flattened through its JSON encoding; fields are emitted in\n")
	buf.WriteString("// sorted order with per-field overrides applied.\n")
	buf.WriteString("func encodeForm(v any, opts map[string]formFieldOpt) (string, error) {\n")
	buf.WriteString("\tdata, err := json.Marshal(v)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tvar fields map[string]any\n")
	buf.WriteString("\tif err := json.Unmarshal(data, &fields); err != nil {\n")
	buf.WriteString("\t\treturn \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tvar parts []string\n")
	buf.WriteString("\tfor _, name := range sortedKeys(fields) {\n")
	buf.WriteString("\t\topt := opts[name]\n")
	buf.WriteString("\t\tswitch fv := fields[name].(type) {\n")
	buf.WriteString("\t\tcase []any:\n")
	buf.WriteString("\t\t\tif opt.Explode || opt.Style == \"\" {\n")
	buf.WriteString("\t\t\t\tfor _, item := range fv {\n")
	buf.WriteString("\t\t\t\t\tparts = append(parts, queryPair(name, fmt.Sprint(item), opt.AllowReserved))\n")
	buf.WriteString("\t\t\t\t}\n")
	buf.WriteString("\t\t\t} else {\n")
	buf.WriteString("\t\t\t\tsep := \",\"\n")
	buf.WriteString("\t\t\t\tif opt.Style == \"pipeDelimited\" {\n")
	buf.WriteString("\t\t\t\t\tsep = \"|\"\n")
	buf.WriteString("\t\t\t\t} else if opt.Style == \"spaceDelimited\" {\n")
	buf.WriteString("\t\t\t\t\tsep = \" \"\n")
	buf.WriteString("\t\t\t\t}\n")
	buf.WriteString("\t\t\t\titems := make([]string, 0, len(fv))\n")
	buf.WriteString("\t\t\t\tfor _, item := range fv {\n")
	buf.WriteString("\t\t\t\t\titems = append(items, fmt.Sprint(item))\n")
	buf.WriteString("\t\t\t\t}\n")
	buf.WriteString("\t\t\t\tparts = append(parts, queryPair(name, strings.Join(items, sep), opt.AllowReserved))\n")
	buf.WriteString("\t\t\t}\n")
	buf.WriteString("\t\tdefault:\n")
	buf.WriteString("\t\t\tparts = append(parts, queryPair(name, fmt.Sprint(fv), opt.AllowReserved))\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn strings.Join(parts, \"&\"), nil\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// multipartFieldOpt overrides the part content type for one field.\n")
	buf.WriteString("type multipartFieldOpt struct {\n")
	buf.WriteString("\tContentType string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// encodeMultipart renders a value as a multipart/form-data body, one part\n")
	buf.WriteString("// per field in sorted order. It returns the body and the content type\n")
	buf.WriteString("// carrying the boundary.\n")
	buf.WriteString("func encodeMultipart(v any, opts map[string]multipartFieldOpt) ([]byte, string, error) {\n")
	buf.WriteString("\tdata, err := json.Marshal(v)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn nil, \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tvar fields map[string]any\n")
	buf.WriteString("\tif err := json.Unmarshal(data, &fields); err != nil {\n")
	buf.WriteString("\t\treturn nil, \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tvar body bytes.Buffer\n")
	buf.WriteString("\tw := multipart.NewWriter(&body)\n")
	buf.WriteString("\tfor _, name := range sortedKeys(fields) {\n")
	buf.WriteString("\t\theader := textproto.MIMEHeader{}\n")
	buf.WriteString("\t\theader.Set(\"Content-Disposition\", fmt.Sprintf(`form-data; name=%q`, name))\n")
	buf.WriteString("\t\tif opt, ok := opts[name]; ok && opt.ContentType != \"\" {\n")
	buf.WriteString("\t\t\theader.Set(\"Content-Type\", opt.ContentType)\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\tpart, err := w.CreatePart(header)\n")
	buf.WriteString("\t\tif err != nil {\n")
	buf.WriteString("\t\t\treturn nil, \"\", err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\tif _, err := fmt.Fprint(part, fmt.Sprint(fields[name])); err != nil {\n")
	buf.WriteString("\t\t\treturn nil, \"\", err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tif err := w.Close(); err != nil {\n")
	buf.WriteString("\t\treturn nil, \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn body.Bytes(), w.FormDataContentType(), nil\n")
	buf.WriteString("}\n\n")
}

// hasMutualTLS reports whether any declared security scheme is mutualTLS.
func hasMutualTLS(doc *spec.Document) bool {
	if doc == nil || doc.Components == nil {
		return false
	}
	for _, name := range maputil.SortedKeys(doc.Components.SecuritySchemes) {
		if doc.Components.SecuritySchemes[name].Type == "mutualTLS" {
			return true
		}
	}
	return false
}
