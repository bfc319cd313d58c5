package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/restitch/restitch/internal/httputil"
	"github.com/restitch/restitch/internal/maputil"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/typemap"
)

// paramInfo is the generation-time view of one endpoint parameter.
type paramInfo struct {
	param    *spec.Parameter
	argName  string
	goType   string
	optional bool
	// contentType is set for content-based parameters, which serialize
	// through their media type before binding.
	contentType string
	// kind is "scalar", "array", or "map", from the parameter schema shape.
	kind string
}

// responseTagPayload is the wire form of one @response tag.
type responseTagPayload struct {
	Status   string         `json:"status"`
	Response *spec.Response `json:"response"`
}

// callbackTagPayload is the wire form of one @callback tag.
type callbackTagPayload struct {
	Name     string         `json:"name"`
	PathItem *spec.PathItem `json:"pathItem"`
}

func buildParamInfos(ep *spec.Endpoint, cfg *config) []paramInfo {
	infos := make([]paramInfo, 0, len(ep.Parameters))
	for _, p := range ep.Parameters {
		if p == nil {
			continue
		}
		info := paramInfo{
			param:    p,
			argName:  toParamName(p.Name),
			optional: !p.Required && p.In != spec.LocationPath,
			kind:     "scalar",
		}
		schema := p.Schema
		if len(p.Content) > 0 {
			mt := maputil.SortedKeys(p.Content)[0]
			info.contentType = mt
			schema = p.Content[mt].Schema
			info.goType = typemap.GoType(schema, cfg.components)
		} else {
			info.goType = typemap.GoType(schema, cfg.components)
			switch schema.PrimaryType() {
			case "array":
				info.kind = "array"
			case "object":
				info.kind = "map"
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// chooseBodyMedia picks the request body media type: the first
// JSON-compatible one in sorted order, else the first declared.
func chooseBodyMedia(rb *spec.RequestBody) (string, *spec.MediaType) {
	if rb == nil || len(rb.Content) == 0 {
		return "", nil
	}
	keys := maputil.SortedKeys(rb.Content)
	for _, mt := range keys {
		if httputil.IsJSONMediaType(mt) {
			return mt, rb.Content[mt]
		}
	}
	return keys[0], rb.Content[keys[0]]
}

// chooseResponse picks the success response the method decodes: the first
// 2xx status in sorted order, with the most specific media type winning over
// wildcard supertypes.
func chooseResponse(ep *spec.Endpoint) (mediaType string, schema *spec.Schema) {
	for _, status := range maputil.SortedKeys(ep.Responses) {
		if !httputil.IsSuccessCode(status) {
			continue
		}
		resp := ep.Responses[status]
		if resp == nil || len(resp.Content) == 0 {
			return "", nil
		}
		best := ""
		for _, mt := range maputil.SortedKeys(resp.Content) {
			if best == "" || httputil.Specificity(mt) > httputil.Specificity(best) {
				best = mt
			}
		}
		return best, resp.Content[best].Schema
	}
	return "", nil
}

// methodSignature renders the method's name, arguments, and results.
func methodSignature(ep *spec.Endpoint, cfg *config) (string, error) {
	name := methodNameForEndpoint(ep)
	args := []string{"ctx context.Context"}
	for _, info := range buildParamInfos(ep, cfg) {
		goType := info.goType
		if info.optional {
			goType = "*" + goType
		}
		args = append(args, info.argName+" "+goType)
	}
	if ep.RequestBody != nil {
		_, media := chooseBodyMedia(ep.RequestBody)
		goType := "any"
		if media != nil {
			goType = typemap.GoType(media.Schema, cfg.components)
		}
		if !ep.RequestBody.Required {
			goType = "*" + goType
		}
		args = append(args, "body "+goType)
	}
	out := returnType(ep, cfg)
	return fmt.Sprintf("%s(%s) (%s, error)", name, strings.Join(args, ", "), out), nil
}

func returnType(ep *spec.Endpoint, cfg *config) string {
	_, schema := chooseResponse(ep)
	if schema == nil {
		return "struct{}"
	}
	return typemap.GoType(schema, cfg.components)
}

// endpointTags renders the endpoint's facts as tag lines in a fixed order, so
// the client parser can reconstruct the endpoint without reading method
// bodies.
func endpointTags(ep *spec.Endpoint) ([]string, error) {
	var lines []string
	add := func(name, value string) { lines = append(lines, encodeTag(name, value)) }
	addJSON := func(name string, v any) error {
		line, err := encodeJSONTag(name, v)
		if err != nil {
			return fmt.Errorf("generator: encode %s tag: %w", name, err)
		}
		lines = append(lines, line)
		return nil
	}

	if ep.OperationID != "" {
		add("operationId", ep.OperationID)
		if ep.OperationIDDerived {
			add("operationIdDerived", "true")
		}
	}
	add("method", string(ep.Method))
	if ep.CustomVerb != "" {
		add("customVerb", ep.CustomVerb)
	}
	add("path", ep.Path)
	if len(ep.Tags) > 0 {
		if err := addJSON("tags", ep.Tags); err != nil {
			return nil, err
		}
	}
	if ep.Deprecated {
		add("deprecated", "true")
	}
	if ep.ExternalDocs != nil {
		if err := addJSON("externalDocs", ep.ExternalDocs); err != nil {
			return nil, err
		}
	}
	for _, p := range ep.Parameters {
		if p == nil {
			continue
		}
		if err := addJSON("param", p); err != nil {
			return nil, err
		}
	}
	if ep.RequestBody != nil {
		if err := addJSON("requestBody", ep.RequestBody); err != nil {
			return nil, err
		}
	}
	for _, status := range maputil.SortedKeys(ep.Responses) {
		payload := responseTagPayload{Status: status, Response: ep.Responses[status]}
		if err := addJSON("response", payload); err != nil {
			return nil, err
		}
	}
	for _, name := range maputil.SortedKeys(ep.Callbacks) {
		payload := callbackTagPayload{Name: name, PathItem: ep.Callbacks[name]}
		if err := addJSON("callback", payload); err != nil {
			return nil, err
		}
	}
	if ep.SecurityExplicitEmpty {
		add("securityEmpty", "true")
	} else if len(ep.Security) > 0 {
		if err := addJSON("security", ep.Security); err != nil {
			return nil, err
		}
	}
	for _, srv := range ep.Servers {
		if err := addJSON("server", srv); err != nil {
			return nil, err
		}
	}
	for _, key := range maputil.SortedKeys(ep.Extra) {
		if err := addJSON(key, ep.Extra[key]); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// baseURLDefault resolves the generation-time fallback base URL: the
// operation's server override, else the document's first server with
// variable defaults substituted, else "/".
func baseURLDefault(doc *spec.Document, ep *spec.Endpoint) string {
	servers := ep.Servers
	if len(servers) == 0 && doc != nil {
		servers = doc.Servers
	}
	if len(servers) == 0 || servers[0] == nil || servers[0].URL == "" {
		return "/"
	}
	u := servers[0].URL
	for _, name := range maputil.SortedKeys(servers[0].Variables) {
		v := servers[0].Variables[name]
		if v != nil {
			u = strings.ReplaceAll(u, "{"+name+"}", v.Default)
		}
	}
	return strings.TrimSuffix(u, "/")
}

// writeClientMethod emits one full endpoint method: doc tags, signature, URL
// construction, parameter binding, body encoding, and response decoding.
func writeClientMethod(buf *bytes.Buffer, doc *spec.Document, ep *spec.Endpoint, cfg *config) error {
	name := methodNameForEndpoint(ep)
	infos := buildParamInfos(ep, cfg)
	outType := returnType(ep, cfg)

	// Doc comment
	if ep.Summary != "" {
		fmt.Fprintf(buf, "// %s %s\n", name, cleanDescription(ep.Summary))
	} else {
		fmt.Fprintf(buf, "// %s calls %s %s.\n", name, ep.Verb(), ep.Path)
	}
	if ep.Description != "" && !needsDescriptionTag(ep.Description) {
		fmt.Fprintf(buf, "// %s\n", cleanDescription(ep.Description))
	}
	if ep.Deprecated {
		buf.WriteString("//\n// Deprecated: this operation is deprecated.\n")
	}
	tags, err := endpointTags(ep)
	if err != nil {
		return err
	}
	if ep.Description != "" && needsDescriptionTag(ep.Description) {
		tags = append([]string{encodeTag("description", ep.Description)}, tags...)
	}
	buf.WriteString("//\n")
	for _, tag := range tags {
		fmt.Fprintf(buf, "// %s\n", tag)
	}

	sig, err := methodSignature(ep, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "func (c *%s) %s {\n", cfg.clientName, sig)
	fmt.Fprintf(buf, "\tvar out %s\n", outType)

	// Content-based parameters serialize before binding.
	for _, info := range infos {
		if info.contentType == "" {
			continue
		}
		if info.optional {
			fmt.Fprintf(buf, "\tvar %sValue string\n", info.argName)
			fmt.Fprintf(buf, "\tif %s != nil {\n", info.argName)
			fmt.Fprintf(buf, "\t\tserialized, err := serializeContent(%q, *%s)\n", info.contentType, info.argName)
			buf.WriteString("\t\tif err != nil {\n")
			fmt.Fprintf(buf, "\t\t\treturn out, &ClientError{Op: %q, Err: err}\n", name)
			buf.WriteString("\t\t}\n")
			fmt.Fprintf(buf, "\t\t%sValue = serialized\n", info.argName)
			buf.WriteString("\t}\n")
		} else {
			fmt.Fprintf(buf, "\t%sValue, err := serializeContent(%q, %s)\n", info.argName, info.contentType, info.argName)
			buf.WriteString("\tif err != nil {\n")
			fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, Err: err}\n", name)
			buf.WriteString("\t}\n")
		}
	}

	writePathConstruction(buf, ep, infos)

	// Query string assembly
	var qsParam *paramInfo
	hasQuery := false
	for i := range infos {
		switch infos[i].param.In {
		case spec.LocationQuerystring:
			qsParam = &infos[i]
		case spec.LocationQuery:
			hasQuery = true
		}
	}
	if qsParam != nil {
		writeQuerystringBinding(buf, qsParam)
	} else if hasQuery {
		buf.WriteString("\tvar qs []string\n")
		for i := range infos {
			if infos[i].param.In == spec.LocationQuery {
				writeQueryBinding(buf, &infos[i])
			}
		}
	}

	writeBodyEncoding(buf, name, ep, cfg)

	// Final URL
	fmt.Fprintf(buf, "\tbase := c.BaseURL\n")
	fmt.Fprintf(buf, "\tif base == \"\" {\n\t\tbase = %q\n\t}\n", baseURLDefault(doc, ep))
	buf.WriteString("\trequestURL := base + requestPath\n")
	if qsParam != nil {
		buf.WriteString("\tif rawQuery != \"\" {\n")
		buf.WriteString("\t\trequestURL += \"?\" + rawQuery\n")
		buf.WriteString("\t}\n")
	} else if hasQuery {
		buf.WriteString("\tif len(qs) > 0 {\n")
		buf.WriteString("\t\trequestURL += \"?\" + strings.Join(qs, \"&\")\n")
		buf.WriteString("\t}\n")
	}

	// Request
	fmt.Fprintf(buf, "\treq, err := http.NewRequestWithContext(ctx, %q, requestURL, bodyReader)\n", ep.Verb())
	buf.WriteString("\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, Err: err}\n", name)
	buf.WriteString("\t}\n")
	if ep.RequestBody != nil {
		buf.WriteString("\tif contentType != \"\" {\n")
		buf.WriteString("\t\treq.Header.Set(\"Content-Type\", contentType)\n")
		buf.WriteString("\t}\n")
	}

	for i := range infos {
		switch infos[i].param.In {
		case spec.LocationHeader:
			writeHeaderBinding(buf, &infos[i])
		case spec.LocationCookie:
			writeCookieBinding(buf, &infos[i])
		}
	}

	buf.WriteString("\tfor _, editor := range c.RequestEditors {\n")
	buf.WriteString("\t\tif err := editor(ctx, req); err != nil {\n")
	fmt.Fprintf(buf, "\t\t\treturn out, &ClientError{Op: %q, Err: err}\n", name)
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")

	buf.WriteString("\tresp, err := c.HTTPClient.Do(req)\n")
	buf.WriteString("\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, Err: err}\n", name)
	buf.WriteString("\t}\n")
	buf.WriteString("\tdefer resp.Body.Close()\n")
	buf.WriteString("\tif resp.StatusCode < 200 || resp.StatusCode > 299 {\n")
	buf.WriteString("\t\tdata, _ := io.ReadAll(resp.Body)\n")
	fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Body: data}\n", name)
	buf.WriteString("\t}\n")

	writeResponseDecode(buf, name, ep, outType)

	buf.WriteString("\treturn out, nil\n")
	buf.WriteString("}\n\n")
	return nil
}

// writePathConstruction emits the requestPath assembly: one styled value per
// path parameter, substituted into the template split at generation time.
func writePathConstruction(buf *bytes.Buffer, ep *spec.Endpoint, infos []paramInfo) {
	byName := map[string]*paramInfo{}
	for i := range infos {
		if infos[i].param.In == spec.LocationPath {
			byName[infos[i].param.Name] = &infos[i]
		}
	}

	var exprs []string
	rest := ep.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			break
		}
		if open > 0 {
			exprs = append(exprs, fmt.Sprintf("%q", rest[:open]))
		}
		pname := rest[open+1 : open+closing]
		if info, ok := byName[pname]; ok {
			varName := "pp" + toFieldName(info.argName)
			writePathParamValue(buf, varName, info)
			exprs = append(exprs, varName)
		} else {
			exprs = append(exprs, fmt.Sprintf("%q", "{"+pname+"}"))
		}
		rest = rest[open+closing+1:]
	}
	if rest != "" {
		exprs = append(exprs, fmt.Sprintf("%q", rest))
	}
	if len(exprs) == 0 {
		exprs = append(exprs, `""`)
	}
	fmt.Fprintf(buf, "\trequestPath := %s\n", strings.Join(exprs, " + "))
}

// writePathParamValue emits the styled rendering of one path parameter into
// varName. The style decides prefix and element joining; the shapes follow
// RFC 6570 as profiled by OpenAPI.
func writePathParamValue(buf *bytes.Buffer, varName string, info *paramInfo) {
	p := info.param
	style := p.EffectiveStyle()
	explode := p.ExplodeEnabled()
	reserved := fmt.Sprintf("%t", p.AllowReserved)
	arg := info.argName
	if info.contentType != "" {
		fmt.Fprintf(buf, "\t%s := escapePath(%sValue, %s)\n", varName, arg, reserved)
		return
	}

	switch info.kind {
	case "array":
		switch {
		case style == spec.StyleMatrix && explode:
			fmt.Fprintf(buf, "\t%s := \"\"\n", varName)
			fmt.Fprintf(buf, "\tfor _, v := range %s {\n", arg)
			fmt.Fprintf(buf, "\t\t%s += \";%s=\" + escapePath(fmt.Sprint(v), %s)\n", varName, p.Name, reserved)
			buf.WriteString("\t}\n")
		case style == spec.StyleMatrix:
			writeJoinedElems(buf, varName, arg, reserved, fmt.Sprintf("\";%s=\" + ", p.Name), ",")
		case style == spec.StyleLabel && explode:
			fmt.Fprintf(buf, "\t%s := \"\"\n", varName)
			fmt.Fprintf(buf, "\tfor _, v := range %s {\n", arg)
			fmt.Fprintf(buf, "\t\t%s += \".\" + escapePath(fmt.Sprint(v), %s)\n", varName, reserved)
			buf.WriteString("\t}\n")
		case style == spec.StyleLabel:
			writeJoinedElems(buf, varName, arg, reserved, "\".\" + ", ",")
		default: // simple
			writeJoinedElems(buf, varName, arg, reserved, "", ",")
		}
	case "map":
		switch {
		case style == spec.StyleMatrix && explode:
			fmt.Fprintf(buf, "\t%s := \"\"\n", varName)
			fmt.Fprintf(buf, "\tfor _, k := range sortedKeys(%s) {\n", arg)
			fmt.Fprintf(buf, "\t\t%s += \";\" + escapePath(k, %s) + \"=\" + escapePath(fmt.Sprint(%s[k]), %s)\n", varName, reserved, arg, reserved)
			buf.WriteString("\t}\n")
		case style == spec.StyleMatrix:
			writeJoinedEntries(buf, varName, arg, reserved, fmt.Sprintf("\";%s=\" + ", p.Name), ",", ",")
		case style == spec.StyleLabel && explode:
			fmt.Fprintf(buf, "\t%s := \"\"\n", varName)
			fmt.Fprintf(buf, "\tfor _, k := range sortedKeys(%s) {\n", arg)
			fmt.Fprintf(buf, "\t\t%s += \".\" + escapePath(k, %s) + \"=\" + escapePath(fmt.Sprint(%s[k]), %s)\n", varName, reserved, arg, reserved)
			buf.WriteString("\t}\n")
		case style == spec.StyleLabel:
			writeJoinedEntries(buf, varName, arg, reserved, "\".\" + ", ",", ",")
		case explode: // simple exploded object: comma-joined key=value
			writeJoinedEntries(buf, varName, arg, reserved, "", "=", ",")
		default:
			writeJoinedEntries(buf, varName, arg, reserved, "", ",", ",")
		}
	default:
		prefix := ""
		switch style {
		case spec.StyleMatrix:
			prefix = fmt.Sprintf("\";%s=\" + ", p.Name)
		case spec.StyleLabel:
			prefix = "\".\" + "
		}
		fmt.Fprintf(buf, "\t%s := %sescapePath(fmt.Sprint(%s), %s)\n", varName, prefix, arg, reserved)
	}
}

// writeJoinedElems emits a collapsed list rendering: escaped elements joined
// by sep, with an optional prefix expression.
func writeJoinedElems(buf *bytes.Buffer, varName, arg, reserved, prefix, sep string) {
	fmt.Fprintf(buf, "\t%sParts := make([]string, 0, len(%s))\n", varName, arg)
	fmt.Fprintf(buf, "\tfor _, v := range %s {\n", arg)
	fmt.Fprintf(buf, "\t\t%sParts = append(%sParts, escapePath(fmt.Sprint(v), %s))\n", varName, varName, reserved)
	buf.WriteString("\t}\n")
	fmt.Fprintf(buf, "\t%s := %sstrings.Join(%sParts, %q)\n", varName, prefix, varName, sep)
}

// writeJoinedEntries emits a collapsed map rendering: key/value pairs joined
// pairwise by kvSep and between entries by sep.
func writeJoinedEntries(buf *bytes.Buffer, varName, arg, reserved, prefix, kvSep, sep string) {
	fmt.Fprintf(buf, "\t%sParts := make([]string, 0, len(%s)*2)\n", varName, arg)
	fmt.Fprintf(buf, "\tfor _, k := range sortedKeys(%s) {\n", arg)
	fmt.Fprintf(buf, "\t\t%sParts = append(%sParts, escapePath(k, %s)+%q+escapePath(fmt.Sprint(%s[k]), %s))\n",
		varName, varName, reserved, kvSep, arg, reserved)
	buf.WriteString("\t}\n")
	fmt.Fprintf(buf, "\t%s := %sstrings.Join(%sParts, %q)\n", varName, prefix, varName, sep)
}

// writeQuerystringBinding emits the raw query assignment for a querystring
// parameter, which replaces ordinary query assembly wholesale.
func writeQuerystringBinding(buf *bytes.Buffer, info *paramInfo) {
	buf.WriteString("\trawQuery := \"\"\n")
	if info.optional {
		fmt.Fprintf(buf, "\tif %s != nil {\n", info.argName)
		fmt.Fprintf(buf, "\t\trawQuery = *%s\n", info.argName)
		buf.WriteString("\t}\n")
	} else {
		fmt.Fprintf(buf, "\trawQuery = %s\n", info.argName)
	}
}

// writeQueryBinding emits the query-string bindings for one parameter,
// branching at generation time on style, explode, and value shape.
func writeQueryBinding(buf *bytes.Buffer, info *paramInfo) {
	indent := "\t"
	val := info.argName
	if info.optional {
		fmt.Fprintf(buf, "\tif %s != nil {\n", info.argName)
		indent = "\t\t"
		if info.contentType == "" {
			val = "(*" + info.argName + ")"
		}
	}
	writeQueryValue(buf, indent, val, info)
	if info.optional {
		buf.WriteString("\t}\n")
	}
}

func writeQueryValue(buf *bytes.Buffer, indent, val string, info *paramInfo) {
	p := info.param
	style := p.EffectiveStyle()
	explode := p.ExplodeEnabled()
	reserved := fmt.Sprintf("%t", p.AllowReserved)

	if info.contentType != "" {
		fmt.Fprintf(buf, "%sqs = append(qs, queryPair(%q, %sValue, %s))\n", indent, p.Name, info.argName, reserved)
		return
	}

	switch info.kind {
	case "array":
		if explode && style != spec.StyleDeepObject {
			fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
			fmt.Fprintf(buf, "%s\tqs = append(qs, queryPair(%q, fmt.Sprint(v), %s))\n", indent, p.Name, reserved)
			fmt.Fprintf(buf, "%s}\n", indent)
			return
		}
		sep := ","
		switch style {
		case spec.StylePipeDelimited:
			sep = "|"
		case spec.StyleSpaceDelimited:
			sep = " "
		}
		pvar := info.argName + "Parts"
		fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s))\n", indent, pvar, val)
		fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\t%s = append(%s, fmt.Sprint(v))\n", indent, pvar, pvar)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sqs = append(qs, queryPair(%q, strings.Join(%s, %q), %s))\n", indent, p.Name, pvar, sep, reserved)
	case "map":
		switch {
		case style == spec.StyleDeepObject:
			fmt.Fprintf(buf, "%sfor _, k := range sortedKeys(%s) {\n", indent, val)
			fmt.Fprintf(buf, "%s\tqs = append(qs, queryPair(%q+\"[\"+k+\"]\", fmt.Sprint(%s[k]), %s))\n", indent, p.Name, val, reserved)
			fmt.Fprintf(buf, "%s}\n", indent)
		case explode:
			fmt.Fprintf(buf, "%sfor _, k := range sortedKeys(%s) {\n", indent, val)
			fmt.Fprintf(buf, "%s\tqs = append(qs, queryPair(k, fmt.Sprint(%s[k]), %s))\n", indent, val, reserved)
			fmt.Fprintf(buf, "%s}\n", indent)
		default:
			pvar := info.argName + "Parts"
			fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s)*2)\n", indent, pvar, val)
			fmt.Fprintf(buf, "%sfor _, k := range sortedKeys(%s) {\n", indent, val)
			fmt.Fprintf(buf, "%s\t%s = append(%s, k, fmt.Sprint(%s[k]))\n", indent, pvar, pvar, val)
			fmt.Fprintf(buf, "%s}\n", indent)
			fmt.Fprintf(buf, "%sqs = append(qs, queryPair(%q, strings.Join(%s, \",\"), %s))\n", indent, p.Name, pvar, reserved)
		}
	default:
		if p.AllowEmptyValue {
			fmt.Fprintf(buf, "%sif fmt.Sprint(%s) == \"\" {\n", indent, val)
			fmt.Fprintf(buf, "%s\tqs = append(qs, url.QueryEscape(%q))\n", indent, p.Name)
			fmt.Fprintf(buf, "%s} else {\n", indent)
			fmt.Fprintf(buf, "%s\tqs = append(qs, queryPair(%q, fmt.Sprint(%s), %s))\n", indent, p.Name, val, reserved)
			fmt.Fprintf(buf, "%s}\n", indent)
			return
		}
		fmt.Fprintf(buf, "%sqs = append(qs, queryPair(%q, fmt.Sprint(%s), %s))\n", indent, p.Name, val, reserved)
	}
}

func writeHeaderBinding(buf *bytes.Buffer, info *paramInfo) {
	p := info.param
	explode := p.ExplodeEnabled()
	indent := "\t"
	val := info.argName
	if info.optional {
		fmt.Fprintf(buf, "\tif %s != nil {\n", info.argName)
		indent = "\t\t"
		if info.contentType == "" {
			val = "(*" + info.argName + ")"
		}
	}
	switch {
	case info.contentType != "":
		fmt.Fprintf(buf, "%sreq.Header.Set(%q, %sValue)\n", indent, p.Name, info.argName)
	case info.kind == "array" && explode:
		fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\treq.Header.Add(%q, fmt.Sprint(v))\n", indent, p.Name)
		fmt.Fprintf(buf, "%s}\n", indent)
	case info.kind == "array":
		pvar := info.argName + "Parts"
		fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s))\n", indent, pvar, val)
		fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\t%s = append(%s, fmt.Sprint(v))\n", indent, pvar, pvar)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sreq.Header.Set(%q, strings.Join(%s, \",\"))\n", indent, p.Name, pvar)
	case info.kind == "map":
		kvSep := ","
		if explode {
			kvSep = "="
		}
		pvar := info.argName + "Parts"
		fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s))\n", indent, pvar, val)
		fmt.Fprintf(buf, "%sfor _, k := range sortedKeys(%s) {\n", indent, val)
		fmt.Fprintf(buf, "%s\t%s = append(%s, k+%q+fmt.Sprint(%s[k]))\n", indent, pvar, pvar, kvSep, val)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sreq.Header.Set(%q, strings.Join(%s, \",\"))\n", indent, p.Name, pvar)
	default:
		fmt.Fprintf(buf, "%sreq.Header.Set(%q, fmt.Sprint(%s))\n", indent, p.Name, val)
	}
	if info.optional {
		buf.WriteString("\t}\n")
	}
}

func writeCookieBinding(buf *bytes.Buffer, info *paramInfo) {
	p := info.param
	explode := p.ExplodeEnabled()
	indent := "\t"
	val := info.argName
	if info.optional {
		fmt.Fprintf(buf, "\tif %s != nil {\n", info.argName)
		indent = "\t\t"
		if info.contentType == "" {
			val = "(*" + info.argName + ")"
		}
	}
	switch {
	case info.contentType != "":
		fmt.Fprintf(buf, "%sreq.AddCookie(&http.Cookie{Name: %q, Value: %sValue})\n", indent, p.Name, info.argName)
	case info.kind == "array" && explode:
		fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\treq.AddCookie(&http.Cookie{Name: %q, Value: fmt.Sprint(v)})\n", indent, p.Name)
		fmt.Fprintf(buf, "%s}\n", indent)
	case info.kind == "array":
		pvar := info.argName + "Parts"
		fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s))\n", indent, pvar, val)
		fmt.Fprintf(buf, "%sfor _, v := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\t%s = append(%s, fmt.Sprint(v))\n", indent, pvar, pvar)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sreq.AddCookie(&http.Cookie{Name: %q, Value: strings.Join(%s, \",\")})\n", indent, p.Name, pvar)
	case info.kind == "map":
		pvar := info.argName + "Parts"
		fmt.Fprintf(buf, "%s%s := make([]string, 0, len(%s))\n", indent, pvar, val)
		fmt.Fprintf(buf, "%sfor _, k := range sortedKeys(%s) {\n", indent, val)
		fmt.Fprintf(buf, "%s\t%s = append(%s, k+\",\"+fmt.Sprint(%s[k]))\n", indent, pvar, pvar, val)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sreq.AddCookie(&http.Cookie{Name: %q, Value: strings.Join(%s, \",\")})\n", indent, p.Name, pvar)
	default:
		fmt.Fprintf(buf, "%sreq.AddCookie(&http.Cookie{Name: %q, Value: fmt.Sprint(%s)})\n", indent, p.Name, val)
	}
	if info.optional {
		buf.WriteString("\t}\n")
	}
}

// writeBodyEncoding emits bodyReader and contentType assembly for the request
// body, branching on the chosen media type class.
func writeBodyEncoding(buf *bytes.Buffer, opName string, ep *spec.Endpoint, cfg *config) {
	buf.WriteString("\tvar bodyReader io.Reader\n")
	if ep.RequestBody == nil {
		return
	}
	mt, media := chooseBodyMedia(ep.RequestBody)
	buf.WriteString("\tcontentType := \"\"\n")

	indent := "\t"
	val := "body"
	if !ep.RequestBody.Required {
		buf.WriteString("\tif body != nil {\n")
		indent = "\t\t"
		val = "(*body)"
	}

	contentTypeValue := mt
	if httputil.HasWildcardSubtype(mt) {
		// Wildcard subtypes serialize the body but set no explicit header.
		contentTypeValue = ""
	}

	switch {
	case httputil.IsSequentialJSONMediaType(mt):
		fmt.Fprintf(buf, "%svar lines strings.Builder\n", indent)
		fmt.Fprintf(buf, "%sfor _, item := range %s {\n", indent, val)
		fmt.Fprintf(buf, "%s\tline, err := json.Marshal(item)\n", indent)
		fmt.Fprintf(buf, "%s\tif err != nil {\n", indent)
		fmt.Fprintf(buf, "%s\t\treturn out, &ClientError{Op: %q, Err: err}\n", indent, opName)
		fmt.Fprintf(buf, "%s\t}\n", indent)
		fmt.Fprintf(buf, "%s\tlines.Write(line)\n", indent)
		fmt.Fprintf(buf, "%s\tlines.WriteByte('\\n')\n", indent)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sbodyReader = strings.NewReader(lines.String())\n", indent)
		fmt.Fprintf(buf, "%scontentType = %q\n", indent, contentTypeValue)
	case httputil.IsFormMediaType(mt):
		writeEncodingOpts(buf, indent, "formOpts", "formFieldOpt", media)
		fmt.Fprintf(buf, "%sformBody, err := encodeForm(%s, formOpts)\n", indent, val)
		fmt.Fprintf(buf, "%sif err != nil {\n", indent)
		fmt.Fprintf(buf, "%s\treturn out, &ClientError{Op: %q, Err: err}\n", indent, opName)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sbodyReader = strings.NewReader(formBody)\n", indent)
		fmt.Fprintf(buf, "%scontentType = %q\n", indent, contentTypeValue)
	case httputil.IsMultipartMediaType(mt):
		writeEncodingOpts(buf, indent, "multipartOpts", "multipartFieldOpt", media)
		fmt.Fprintf(buf, "%smpBody, mpContentType, err := encodeMultipart(%s, multipartOpts)\n", indent, val)
		fmt.Fprintf(buf, "%sif err != nil {\n", indent)
		fmt.Fprintf(buf, "%s\treturn out, &ClientError{Op: %q, Err: err}\n", indent, opName)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sbodyReader = bytes.NewReader(mpBody)\n", indent)
		fmt.Fprintf(buf, "%scontentType = mpContentType\n", indent)
	default:
		fmt.Fprintf(buf, "%spayload, err := json.Marshal(%s)\n", indent, val)
		fmt.Fprintf(buf, "%sif err != nil {\n", indent)
		fmt.Fprintf(buf, "%s\treturn out, &ClientError{Op: %q, Err: err}\n", indent, opName)
		fmt.Fprintf(buf, "%s}\n", indent)
		fmt.Fprintf(buf, "%sbodyReader = bytes.NewReader(payload)\n", indent)
		fmt.Fprintf(buf, "%scontentType = %q\n", indent, contentTypeValue)
	}

	if !ep.RequestBody.Required {
		buf.WriteString("\t}\n")
	}
}

// writeEncodingOpts renders the per-field serialization overrides declared in
// the media type's encoding map as a literal, keys in sorted order.
func writeEncodingOpts(buf *bytes.Buffer, indent, varName, optType string, media *spec.MediaType) {
	if media == nil || len(media.Encoding) == 0 {
		fmt.Fprintf(buf, "%s%s := map[string]%s{}\n", indent, varName, optType)
		return
	}
	fmt.Fprintf(buf, "%s%s := map[string]%s{\n", indent, varName, optType)
	for _, name := range maputil.SortedKeys(media.Encoding) {
		enc := media.Encoding[name]
		if enc == nil {
			continue
		}
		explode := true
		if enc.Explode != nil {
			explode = *enc.Explode
		}
		if optType == "multipartFieldOpt" {
			fmt.Fprintf(buf, "%s\t%q: {ContentType: %q},\n", indent, name, enc.ContentType)
		} else {
			fmt.Fprintf(buf, "%s\t%q: {Style: %q, Explode: %t, AllowReserved: %t},\n",
				indent, name, enc.Style, explode, enc.AllowReserved)
		}
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

// writeResponseDecode emits decoding of the success response into out.
func writeResponseDecode(buf *bytes.Buffer, opName string, ep *spec.Endpoint, outType string) {
	mt, schema := chooseResponse(ep)
	if schema == nil {
		buf.WriteString("\t_, _ = io.Copy(io.Discard, resp.Body)\n")
		return
	}
	switch {
	case httputil.IsSequentialJSONMediaType(mt):
		// One JSON value per line; stream-decode them all.
		elem := strings.TrimPrefix(outType, "[]")
		buf.WriteString("\tdec := json.NewDecoder(resp.Body)\n")
		buf.WriteString("\tfor {\n")
		fmt.Fprintf(buf, "\t\tvar item %s\n", elem)
		buf.WriteString("\t\tif err := dec.Decode(&item); err != nil {\n")
		buf.WriteString("\t\t\tif errors.Is(err, io.EOF) {\n")
		buf.WriteString("\t\t\t\tbreak\n")
		buf.WriteString("\t\t\t}\n")
		fmt.Fprintf(buf, "\t\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Err: err}\n", opName)
		buf.WriteString("\t\t}\n")
		buf.WriteString("\t\tout = append(out, item)\n")
		buf.WriteString("\t}\n")
	case httputil.IsJSONMediaType(mt):
		buf.WriteString("\tif err := json.NewDecoder(resp.Body).Decode(&out); err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Err: err}\n", opName)
		buf.WriteString("\t}\n")
	case outType == "[]byte":
		buf.WriteString("\tdata, err := io.ReadAll(resp.Body)\n")
		buf.WriteString("\tif err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Err: err}\n", opName)
		buf.WriteString("\t}\n")
		buf.WriteString("\tout = data\n")
	case outType == "string":
		buf.WriteString("\tdata, err := io.ReadAll(resp.Body)\n")
		buf.WriteString("\tif err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Err: err}\n", opName)
		buf.WriteString("\t}\n")
		buf.WriteString("\tout = string(data)\n")
	default:
		buf.WriteString("\tif err := json.NewDecoder(resp.Body).Decode(&out); err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn out, &ClientError{Op: %q, StatusCode: resp.StatusCode, Err: err}\n", opName)
		buf.WriteString("\t}\n")
	}
}
