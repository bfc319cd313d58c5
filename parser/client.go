package parser

import (
	"go/ast"
	"strings"

	"github.com/restitch/restitch/internal/doctags"
	"github.com/restitch/restitch/spec"
)

// ClientModel is the document fragment recovered from a generated client
// file: root metadata from the file header plus one endpoint per generated
// method.
type ClientModel struct {
	// Info carries the API title and version from the header tags.
	Info *spec.Info
	// Servers are the document-level servers from @server header tags.
	Servers []*spec.Server
	// Endpoints are the recovered operations, in declaration order.
	Endpoints []*spec.Endpoint
}

// responseTagPayload mirrors the generator's @response tag wire form.
type responseTagPayload struct {
	Status   string         `json:"status"`
	Response *spec.Response `json:"response"`
}

// callbackTagPayload mirrors the generator's @callback tag wire form.
type callbackTagPayload struct {
	Name     string         `json:"name"`
	PathItem *spec.PathItem `json:"pathItem"`
}

// ParseClient reads a generated client file back into endpoints and root
// metadata. Methods without an @operationId tag are treated as hand-written
// and skipped.
func ParseClient(src string, opts ...Option) (*ClientModel, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	file, err := parseSource(engine, "client.go", src)
	if err != nil {
		return nil, err
	}

	model := &ClientModel{}
	parseHeader(file.Doc, model)

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Doc == nil {
			continue
		}
		ep := endpointFromDoc(fn.Name.Name, fn.Doc)
		if ep == nil {
			cfg.logger.Debug("skipped method", "name", fn.Name.Name)
			continue
		}
		model.Endpoints = append(model.Endpoints, ep)
	}
	return model, nil
}

// parseHeader recovers the root metadata tags from the file's doc comment.
func parseHeader(doc *ast.CommentGroup, model *ClientModel) {
	_, tags, _ := splitDocComment(doc)
	for _, tag := range tags {
		switch tag.Name {
		case "apiTitle":
			if model.Info == nil {
				model.Info = &spec.Info{}
			}
			model.Info.Title = doctags.DecodeValue(tag.Value)
		case "apiVersion":
			if model.Info == nil {
				model.Info = &spec.Info{}
			}
			model.Info.Version = doctags.DecodeValue(tag.Value)
		case "server":
			var srv *spec.Server
			if doctags.DecodeJSONValue(tag.Value, &srv) == nil && srv != nil {
				model.Servers = append(model.Servers, srv)
			}
		}
	}
}

// endpointFromDoc reconstructs one endpoint from a method's doc comment, or
// returns nil when the method carries no @operationId tag.
func endpointFromDoc(methodName string, doc *ast.CommentGroup) *spec.Endpoint {
	heading, tags, deprecated := splitDocComment(doc)

	hasOperationID := false
	for _, tag := range tags {
		if tag.Name == "operationId" {
			hasOperationID = true
			break
		}
	}
	if !hasOperationID {
		return nil
	}

	ep := &spec.Endpoint{Deprecated: deprecated}
	for _, tag := range tags {
		applyEndpointTag(ep, tag)
	}
	applyHeading(ep, methodName, heading)
	return ep
}

func applyEndpointTag(ep *spec.Endpoint, tag doctags.Tag) {
	value := doctags.DecodeValue(tag.Value)
	switch tag.Name {
	case "operationId":
		ep.OperationID = value
	case "operationIdDerived":
		ep.OperationIDDerived = value == "true"
	case "method":
		ep.Method = spec.Method(value)
	case "customVerb":
		ep.CustomVerb = value
	case "path":
		ep.Path = value
	case "tags":
		doctags.DecodeJSONValue(tag.Value, &ep.Tags)
	case "deprecated":
		if value == "true" {
			ep.Deprecated = true
		}
	case "externalDocs":
		doctags.DecodeJSONValue(tag.Value, &ep.ExternalDocs)
	case "description":
		ep.Description = value
	case "param":
		var p *spec.Parameter
		if doctags.DecodeJSONValue(tag.Value, &p) == nil && p != nil {
			ep.Parameters = append(ep.Parameters, p)
		}
	case "requestBody":
		doctags.DecodeJSONValue(tag.Value, &ep.RequestBody)
	case "response":
		var payload responseTagPayload
		if doctags.DecodeJSONValue(tag.Value, &payload) == nil && payload.Status != "" {
			if ep.Responses == nil {
				ep.Responses = map[string]*spec.Response{}
			}
			ep.Responses[payload.Status] = payload.Response
		}
	case "callback":
		var payload callbackTagPayload
		if doctags.DecodeJSONValue(tag.Value, &payload) == nil && payload.Name != "" {
			if ep.Callbacks == nil {
				ep.Callbacks = map[string]*spec.PathItem{}
			}
			ep.Callbacks[payload.Name] = payload.PathItem
		}
	case "securityEmpty":
		ep.SecurityExplicitEmpty = value == "true"
	case "security":
		doctags.DecodeJSONValue(tag.Value, &ep.Security)
	case "server":
		var srv *spec.Server
		if doctags.DecodeJSONValue(tag.Value, &srv) == nil && srv != nil {
			ep.Servers = append(ep.Servers, srv)
		}
	default:
		var v any
		if doctags.DecodeJSONValue(tag.Value, &v) != nil {
			v = value
		}
		if ep.Extra == nil {
			ep.Extra = map[string]any{}
		}
		ep.Extra[tag.Name] = v
	}
}

// applyHeading recovers summary and description from the plain doc lines.
// The synthesized "calls VERB path" heading the generator writes for
// summary-less endpoints is not a real summary and is dropped.
func applyHeading(ep *spec.Endpoint, methodName string, heading []string) {
	if len(heading) == 0 {
		return
	}
	first := strings.TrimPrefix(heading[0], methodName+" ")
	synthesized := "calls " + ep.Verb() + " " + ep.Path + "."
	if first != synthesized && first != heading[0] {
		ep.Summary = first
	}
	if len(heading) > 1 && ep.Description == "" {
		ep.Description = strings.Join(heading[1:], " ")
	}
}
