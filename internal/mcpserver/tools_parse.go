package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/restitch/restitch/parser"
)

// sourceInput is a Go source text provided either inline or as a file path.
type sourceInput struct {
	Source     string `json:"source,omitempty"      jsonschema:"Inline Go source text"`
	SourceFile string `json:"source_file,omitempty" jsonschema:"Path to a Go source file on disk"`
}

func (s sourceInput) read() (string, error) {
	switch {
	case s.Source != "" && s.SourceFile != "":
		return "", fmt.Errorf("provide source or source_file, not both")
	case s.Source != "":
		if int64(len(s.Source)) > cfg.MaxInlineSize {
			return "", fmt.Errorf("inline source size %d bytes exceeds maximum %d bytes", len(s.Source), cfg.MaxInlineSize)
		}
		return s.Source, nil
	case s.SourceFile != "":
		data, err := os.ReadFile(s.SourceFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("one of source or source_file is required")
	}
}

type parseSourceInput struct {
	sourceInput
}

type schemaSummary struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	PropertyCount int    `json:"property_count,omitempty"`
	EnumCount     int    `json:"enum_count,omitempty"`
}

type endpointSummary struct {
	OperationID string `json:"operation_id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Summary     string `json:"summary,omitempty"`
}

type parseSourceOutput struct {
	SchemaCount   int               `json:"schema_count"`
	EndpointCount int               `json:"endpoint_count"`
	Schemas       []schemaSummary   `json:"schemas,omitempty"`
	Endpoints     []endpointSummary `json:"endpoints,omitempty"`
	APITitle      string            `json:"api_title,omitempty"`
	APIVersion    string            `json:"api_version,omitempty"`
}

func handleParseSource(_ context.Context, _ *mcp.CallToolRequest, input parseSourceInput) (*mcp.CallToolResult, parseSourceOutput, error) {
	src, err := input.read()
	if err != nil {
		return errResult(err), parseSourceOutput{}, nil
	}

	schemas, err := parser.ParseDto(src)
	if err != nil {
		return errResult(err), parseSourceOutput{}, nil
	}
	model, err := parser.ParseClient(src)
	if err != nil {
		return errResult(err), parseSourceOutput{}, nil
	}

	output := parseSourceOutput{
		SchemaCount:   len(schemas),
		EndpointCount: len(model.Endpoints),
	}
	if model.Info != nil {
		output.APITitle = model.Info.Title
		output.APIVersion = model.Info.Version
	}

	output.Schemas = makeSlice[schemaSummary](len(schemas))
	for _, s := range schemas {
		output.Schemas = append(output.Schemas, schemaSummary{
			Name:          s.Name,
			Type:          s.PrimaryType(),
			PropertyCount: s.Properties.Len(),
			EnumCount:     len(s.Enum),
		})
	}

	output.Endpoints = makeSlice[endpointSummary](len(model.Endpoints))
	for _, ep := range model.Endpoints {
		output.Endpoints = append(output.Endpoints, endpointSummary{
			OperationID: ep.OperationID,
			Method:      ep.Verb(),
			Path:        ep.Path,
			Summary:     ep.Summary,
		})
	}

	return nil, output, nil
}
