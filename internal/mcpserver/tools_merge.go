package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/restitch/restitch/internal/fileutil"
	"github.com/restitch/restitch/merger"
	"github.com/restitch/restitch/spec"
)

type mergeDtoInput struct {
	sourceInput
	Model  modelInput `json:"model"            jsonschema:"The model document holding the schema"`
	Schema string     `json:"schema"           jsonschema:"Name of the component schema to merge"`
	Output string     `json:"output,omitempty" jsonschema:"Path to write the patched source to; omit to return it inline"`
}

type mergeOutput struct {
	Changed bool   `json:"changed"`
	Output  string `json:"output,omitempty"`
	Source  string `json:"source,omitempty"`
}

func handleMergeDto(ctx context.Context, _ *mcp.CallToolRequest, input mergeDtoInput) (*mcp.CallToolResult, mergeOutput, error) {
	if input.Schema == "" {
		return errResult(fmt.Errorf("schema is required")), mergeOutput{}, nil
	}
	src, err := input.read()
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	doc, err := input.Model.resolve(ctx)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	schema := doc.Components.Schema(input.Schema)
	if schema == nil {
		return errResult(fmt.Errorf("schema %q not found in components", input.Schema)), mergeOutput{}, nil
	}

	patched, err := merger.MergeDto(src, schema)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	return finishMerge(input.Output, src, patched)
}

type mergeAPIInput struct {
	sourceInput
	Model  modelInput `json:"model"            jsonschema:"The model document holding the operations"`
	Output string     `json:"output,omitempty" jsonschema:"Path to write the patched source to; omit to return it inline"`
}

func handleMergeAPI(ctx context.Context, _ *mcp.CallToolRequest, input mergeAPIInput) (*mcp.CallToolResult, mergeOutput, error) {
	src, err := input.read()
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	doc, err := input.Model.resolve(ctx)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	endpoints := spec.FlattenAll(doc, nil)
	patched, err := merger.MergeAPI(src, endpoints)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	return finishMerge(input.Output, src, patched)
}

// finishMerge writes the patched text when an output path was given, else
// returns it inline.
func finishMerge(outputPath, original, patched string) (*mcp.CallToolResult, mergeOutput, error) {
	output := mergeOutput{Changed: patched != original}
	if outputPath == "" {
		output.Source = patched
		return nil, output, nil
	}
	if err := os.WriteFile(outputPath, []byte(patched), fileutil.ReadableByAll); err != nil {
		return errResult(fmt.Errorf("failed to write patched source: %w", err)), mergeOutput{}, nil
	}
	output.Output = outputPath
	return nil, output, nil
}
