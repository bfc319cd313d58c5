package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/restitch/restitch/generator"
)

type generateInput struct {
	Model       modelInput `json:"model"                   jsonschema:"The model document to generate code from"`
	PackageName string     `json:"package_name,omitempty"  jsonschema:"Go package name for generated code (default: api)"`
	ClientName  string     `json:"client_name,omitempty"   jsonschema:"Go type name for the generated client (default: Client)"`
	OutputDir   string     `json:"output_dir,omitempty"    jsonschema:"Directory to write generated files to; omit to return contents inline"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type issueInfo struct {
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	OutputDir           string              `json:"output_dir,omitempty"`
	PackageName         string              `json:"package_name"`
	FileCount           int                 `json:"file_count"`
	Files               []generatedFileInfo `json:"files"`
	GeneratedTypes      int                 `json:"generated_types"`
	GeneratedOperations int                 `json:"generated_operations"`
	WarningCount        int                 `json:"warning_count"`
	CriticalCount       int                 `json:"critical_count"`
	Issues              []issueInfo         `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	doc, err := input.Model.resolve(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	var opts []generator.Option
	if input.PackageName != "" {
		opts = append(opts, generator.WithPackageName(input.PackageName))
	}
	if input.ClientName != "" {
		opts = append(opts, generator.WithClientName(input.ClientName))
	}

	result, err := generator.Generate(doc, opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:             result.Success,
		OutputDir:           input.OutputDir,
		PackageName:         result.PackageName,
		FileCount:           len(result.Files),
		GeneratedTypes:      result.GeneratedTypes,
		GeneratedOperations: result.GeneratedOperations,
		WarningCount:        result.WarningCount,
		CriticalCount:       result.CriticalCount,
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	output.Issues = makeSlice[issueInfo](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Path:     issue.Path,
			Message:  issue.Message,
			Severity: issue.Severity.String(),
		})
	}

	return nil, output, nil
}

type generateDtoInput struct {
	Model  modelInput `json:"model"  jsonschema:"The model document holding the schema"`
	Schema string     `json:"schema" jsonschema:"Name of the component schema to generate"`
}

type generateDtoOutput struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func handleGenerateDto(ctx context.Context, _ *mcp.CallToolRequest, input generateDtoInput) (*mcp.CallToolResult, generateDtoOutput, error) {
	if input.Schema == "" {
		return errResult(fmt.Errorf("schema is required")), generateDtoOutput{}, nil
	}
	doc, err := input.Model.resolve(ctx)
	if err != nil {
		return errResult(err), generateDtoOutput{}, nil
	}

	schema := doc.Components.Schema(input.Schema)
	if schema == nil {
		return errResult(fmt.Errorf("schema %q not found in components", input.Schema)), generateDtoOutput{}, nil
	}
	named := *schema
	if named.Name == "" {
		named.Name = input.Schema
	}

	var opts []generator.Option
	if doc.Components != nil {
		opts = append(opts, generator.WithComponents(doc.Components))
	}
	src, err := generator.GenerateDto(&named, opts...)
	if err != nil {
		return errResult(err), generateDtoOutput{}, nil
	}
	return nil, generateDtoOutput{Name: named.Name, Source: src}, nil
}
