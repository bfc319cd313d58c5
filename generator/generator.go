package generator

import (
	"fmt"
	"time"

	"github.com/restitch/restitch/internal/gosrc"
	"github.com/restitch/restitch/internal/maputil"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
)

// GeneratedFile is a single generated source file.
type GeneratedFile struct {
	// Name is the file name (e.g. "types.go", "client.go").
	Name string
	// Content is the generated Go source.
	Content []byte
}

// GenerateResult carries the outcome of generating a full client package
// from a document.
type GenerateResult struct {
	// Files contains all generated files.
	Files []GeneratedFile
	// PackageName is the Go package name used in generation.
	PackageName string
	// ClientName is the client type name used in generation.
	ClientName string
	// Issues contains all generation issues, in the order they were found.
	Issues []GenerateIssue
	// InfoCount is the total number of info messages.
	InfoCount int
	// WarningCount is the total number of warnings.
	WarningCount int
	// ErrorCount is the total number of errors.
	ErrorCount int
	// CriticalCount is the total number of critical issues.
	CriticalCount int
	// Success is true if generation completed without critical issues.
	Success bool
	// GenerateTime is the time taken to generate code.
	GenerateTime time.Duration
	// GeneratedTypes is the count of named types generated into types.go.
	GeneratedTypes int
	// GeneratedOperations is the count of endpoint methods generated into
	// client.go.
	GeneratedOperations int
}

// HasCriticalIssues reports whether any critical issues were recorded.
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings reports whether any warnings were recorded.
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil.
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

func (r *GenerateResult) addIssue(path, message string, sev Severity) {
	r.Issues = append(r.Issues, GenerateIssue{Path: path, Message: message, Severity: sev})
	switch sev {
	case SeverityInfo:
		r.InfoCount++
	case SeverityWarning:
		r.WarningCount++
	case SeverityError:
		r.ErrorCount++
	case SeverityCritical:
		r.CriticalCount++
	}
}

// Generator generates a complete client package from a document. The zero
// value is usable; New applies options shared across Generate calls.
type Generator struct {
	opts []Option
}

// New returns a Generator whose options apply to every Generate call.
func New(opts ...Option) *Generator {
	return &Generator{opts: opts}
}

// Generate produces types.go and client.go for doc. Per-call options are
// applied after the Generator's own.
func (g *Generator) Generate(doc *spec.Document, opts ...Option) (*GenerateResult, error) {
	merged := make([]Option, 0, len(g.opts)+len(opts))
	merged = append(merged, g.opts...)
	merged = append(merged, opts...)
	return Generate(doc, merged...)
}

// Generate produces a full client package for doc: a types.go holding a
// declaration per named component schema (sorted by name) and a client.go
// holding the client for every endpoint the document's paths flatten to.
// Validation failures surface as a ValidationError with no files produced.
func Generate(doc *spec.Document, opts ...Option) (*GenerateResult, error) {
	start := time.Now()
	if doc == nil {
		return nil, stitcherrors.Validationf("", "document", "document is required")
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	components := cfg.components
	if components == nil {
		components = doc.Components
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}
	// Children share the engine and resolved components; caller options
	// still apply first so naming choices carry through.
	childOpts := make([]Option, 0, len(opts)+2)
	childOpts = append(childOpts, opts...)
	childOpts = append(childOpts, WithEngine(engine), WithComponents(components))

	result := &GenerateResult{
		PackageName: cfg.packageName,
		ClientName:  cfg.clientName,
	}

	if components != nil && len(components.Schemas) > 0 {
		content, n, err := generateTypesFile(doc, components, cfg, engine, childOpts, result)
		if err != nil {
			return nil, err
		}
		result.GeneratedTypes = n
		result.Files = append(result.Files, GeneratedFile{Name: "types.go", Content: content})
	} else if cfg.includeInfo {
		result.addIssue("components.schemas", "no named schemas; types.go omitted", SeverityInfo)
	}

	endpoints := spec.FlattenAll(doc, nil)
	client, err := GenerateClient(doc, endpoints, childOpts...)
	if err != nil {
		return nil, err
	}
	result.GeneratedOperations = len(endpoints)
	result.Files = append(result.Files, GeneratedFile{Name: "client.go", Content: []byte(client)})

	result.GenerateTime = time.Since(start)
	result.Success = !result.HasCriticalIssues()
	cfg.logger.Info("generation complete",
		"types", result.GeneratedTypes,
		"operations", result.GeneratedOperations,
		"files", len(result.Files),
		"duration", result.GenerateTime)
	return result, nil
}

func generateTypesFile(doc *spec.Document, components *spec.Components, cfg *config, engine *gosrc.Engine, childOpts []Option, result *GenerateResult) ([]byte, int, error) {
	buf := engine.GetBuffer()
	defer engine.PutBuffer(buf)

	if cfg.includeInfo && doc.Info != nil && doc.Info.Title != "" {
		fmt.Fprintf(buf, "// Package %s holds the data types for %s.\n", cfg.packageName, doc.Info.Title)
	}
	fmt.Fprintf(buf, "package %s\n\n", cfg.packageName)

	count := 0
	for _, name := range maputil.SortedKeys(components.Schemas) {
		schema := components.Schemas[name]
		if schema == nil {
			continue
		}
		if schema.Name == "" {
			named := *schema
			named.Name = name
			schema = &named
		}
		decl, err := GenerateDto(schema, childOpts...)
		if err != nil {
			result.addIssue("components.schemas."+name, err.Error(), SeverityCritical)
			continue
		}
		buf.WriteString(decl)
		buf.WriteString("\n")
		count++
	}

	if !cfg.format {
		return append([]byte(nil), buf.Bytes()...), count, nil
	}
	formatted, err := engine.Format("types.go", buf.Bytes())
	if err != nil {
		return nil, 0, fmt.Errorf("format types.go: %w", err)
	}
	return formatted, count, nil
}
