package merger

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/restitch/restitch/generator"
	"github.com/restitch/restitch/parser"
	"github.com/restitch/restitch/spec"
)

// MergeAPI patches an existing generated client with the endpoints it does
// not yet implement. The client interface and the implementation are patched
// independently: missing interface entries are inserted before the
// interface's closing brace, missing methods are appended at end of file.
// Existing method bodies are never touched, so hand edits survive.
func MergeAPI(existing string, endpoints []*spec.Endpoint, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("merger: invalid options: %w", err)
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	file, base, err := parseSource(engine, "client.go", existing)
	if err != nil {
		return "", err
	}

	iface, clientName := findClientInterface(file)
	ifaceMethods := map[string]bool{}
	if iface != nil {
		for _, entry := range iface.Methods.List {
			for _, name := range entry.Names {
				ifaceMethods[name.Name] = true
			}
		}
	}

	implMethods := map[string]bool{}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Recv != nil {
			implMethods[fn.Name.Name] = true
		}
	}

	var missingIface, missingImpl []*spec.Endpoint
	for _, ep := range endpoints {
		if ep == nil {
			continue
		}
		name := generator.MethodName(ep)
		if iface != nil && !ifaceMethods[name] {
			missingIface = append(missingIface, ep)
		}
		if !implMethods[name] {
			missingImpl = append(missingImpl, ep)
		}
	}
	if len(missingIface) == 0 && len(missingImpl) == 0 {
		return existing, nil
	}

	// Base URLs for new methods come from the existing file's header tags.
	doc := &spec.Document{}
	if model, err := parser.ParseClient(existing, parser.WithEngine(engine)); err == nil {
		doc.Info = model.Info
		doc.Servers = model.Servers
	}

	genOpts := []generator.Option{generator.WithEngine(engine)}
	if clientName != "" {
		genOpts = append(genOpts, generator.WithClientName(clientName))
	}

	patched := existing
	if iface != nil && len(missingIface) > 0 {
		at := engine.Offset(iface.Methods.Closing) - base
		var entries strings.Builder
		for _, ep := range missingIface {
			sig, err := generator.GenerateMethodSignature(ep, genOpts...)
			if err != nil {
				return "", fmt.Errorf("merger: render signature for %s: %w", generator.MethodName(ep), err)
			}
			entries.WriteByte('\t')
			entries.WriteString(sig)
			entries.WriteByte('\n')
		}
		patched = patched[:at] + entries.String() + patched[at:]
	}

	if len(missingImpl) > 0 {
		var appended strings.Builder
		appended.WriteString(patched)
		if !strings.HasSuffix(patched, "\n") {
			appended.WriteByte('\n')
		}
		for _, ep := range missingImpl {
			method, err := generator.GenerateMethod(doc, ep, genOpts...)
			if err != nil {
				return "", fmt.Errorf("merger: render method %s: %w", generator.MethodName(ep), err)
			}
			appended.WriteByte('\n')
			appended.WriteString(method)
		}
		patched = appended.String()
	}

	cfg.logger.Info("merged client methods",
		"interfaceEntries", len(missingIface), "methods", len(missingImpl))
	return patched, nil
}

// findClientInterface locates the generated operations interface: a top-level
// interface declaration whose name ends in "Interface". The client name is
// the part before the suffix.
func findClientInterface(file *ast.File) (*ast.InterfaceType, string) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, s := range gen.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}
			iface, ok := ts.Type.(*ast.InterfaceType)
			if ok && strings.HasSuffix(ts.Name.Name, "Interface") && iface.Methods != nil {
				return iface, strings.TrimSuffix(ts.Name.Name, "Interface")
			}
		}
	}
	return nil, ""
}
