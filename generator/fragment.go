package generator

import (
	"fmt"

	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
)

// GenerateField renders one schema property as a single struct field line,
// pointer-typed and omitted when empty. Patching an existing struct cannot
// know the original required set, so merged fields are always optional.
func GenerateField(propName string, prop *spec.Schema, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("generator: invalid options: %w", err)
	}
	if propName == "" {
		return "", stitcherrors.Validationf("", "name", "property has no name")
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}
	buf := engine.GetBuffer()
	defer engine.PutBuffer(buf)

	// An empty parent marks the property as not required, forcing the
	// pointer form.
	if err := writeStructField(buf, &spec.Schema{}, propName, prop, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateMethod renders one endpoint as a standalone client method fragment:
// the tagged doc comment plus the method declaration, formatted.
func GenerateMethod(doc *spec.Document, ep *spec.Endpoint, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("generator: invalid options: %w", err)
	}
	if ep == nil {
		return "", stitcherrors.Validationf("", "endpoint", "endpoint is required")
	}
	if cfg.components == nil && doc != nil {
		cfg.components = doc.Components
	}
	if err := validateEndpoints([]*spec.Endpoint{ep}); err != nil {
		return "", err
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}
	buf := engine.GetBuffer()
	defer engine.PutBuffer(buf)

	if err := writeClientMethod(buf, doc, ep, cfg); err != nil {
		return "", err
	}
	if !cfg.format {
		return buf.String(), nil
	}
	formatted, err := engine.FormatFragment(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generator: %w", err)
	}
	return string(formatted), nil
}

// GenerateMethodSignature renders the endpoint's interface entry, without
// leading indentation or trailing newline.
func GenerateMethodSignature(ep *spec.Endpoint, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("generator: invalid options: %w", err)
	}
	if ep == nil {
		return "", stitcherrors.Validationf("", "endpoint", "endpoint is required")
	}
	return methodSignature(ep, cfg)
}

// MethodName reports the client method name an endpoint generates under, the
// operationId in PascalCase when present.
func MethodName(ep *spec.Endpoint) string {
	return methodNameForEndpoint(ep)
}

// TypeName reports the Go declaration name a schema name generates under.
func TypeName(name string) string {
	return toTypeName(name)
}
