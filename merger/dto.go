package merger

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/restitch/restitch/generator"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
)

// MergeDto patches an existing Go source text with the schema's properties
// that the named struct declaration does not yet carry. New fields are
// appended before the struct's closing brace, pointer-typed and tagged
// ",omitempty". Every byte outside the insertion point is returned unchanged;
// when no property is missing the input comes back byte-identical.
//
// The declaration must exist (stitcherrors.ErrNotFound otherwise) and must be
// a struct with a field list (stitcherrors.ErrMalformedSource otherwise).
func MergeDto(existing string, schema *spec.Schema, opts ...Option) (string, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return "", fmt.Errorf("merger: invalid options: %w", err)
	}
	if schema == nil {
		return "", stitcherrors.Validationf("", "schema", "schema is required")
	}
	if schema.Name == "" {
		return "", stitcherrors.Validationf("", "name", "schema has no name to merge into")
	}

	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	file, base, err := parseSource(engine, "existing.go", existing)
	if err != nil {
		return "", err
	}

	declName := generator.TypeName(schema.Name)
	ts := findTypeSpec(file, declName)
	if ts == nil && declName != schema.Name {
		ts = findTypeSpec(file, schema.Name)
	}
	if ts == nil {
		return "", &stitcherrors.NotFoundError{
			Declaration: declName,
			Message:     "type declaration not found",
		}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return "", &stitcherrors.MalformedSourceError{
			Declaration: declName,
			Message:     "declaration is not a struct with a field list",
		}
	}

	present := map[string]bool{}
	for _, field := range st.Fields.List {
		name, skip := serializedFieldName(field)
		if !skip {
			present[name] = true
		}
	}

	var missing []string
	for _, propName := range schema.Properties.Keys() {
		if !present[propName] {
			missing = append(missing, propName)
		}
	}
	if len(missing) == 0 {
		return existing, nil
	}

	fields := make([]string, 0, len(missing))
	for _, propName := range missing {
		field, err := generator.GenerateField(propName, schema.Properties.Get(propName),
			generator.WithEngine(engine))
		if err != nil {
			return "", fmt.Errorf("merger: render field %s: %w", propName, err)
		}
		fields = append(fields, field)
	}

	at := engine.Offset(st.Fields.Closing) - base
	if at < 0 || at > len(existing) {
		return "", &stitcherrors.MalformedSourceError{
			Declaration: declName,
			Message:     "could not locate struct closing brace",
		}
	}

	cfg.logger.Info("merged struct fields", "declaration", declName, "added", len(missing))
	return existing[:at] + "\n" + strings.Join(fields, "\n") + existing[at:], nil
}
