package parser

import (
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/restitch/restitch/internal/doctags"
	"github.com/restitch/restitch/internal/gosrc"
	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
	"github.com/restitch/restitch/typemap"
)

// ParseDto reads Go type declarations back into schemas, in declaration
// order. Structs become object schemas, string types with const blocks become
// enums, single-marker-method interfaces become unions, and other defined
// types or aliases map through the inverse type table. Declarations in no
// recognizable shape are skipped, so hand-written code can share the file.
func ParseDto(src string, opts ...Option) ([]*spec.Schema, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	engine, owned := cfg.engineFor()
	if owned {
		defer engine.Close()
	}

	file, err := parseSource(engine, "dto.go", src)
	if err != nil {
		return nil, err
	}

	var schemas []*spec.Schema
	byName := map[string]*spec.Schema{}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, s := range gen.Specs {
				ts, ok := s.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				schema := schemaFromTypeSpec(ts, doc)
				if schema == nil {
					cfg.logger.Debug("skipped declaration", "name", ts.Name.Name)
					continue
				}
				schemas = append(schemas, schema)
				byName[schema.Name] = schema
			}
		case token.CONST:
			collectEnumConsts(gen, byName)
		}
	}
	return schemas, nil
}

// parseSource parses Go text that may be either a full file or a bare
// declaration list, as produced by the record generator.
func parseSource(engine *gosrc.Engine, filename, src string) (*ast.File, error) {
	file, err := engine.ParseFile(filename, src)
	if err == nil {
		return file, nil
	}
	if errorsIsClosed(err) {
		return nil, err
	}
	// Declaration fragments carry no package clause; retry with one.
	file, retryErr := engine.ParseFile(filename, "package parsed\n\n"+src)
	if retryErr == nil {
		return file, nil
	}
	return nil, &stitcherrors.MalformedSourceError{
		Message: "source is not parseable Go",
		Cause:   err,
	}
}

func errorsIsClosed(err error) bool {
	return err == gosrc.ErrEngineClosed
}

// schemaFromTypeSpec recognizes one type declaration, or returns nil to skip.
func schemaFromTypeSpec(ts *ast.TypeSpec, doc *ast.CommentGroup) *spec.Schema {
	name := ts.Name.Name
	heading, tags, deprecated := splitDocComment(doc)

	var schema *spec.Schema
	switch t := ts.Type.(type) {
	case *ast.StructType:
		schema = schemaFromStruct(name, t)
	case *ast.InterfaceType:
		schema = schemaFromInterface(name, t, tags)
		if schema == nil {
			return nil
		}
	default:
		expr := types.ExprString(ts.Type)
		schema = schemaFromTypeExpr(expr)
		if schema == nil {
			return nil
		}
	}

	schema.Name = name
	schema.Deprecated = deprecated
	for _, tag := range tags {
		if schema.OneOf != nil && tag.Name == "oneOf" {
			continue // already applied by the interface recognizer
		}
		applySchemaTag(schema, tag)
	}
	if schema.Description == "" {
		schema.Description = headingDescription(heading, name)
	}
	return schema
}

// schemaFromTypeExpr recovers a schema from an alias or defined type's
// underlying expression. The bool-schema aliases emitted as "any" and
// "struct{}" are undone here.
func schemaFromTypeExpr(expr string) *spec.Schema {
	switch expr {
	case "any":
		t := true
		return &spec.Schema{Bool: &t}
	case "struct{}":
		f := false
		return &spec.Schema{Bool: &f}
	}
	if strings.HasPrefix(expr, "func(") || strings.HasPrefix(expr, "chan ") ||
		strings.HasPrefix(expr, "chan<-") || strings.HasPrefix(expr, "<-chan") {
		return nil
	}
	return typemap.SchemaForTypeExpr(expr)
}

func schemaFromStruct(name string, st *ast.StructType) *spec.Schema {
	schema := &spec.Schema{
		Types:      []string{"object"},
		Properties: spec.NewProperties(),
	}
	if st.Fields == nil {
		return schema
	}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// Embedded identifiers are allOf reference members.
			if ident, ok := field.Type.(*ast.Ident); ok {
				schema.AllOf = append(schema.AllOf, &spec.Schema{
					Ref: "#/components/schemas/" + ident.Name,
				})
			}
			continue
		}
		fieldName := field.Names[0].Name
		if !ast.IsExported(fieldName) {
			continue
		}
		propName, skip := jsonPropertyName(field, fieldName)
		if skip {
			continue
		}

		typeExpr := types.ExprString(field.Type)
		pointer := strings.HasPrefix(typeExpr, "*")
		typeExpr = strings.TrimPrefix(typeExpr, "*")

		prop := schemaFromTypeExpr(typeExpr)
		if prop == nil {
			continue
		}

		heading, tags, fieldDeprecated := splitDocComment(field.Doc)
		prop.Deprecated = fieldDeprecated
		hasDefault := false
		for _, tag := range tags {
			if tag.Name == "default" {
				hasDefault = true
			}
			applySchemaTag(prop, tag)
		}
		if prop.Description == "" && len(heading) > 0 {
			prop.Description = strings.Join(heading, " ")
		}

		schema.Properties.Set(propName, prop)
		if !pointer && !hasDefault {
			schema.Required = append(schema.Required, propName)
		}
	}
	return schema
}

// jsonPropertyName resolves the serialized property name: the json tag name
// wins over the Go field name. A "-" tag excludes the field.
func jsonPropertyName(field *ast.Field, fieldName string) (name string, skip bool) {
	if field.Tag == nil {
		return fieldName, false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return fieldName, false
	}
	jsonTag := reflect.StructTag(raw).Get("json")
	if jsonTag == "" {
		return fieldName, false
	}
	tagName, _, _ := strings.Cut(jsonTag, ",")
	if tagName == "-" {
		return "", true
	}
	if tagName == "" {
		return fieldName, false
	}
	return tagName, false
}

// schemaFromInterface recognizes the closed-union shape: an interface whose
// only method is the unexported marker "is<Name>()". Variant membership and
// the discriminator ride in the doc tags.
func schemaFromInterface(name string, it *ast.InterfaceType, tags []doctags.Tag) *spec.Schema {
	if it.Methods == nil || len(it.Methods.List) != 1 {
		return nil
	}
	m := it.Methods.List[0]
	if len(m.Names) != 1 || m.Names[0].Name != "is"+name {
		return nil
	}
	schema := &spec.Schema{}
	for _, tag := range tags {
		if tag.Name == "oneOf" {
			applySchemaTag(schema, tag)
		}
	}
	if len(schema.OneOf) == 0 {
		return nil
	}
	return schema
}

// collectEnumConsts folds typed const declarations into the enum of the
// schema declared for their type.
func collectEnumConsts(gen *ast.GenDecl, byName map[string]*spec.Schema) {
	for _, s := range gen.Specs {
		vs, ok := s.(*ast.ValueSpec)
		if !ok || vs.Type == nil {
			continue
		}
		ident, ok := vs.Type.(*ast.Ident)
		if !ok {
			continue
		}
		schema, ok := byName[ident.Name]
		if !ok || schema.PrimaryType() != "string" {
			continue
		}
		for i, valueName := range vs.Names {
			literal := valueName.Name
			if i < len(vs.Values) {
				if lit, ok := vs.Values[i].(*ast.BasicLit); ok && lit.Kind == token.STRING {
					if unquoted, err := strconv.Unquote(lit.Value); err == nil {
						literal = unquoted
					}
				}
			}
			schema.Enum = append(schema.Enum, literal)
		}
	}
}
