package merger

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"github.com/restitch/restitch/internal/gosrc"
	"github.com/restitch/restitch/stitcherrors"
)

// fragmentClause is prepended when the input carries no package clause, so
// bare declaration lists merge like full files. Offsets reported against the
// retried parse shift by its length.
const fragmentClause = "package patched\n\n"

// parseSource parses src, retrying bare declaration fragments with a
// synthetic package clause. base is the byte count the retry prepended;
// subtract it from engine offsets to index the original text.
func parseSource(engine *gosrc.Engine, filename, src string) (file *ast.File, base int, err error) {
	file, err = engine.ParseFile(filename, src)
	if err == nil {
		return file, 0, nil
	}
	if err == gosrc.ErrEngineClosed {
		return nil, 0, err
	}
	file, retryErr := engine.ParseFile(filename, fragmentClause+src)
	if retryErr == nil {
		return file, len(fragmentClause), nil
	}
	return nil, 0, &stitcherrors.MalformedSourceError{
		Message: "source is not parseable Go",
		Cause:   err,
	}
}

// findTypeSpec locates a top-level type declaration by name.
func findTypeSpec(file *ast.File, name string) *ast.TypeSpec {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, s := range gen.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

// serializedFieldName resolves a field's wire name: the json tag name wins
// over the Go field name. Embedded fields and "-" tags report skip.
func serializedFieldName(field *ast.Field) (name string, skip bool) {
	if len(field.Names) == 0 {
		return "", true
	}
	fieldName := field.Names[0].Name
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
