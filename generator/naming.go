package generator

import (
	"strings"
	"unicode"

	"github.com/restitch/restitch/spec"
)

// maxDescriptionLength caps descriptions rendered into Go comments.
const maxDescriptionLength = 200

// goReservedWords contains Go keywords that cannot be used as identifiers.
// Predeclared identifiers like "error" are not included because they can be
// shadowed and are commonly wanted as type names.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// escapeReservedWord appends an underscore when name, lowered, is a Go
// keyword. Case-insensitive so PascalCase names like "Type" are still escaped.
func escapeReservedWord(name string) string {
	if goReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// toTypeName converts a model name to a valid exported Go type name.
func toTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	var result strings.Builder
	capitalizeNext := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if capitalizeNext {
				result.WriteRune(unicode.ToUpper(r))
				capitalizeNext = false
			} else {
				result.WriteRune(r)
			}
		} else {
			capitalizeNext = true
		}
	}

	name := result.String()
	if len(name) > 0 && !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}
	return escapeReservedWord(name)
}

// toFieldName converts a property name to a valid exported Go field name.
func toFieldName(s string) string {
	return toTypeName(s)
}

// toParamName converts a parameter name to a camelCase Go argument name.
func toParamName(s string) string {
	name := toTypeName(s)
	if name == "" {
		return "param"
	}
	name = strings.ToLower(name[:1]) + name[1:]
	return escapeReservedWord(name)
}

// methodNameForEndpoint picks the Go method name for an endpoint: the
// operationId when one exists, else a name derived from verb and path.
func methodNameForEndpoint(ep *spec.Endpoint) string {
	if ep.OperationID != "" {
		return toTypeName(ep.OperationID)
	}
	return methodNameFromPath(ep.Path, strings.ToLower(ep.Verb()))
}

// methodNameFromPath derives a method name from an HTTP verb and a path
// template. Template variables read as "By<Name>": GET /pets/{petId} becomes
// GetPetsByPetId.
func methodNameFromPath(path, verb string) string {
	p := strings.ReplaceAll(path, "/", " ")
	p = strings.ReplaceAll(p, "{", "By ")
	p = strings.ReplaceAll(p, "}", "")
	return toTypeName(verb + " " + p)
}

// cleanDescription flattens a description to a single trimmed comment line,
// truncating at maxDescriptionLength on a rune boundary.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxDescriptionLength {
		s = string(runes[:maxDescriptionLength-3]) + "..."
	}
	return s
}
