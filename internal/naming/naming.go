// Package naming provides shared string case conversion utilities for
// generated identifiers.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser performs Unicode-aware title casing of enum case words.
// strings.Title is deprecated; golang.org/x/text/cases is the replacement.
var titleCaser = cases.Title(language.English)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization
// of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts a string to snake_case.
// Uppercase letters are prefixed with underscore and lowercased.
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == '.' || r == '/' {
			result.WriteRune('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeEnumCase converts an enum literal into a valid identifier case name:
// non-alphanumeric runes become word boundaries, each word is title-cased,
// a leading digit is escaped with an underscore, and an empty result falls
// back to "Unknown". The original literal is preserved separately as the
// serialized value.
// Example: "not-available" -> "NotAvailable"
// Example: "2xx" -> "_2xx"
func SanitizeEnumCase(literal string) string {
	var words []string
	var current strings.Builder
	for _, r := range literal {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	var result strings.Builder
	for _, w := range words {
		if w == strings.ToUpper(w) && w != strings.ToLower(w) {
			// All-caps words ("SOLD") title-case to "Sold".
			result.WriteString(titleCaser.String(strings.ToLower(w)))
		} else {
			runes := []rune(w)
			runes[0] = unicode.ToUpper(runes[0])
			result.WriteString(string(runes))
		}
	}

	name := result.String()
	if name == "" {
		return "Unknown"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name
}
