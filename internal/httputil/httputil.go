// Package httputil provides HTTP method, status code, and media type helpers
// shared by the generator and parser packages.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP method constants, in the lower-case form used by path item slots.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodQuery   = "query"
)

// StandardMethods lists the standard path item method slots in their
// canonical emission order.
var StandardMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

// IsStandardMethod reports whether method is one of the standard slots.
func IsStandardMethod(method string) bool {
	for _, m := range StandardMethods {
		if m == method {
			return true
		}
	}
	return false
}

// IsSuccessCode reports whether a response map key denotes a 2xx response.
// Both concrete codes ("200", "204") and the wildcard pattern ("2XX") match.
func IsSuccessCode(code string) bool {
	if code == "2XX" || code == "2xx" {
		return true
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return n >= 200 && n < 300
}

// IsJSONMediaType reports whether a media type carries JSON content.
// This covers application/json, the +json structured syntax suffix, and the
// sequential JSON variants.
func IsJSONMediaType(mediaType string) bool {
	mt := normalizeMediaType(mediaType)
	if mt == "application/json" {
		return true
	}
	if strings.HasSuffix(mt, "+json") {
		return true
	}
	return IsSequentialJSONMediaType(mt)
}

// IsSequentialJSONMediaType reports whether a media type denotes
// newline-delimited or sequential JSON.
func IsSequentialJSONMediaType(mediaType string) bool {
	switch normalizeMediaType(mediaType) {
	case "application/jsonl", "application/x-ndjson", "application/json-seq":
		return true
	}
	return false
}

// IsFormMediaType reports whether a media type denotes URL-encoded form content.
func IsFormMediaType(mediaType string) bool {
	return normalizeMediaType(mediaType) == "application/x-www-form-urlencoded"
}

// IsMultipartMediaType reports whether a media type denotes multipart content.
func IsMultipartMediaType(mediaType string) bool {
	return strings.HasPrefix(normalizeMediaType(mediaType), "multipart/")
}

// HasWildcardSubtype reports whether a media type has a wildcard subtype
// (e.g., "application/*" or "*/*"). Such types suppress the explicit
// Content-Type header in generated clients.
func HasWildcardSubtype(mediaType string) bool {
	mt := normalizeMediaType(mediaType)
	slash := strings.IndexByte(mt, '/')
	if slash < 0 {
		return false
	}
	return mt[slash+1:] == "*"
}

// Specificity ranks a media type for response selection: a concrete
// type/subtype pair beats a type wildcard, which beats the full wildcard.
// Higher is more specific.
func Specificity(mediaType string) int {
	mt := normalizeMediaType(mediaType)
	switch {
	case mt == "*/*" || mt == "":
		return 0
	case HasWildcardSubtype(mt):
		return 1
	default:
		return 2
	}
}

// normalizeMediaType strips parameters and lowercases the essence.
func normalizeMediaType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
