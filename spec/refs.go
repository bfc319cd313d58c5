package spec

import (
	"net/url"
	"path"
	"strings"
)

// localPathItemPrefix is the pointer prefix for path items in the local
// components registry.
const localPathItemPrefix = "/components/pathItems/"

// ResolveRefToType derives a short type-name hint from a reference string.
//
// The rules, in order:
//   - a fragment yields its percent-decoded last "/"-segment, or the whole
//     fragment when it has no "/"
//   - a fragment-free reference is treated as a file path and yields its
//     extension-stripped basename
//   - a bare identifier passes through unchanged (back-compatible alias form)
//   - the degenerate input "#" is returned as-is
//
// This only produces a name hint; resolving the referenced node's contents is
// the caller's job via the Components registry or an external resolver.
func ResolveRefToType(ref string) string {
	if ref == "" || ref == "#" {
		return ref
	}

	base, frag, hasFrag := splitRefFragment(ref)
	if hasFrag && frag != "" {
		segment := frag
		if i := strings.LastIndexByte(frag, '/'); i >= 0 {
			segment = frag[i+1:]
		}
		return percentDecode(segment)
	}

	// No usable fragment: treat as file path.
	name := path.Base(base)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// ExternalResolver resolves a path item reference that points outside the
// current document. It receives the reference's base URI and the paths map
// key, and returns nil when it cannot resolve the target.
type ExternalResolver func(baseURI, key string) *PathItem

// localPathItemName extracts the component name from a local
// "#/components/pathItems/<Name>" pointer. Multi-segment pointers are
// unsupported and report false.
func localPathItemName(frag string) (string, bool) {
	rest, ok := strings.CutPrefix(frag, localPathItemPrefix)
	if !ok || rest == "" || strings.ContainsRune(rest, '/') {
		return "", false
	}
	return percentDecode(rest), true
}

// splitRefFragment splits a reference into its pre-fragment base and
// fragment. hasFrag reports whether a "#" was present at all.
func splitRefFragment(ref string) (base, frag string, hasFrag bool) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:], true
	}
	return ref, "", false
}

// percentDecode undoes percent-encoding, passing malformed input through
// unchanged.
func percentDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
