// Package merger patches existing generated Go source in place. MergeDto
// appends schema properties missing from a struct declaration, MergeAPI
// appends client methods missing from a generated client, and MergeEndpoints
// reconciles endpoint sets by operation id. Patches are byte-minimal: text
// the merge does not add is returned untouched, so hand-edited bodies and
// formatting survive.
package merger
