// Package generator emits Go source from the canonical specification model.
//
// Two entry points cover the forward direction of the toolchain:
//
//   - [GenerateDto] renders a single schema as one Go declaration (struct,
//     enum, union, or alias) with a doc-tag side channel for every facet the
//     type system cannot carry.
//   - [GenerateClient] renders a full HTTP client for a set of flattened
//     endpoints: one method per endpoint, a ClientInterface, request
//     serialization per parameter style, and security scaffolding per scheme.
//
// Both are deterministic: identical input produces byte-identical output.
// [Generate] wraps them for whole-document generation and returns a
// [GenerateResult] with the emitted files and any issues found along the way.
package generator
