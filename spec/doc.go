// Package spec defines the canonical in-memory specification model that the
// restitch generators, parsers, and mergers operate on.
//
// All entities are immutable value records: they are produced either by an
// upstream document parser or by the source parsers in package parser, and
// every transform in this module is a pure function producing new instances.
// Cross-entity references are non-owning, name-based lookups into the
// Components registry, so reference cycles between named schemas are
// representable without cyclic ownership.
//
// Besides the model itself, the package provides reference name resolution
// (ResolveRefToType) and the bidirectional transform between nested
// path/operation structure and flat endpoint lists (FlattenPaths, BuildPaths).
package spec
