// Package restitch keeps generated Go source and an evolving REST-API
// specification model in sync.
//
// restitch is a bidirectional compiler: it generates data-record types and a
// typed HTTP client from an in-memory specification model, parses previously
// generated (and possibly hand-edited) source back into that model, and merges
// fresh specification fragments into existing source without disturbing
// hand-written content.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - spec: the canonical specification model, reference resolution, and the
//     path flatten/build transform
//   - typemap: bidirectional mapping between schema type descriptors and Go
//     type expressions
//   - generator: emit record and client declarations from the model
//   - parser: recover the model from previously generated source
//   - merger: patch new fields and methods into existing source
//
// # Quick Start
//
// Generate a record type from a schema:
//
//	import (
//		"github.com/restitch/restitch/generator"
//		"github.com/restitch/restitch/spec"
//	)
//
//	schema := &spec.Schema{
//		Name:     "User",
//		Types:    []string{"object"},
//		Required: []string{"name"},
//	}
//	schema.Properties = spec.NewProperties()
//	schema.Properties.Set("name", &spec.Schema{Types: []string{"string"}})
//
//	src, err := generator.GenerateDto(schema)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Merge new schema properties into an existing file:
//
//	import "github.com/restitch/restitch/merger"
//
//	patched, err := merger.MergeDto(existingSource, schema)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Every generate, parse, and merge operation is a pure function over in-memory
// values and text: identical input produces byte-identical output, and
// independent inputs may be processed concurrently by the caller.
package restitch

// version is the current restitch release version.
var version = "0.3.0"

// Version returns the current restitch version string.
func Version() string {
	return version
}
