// Package parser recovers canonical model fragments from generated Go
// source: [ParseDto] reads type declarations back into schemas, and
// [ParseClient] reads a generated client file back into endpoints and root
// metadata.
//
// The parser is tolerant by design: declarations that do not match a shape it
// understands are skipped silently, so hand-written code can live in the same
// file as generated code.
package parser
