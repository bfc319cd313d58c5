// Package gosrc wraps the Go source toolchain (token.FileSet, go/parser,
// go/format, goimports) behind a narrow, explicitly scoped interface.
//
// An Engine is acquired with New and released with Close. Generator, parser,
// and merger operations accept an Engine so a batch run shares one scoped
// instance; each operation falls back to a short-lived Engine of its own when
// none is supplied. The Engine is never a leaked global: tests and isolated
// batch runs pair every New with a Close.
package gosrc

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sync"

	"golang.org/x/tools/imports"
)

// ErrEngineClosed is returned when an Engine is used after Close.
var ErrEngineClosed = errors.New("gosrc: engine is closed")

// Buffer pool size limits, matching the generator's typical output sizes.
const (
	bufferInitialSize = 4096
	bufferMaxSize     = 1 << 20
)

// Engine owns the process-level source parsing and printing state for one
// batch of generate/parse/merge operations.
type Engine struct {
	mu     sync.Mutex
	fset   *token.FileSet
	bufs   sync.Pool
	closed bool
}

// New acquires a source engine. The caller must release it with Close.
func New() *Engine {
	return &Engine{
		fset: token.NewFileSet(),
		bufs: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, bufferInitialSize))
			},
		},
	}
}

// Close releases the engine. Further use returns ErrEngineClosed.
// Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.fset = nil
	return nil
}

// ParseFile parses Go source text, retaining comments so doc tags survive.
func (e *Engine) ParseFile(filename, src string) (*ast.File, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	file, err := parser.ParseFile(e.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("gosrc: parse %s: %w", filename, err)
	}
	return file, nil
}

// Offset converts a token position from a previously parsed file into a byte
// offset in its source text. Returns -1 when the engine is closed or the
// position is unknown.
func (e *Engine) Offset(pos token.Pos) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !pos.IsValid() {
		return -1
	}
	return e.fset.Position(pos).Offset
}

// Format formats generated source and fixes its import block using a
// goimports-equivalent pass, so output is immediately compilable. The result
// is byte-deterministic for identical input.
func (e *Engine) Format(filename string, src []byte) ([]byte, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, ErrEngineClosed
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("gosrc: format %s: %w", filename, err)
	}
	fixed, err := imports.Process(filename, formatted, nil)
	if err != nil {
		return nil, fmt.Errorf("gosrc: fix imports %s: %w", filename, err)
	}
	return fixed, nil
}

// FormatFragment formats a standalone declaration list. Unlike Format it
// skips the import fixing pass, which requires a full file.
func (e *Engine) FormatFragment(src []byte) ([]byte, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, ErrEngineClosed
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("gosrc: format fragment: %w", err)
	}
	return formatted, nil
}

// GetBuffer retrieves a reset buffer from the engine's pool.
func (e *Engine) GetBuffer() *bytes.Buffer {
	buf := e.bufs.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool unless it grew past the size cap.
func (e *Engine) PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > bufferMaxSize {
		return
	}
	e.bufs.Put(buf)
}
