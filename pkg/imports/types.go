package imports

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by the extractor in builds without cgo.
var ErrUnsupported = errors.New("import extraction requires cgo")

// SourceType selects the grammar used to parse a file.
type SourceType int

const (
	// Script is plain JavaScript, including JSX and ES/CommonJS modules.
	Script SourceType = iota
	// TypeScript is .ts source.
	TypeScript
	// TSX is TypeScript with JSX.
	TSX
)

// String returns the grammar name.
func (t SourceType) String() string {
	switch t {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "javascript"
	}
}

// SourceTypeOf derives the source type from a file extension. Unknown
// extensions fall back to [Script].
func SourceTypeOf(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return Script
	}
}

// Extractor returns the raw import specifiers of one file, in document
// order.
type Extractor interface {
	Extract(ctx context.Context, src []byte, st SourceType) ([]string, error)
}

// ExtractorFunc adapts a function to [Extractor].
type ExtractorFunc func(ctx context.Context, src []byte, st SourceType) ([]string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, src []byte, st SourceType) ([]string, error) {
	return f(ctx, src, st)
}

// ParseError reports malformed syntax. Line and Column are 1-based and
// point at the first error node.
type ParseError struct {
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
}

// Diagnostic is a non-fatal problem with one file.
type Diagnostic struct {
	Path string
	Err  error
}

func (d Diagnostic) Error() string {
	return d.Path + ": " + d.Err.Error()
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error { return d.Err }
