//go:build !cgo

package imports

import "context"

// TreeSitterExtractor is unavailable without cgo; Extract always fails with
// ErrUnsupported.
type TreeSitterExtractor struct{}

// NewExtractor returns an extractor that reports ErrUnsupported.
func NewExtractor() *TreeSitterExtractor {
	return &TreeSitterExtractor{}
}

// Extract returns ErrUnsupported.
func (e *TreeSitterExtractor) Extract(context.Context, []byte, SourceType) ([]string, error) {
	return nil, ErrUnsupported
}
