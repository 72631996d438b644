//go:build cgo

package imports

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TreeSitterExtractor extracts specifiers by walking a tree-sitter syntax
// tree. It reuses one parser and is not safe for concurrent use.
type TreeSitterExtractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a tree-sitter backed extractor.
func NewExtractor() *TreeSitterExtractor {
	return &TreeSitterExtractor{parser: sitter.NewParser()}
}

func language(st SourceType) *sitter.Language {
	switch st {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Extract parses src and returns its specifiers. Malformed input yields a
// *ParseError and no specifiers.
func (e *TreeSitterExtractor) Extract(ctx context.Context, src []byte, st SourceType) ([]string, error) {
	e.parser.SetLanguage(language(st))
	tree, err := e.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root)
	}

	var specs []string
	collect(root, src, &specs)
	return specs, nil
}

// collect appends specifiers in pre-order so they come out in document
// order. Every named child is visited, which reaches require() and import()
// calls nested in arguments, member chains and function bodies.
func collect(n *sitter.Node, src []byte, out *[]string) {
	switch n.Type() {
	case "import_statement", "export_statement":
		if s, ok := literal(n.ChildByFieldName("source"), src); ok {
			*out = append(*out, s)
		}
	case "import_require_clause":
		// import x = require("./x"); older grammars have no source field.
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if s, ok := literal(n.NamedChild(i), src); ok {
				*out = append(*out, s)
				break
			}
		}
	case "call_expression":
		if s, ok := callSpecifier(n, src); ok {
			*out = append(*out, s)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collect(n.NamedChild(i), src, out)
	}
}

// callSpecifier matches import("x") and require("x"). Only a string literal
// first argument counts.
func callSpecifier(call *sitter.Node, src []byte) (string, bool) {
	fn := call.ChildByFieldName("function")
	args := call.ChildByFieldName("arguments")
	if fn == nil || args == nil || args.NamedChildCount() == 0 {
		return "", false
	}
	switch fn.Type() {
	case "import":
	case "identifier":
		if fn.Content(src) != "require" {
			return "", false
		}
	default:
		return "", false
	}
	return literal(args.NamedChild(0), src)
}

// literal returns the value of a string node with escapes decoded.
func literal(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "string_fragment":
			b.WriteString(c.Content(src))
		case "escape_sequence":
			b.WriteString(unescape(c.Content(src)))
		}
	}
	return b.String(), true
}

// unescape decodes one escape sequence, backslash included. Unknown escapes
// stand for the escaped character.
func unescape(seq string) string {
	body := strings.TrimPrefix(seq, `\`)
	if body == "" {
		return ""
	}
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r':
		// line continuation
		return ""
	case 'x', 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if r, err := strconv.ParseUint(hex, 16, 32); err == nil && utf8.ValidRune(rune(r)) {
			return string(rune(r))
		}
	}
	if strings.HasPrefix(body, "\u2028") || strings.HasPrefix(body, "\u2029") {
		return ""
	}
	return body
}

func firstError(n *sitter.Node) *ParseError {
	if n.Type() == "ERROR" || n.IsMissing() {
		p := n.StartPoint()
		return &ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstError(c)
		}
	}
	p := n.StartPoint()
	return &ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
