// Package parser turns fathomgo surface source text into an
// internal/ast.Module using a participle/v2 grammar (internal/grammar),
// following the thin ParseString/ParseFile wrapper convention used by
// kanso-lang-kanso's parser/parser.go.
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"fathomgo/internal/ast"
	"fathomgo/internal/grammar"
)

var build = participle.MustBuild[grammar.Program](
	participle.Lexer(grammar.SourceLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseString parses source text attributed to filename for diagnostics.
func ParseString(filename, source string) (*ast.Module, error) {
	prog, err := build.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return convertProgram(filename, prog), nil
}

// ParseFile reads and parses a source file from disk.
func ParseFile(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseString(path, string(data))
}
