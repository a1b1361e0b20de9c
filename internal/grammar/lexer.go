// Package grammar defines the lexical and syntactic grammar of the surface
// language using github.com/alecthomas/participle/v2, following the
// three-file split (lexer.go / grammar.go / parser.go under internal/parser)
// used by kanso-lang-kanso's own participle-based frontend. The parser is an
// external collaborator per spec.md §1, but a runnable CLI needs one, so it
// is supplemented from the rest of the example pack rather than left
// unimplemented.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// SourceLexer tokenizes fathomgo surface source. Reserved words ("alias",
// "struct", "if", "then", "else", "match", "Type") lex as Keyword tokens,
// matched by literal string in the grammar; they never lex as Ident, so an
// application's argument list stops at "then"/"else" instead of consuming
// them as names.
var SourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "ModuleDoc", Pattern: `//![^\n]*`, Action: nil},
		{Name: "DocComment", Pattern: `///[^\n]*`, Action: nil},
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "Float", Pattern: `[0-9]+\.[0-9]+`, Action: nil},
		{Name: "Int", Pattern: `[0-9]+`, Action: nil},
		{Name: "Keyword", Pattern: `(alias|struct|if|then|else|match|Type)\b`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Operator", Pattern: `(->|=>)`, Action: nil},
		{Name: "Punct", Pattern: `[(){}:;,=]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
