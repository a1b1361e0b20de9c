package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the root grammar node: a module-level doc block (spec.md §2's
// "//!" inner-doc convention, grounded in original_source's
// core_to_pretty.rs which prints module docs with "//!" and item docs with
// "///") followed by a source-ordered list of items.
type Program struct {
	ModuleDoc []string `@ModuleDoc*`
	Items     []*Item  `@@*`
}

// Item is an alias or a struct declaration, each carrying its own leading
// "///" doc lines.
type Item struct {
	Doc    []string `@DocComment*`
	Alias  *Alias   `(  @@`
	Struct *Struct  ` | @@ )`
}

// Alias is `alias NAME (: TYPE)? = TERM ;`.
type Alias struct {
	Pos          lexer.Position
	Name         string `"alias" @Ident`
	DeclaredType *Expr  `( ":" @@ )?`
	Term         *Expr  `"=" @@ ";"`
}

// Struct is `struct NAME { FIELD, ... }`.
type Struct struct {
	Pos    lexer.Position
	Name   string         `"struct" @Ident "{"`
	Fields []*StructField `( @@ ( "," @@ )* ","? )? "}"`
}

// StructField is `(/// doc)* NAME : FORMAT`.
type StructField struct {
	Pos        lexer.Position
	Doc        []string `@DocComment*`
	Name       string   `@Ident ":"`
	FormatTerm *Expr    `@@`
}

// Expr is the lowest-precedence term form: a right-associative function
// arrow built on top of application.
type Expr struct {
	Pos   lexer.Position
	Head  *AppExpr `@@`
	Arrow *Expr    `( "->" @@ )?`
}

// AppExpr is left-associative juxtaposition application: `f x y`.
type AppExpr struct {
	Pos  lexer.Position
	Fn   *Atom   `@@`
	Args []*Atom `@@*`
}

// Atom is the highest-precedence term form.
type Atom struct {
	Pos         lexer.Position
	Paren       *ParenExpr   `(  "(" @@ ")"`
	UniverseLit *UniverseLit ` | @@`
	If          *IfExpr      ` | @@`
	Match       *MatchExpr   ` | @@`
	Float       *FloatLit    ` | @@`
	Int         *IntLit      ` | @@`
	Ident       *string      ` | @Ident )`
}

// ParenExpr is `( EXPR )` or the explicit ascription form `( EXPR : TYPE )`.
type ParenExpr struct {
	Inner      *Expr `@@`
	Ascription *Expr `( ":" @@ )?`
}

// UniverseLit is `Type LEVEL`.
type UniverseLit struct {
	Level string `"Type" @Int`
}

// IntLit preserves the literal's original digit text so that downstream
// arbitrary-precision handling (spec.md §3's Int constants) never round-trips
// through a machine integer.
type IntLit struct {
	Text string `@Int`
}

// FloatLit carries an optional bit-width suffix; a float literal without a
// suffix elaborates as an F64 constant, whatever type is expected of it.
type FloatLit struct {
	Text   string `@Float`
	Suffix string `@("f32" | "f64")?`
}

// IfExpr is `if COND then TRUE else FALSE`.
type IfExpr struct {
	Cond  *Expr `"if" @@`
	True  *Expr `"then" @@`
	False *Expr `"else" @@`
}

// MatchExpr is `match SCRUTINEE { key => body, ..., _ => default }`.
type MatchExpr struct {
	Scrutinee *Expr          `"match" @@ "{"`
	Branches  []*MatchBranch `@@ ( "," @@ )* ","? "}"`
}

// MatchBranch is one `key => body` arm; Wildcard marks the `_` default arm.
type MatchBranch struct {
	Pos      lexer.Position
	Wildcard bool    `(  @"_"`
	Key      *string ` | @Int )`
	Body     *Expr   `"=>" @@`
}
