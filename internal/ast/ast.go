// Package ast defines source positions and the surface syntax produced by
// the parser collaborator: a sequence of alias and struct items over terms
// and format expressions.
package ast

import "fmt"

// Pos is a position in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Range identifies a byte region of a source file. Ranges never affect the
// equality of core terms; they exist purely for diagnostics.
type Range struct {
	Start Pos
	End   Pos
}

func (r Range) String() string {
	if r.Start.File == "" {
		return "<generated>"
	}
	return fmt.Sprintf("%s-%d:%d", r.Start, r.End.Line, r.End.Column)
}

// Module is the surface form of a checked module: a flat, source-ordered
// sequence of items plus any leading module-level doc comment.
type Module struct {
	Doc   []string
	Items []Item
}

// Item is a top-level surface declaration.
type Item interface {
	ItemName() string
	ItemRange() Range
	item()
}

// Alias is `alias NAME (: TYPE)? = EXPR;`.
type Alias struct {
	Range         Range
	Doc           []string
	Name          string
	DeclaredType  Term // nil if omitted
	Term          Term
}

func (a *Alias) ItemName() string  { return a.Name }
func (a *Alias) ItemRange() Range  { return a.Range }
func (a *Alias) item()             {}

// Struct is `struct NAME { FIELD, ... }`.
type Struct struct {
	Range  Range
	Doc    []string
	Name   string
	Fields []Field
}

func (s *Struct) ItemName() string { return s.Name }
func (s *Struct) ItemRange() Range { return s.Range }
func (s *Struct) item()            {}

// Field is one struct field: `NAME : FORMAT_EXPR`.
type Field struct {
	Range      Range
	Doc        []string
	Name       string
	FormatTerm Term
}

// Term is the base interface for surface terms and format expressions; the
// surface grammar does not distinguish "term" from "format expression"
// syntactically, only by the position it appears in and the type it is
// checked against.
type Term interface {
	TermRange() Range
	term()
}

// Name is a bare identifier reference: a global, a sibling item, or (in a
// future extension) a local variable.
type Name struct {
	Range Range
	Text  string
}

func (n *Name) TermRange() Range { return n.Range }
func (n *Name) term()            {}

// Ann is an ascription `(TERM : TYPE)`.
type Ann struct {
	Range Range
	Term  Term
	Type  Term
}

func (a *Ann) TermRange() Range { return a.Range }
func (a *Ann) term()            {}

// UniverseLit is `Type l`.
type UniverseLit struct {
	Range Range
	Level int
}

func (u *UniverseLit) TermRange() Range { return u.Range }
func (u *UniverseLit) term()            {}

// FunctionType is `T1 -> T2`, right-associative.
type FunctionType struct {
	Range Range
	Param Term
	Body  Term
}

func (f *FunctionType) TermRange() Range { return f.Range }
func (f *FunctionType) term()            {}

// FunctionElim is application `f x`, left-associative.
type FunctionElim struct {
	Range    Range
	Head     Term
	Argument Term
}

func (f *FunctionElim) TermRange() Range { return f.Range }
func (f *FunctionElim) term()            {}

// IntLit is an integer literal.
type IntLit struct {
	Range Range
	Text  string // preserves the original digit text for arbitrary precision
}

func (i *IntLit) TermRange() Range { return i.Range }
func (i *IntLit) term()            {}

// FloatLit is a floating-point literal; Bits32 distinguishes an `f32`
// suffix from the default `f64`.
type FloatLit struct {
	Range  Range
	Text   string
	Bits32 bool
}

func (f *FloatLit) TermRange() Range { return f.Range }
func (f *FloatLit) term()            {}

// If is `if COND then TRUE else FALSE`.
type If struct {
	Range Range
	Cond  Term
	True  Term
	False Term
}

func (i *If) TermRange() Range { return i.Range }
func (i *If) term()            {}

// Match is `match SCRUTINEE { k1 => e1, ..., _ => default }` over Int.
type Match struct {
	Range    Range
	Scrutinee Term
	Branches []MatchBranch
	Default  Term
}

func (m *Match) TermRange() Range { return m.Range }
func (m *Match) term()            {}

// MatchBranch is one `k => e` arm; Range covers just the arm, used for the
// DuplicateIntBranch diagnostic's range per spec.md §8 scenario 5.
type MatchBranch struct {
	Range Range
	Key   string // integer literal text
	Body  Term
}
