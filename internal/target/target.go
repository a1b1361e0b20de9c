// Package target defines the data types of the target language surface
// (spec.md §4.F): host types, format descriptors, constant/struct/function
// items, and the small term language used for constant initializers and
// computed function bodies. Grounded in original_source's
// crates/ddl/src/rust/emit.rs, whose Rust-shaped Item/Type/RtType/Term
// types this package adapts one-for-one to a Go host (uint8 in place of
// u8, a switch-shaped Match term in place of Rust's enum match, an inline
// anonymous IsLeft-tagged struct in place of ddl_rt::If<A,B> since Go has
// no host-level generics-free equivalent, per SPEC_FULL.md §4).
package target

// Module is the root of the target IR: a module doc comment plus a
// source-ordered sequence of items (spec.md §4.F: "one declaration per
// item in source order").
type Module struct {
	Doc   []string
	Items []Item
}

// Item is one top-level target declaration.
type Item interface {
	ItemName() string
	item()
}

// Const is a named constant with a fully-evaluated initializer (spec.md
// §4.E: "aliases whose type is a primitive or Bool").
type Const struct {
	Name        string
	Docs        []string
	HostType    Type
	Initializer Term
}

func (c *Const) ItemName() string { return c.Name }
func (c *Const) item()            {}

// Function is a named nullary function whose body requires computation
// (spec.md §4.E: "aliases whose body requires computation, e.g. contains
// BoolElim/IntElim"). IsConst marks a function whose body happens to be
// foldable into a constant expression at the target's own compile time
// (mirrors the teacher's `const fn` distinction in emit.rs).
type Function struct {
	Name       string
	Docs       []string
	ReturnType Type
	Body       Term
	IsConst    bool
}

func (f *Function) ItemName() string { return f.Name }
func (f *Function) item()            {}

// Alias is a type synonym (spec.md §4.E: "aliases whose body is itself a
// FormatType-valued type expression").
type Alias struct {
	Name     string
	Docs     []string
	HostType Type
}

func (a *Alias) ItemName() string { return a.Name }
func (a *Alias) item()            {}

// StructField is one field of a lowered struct, in declaration order.
type StructField struct {
	Name       string
	Docs       []string
	HostType   Type
	FormatType FormatType
}

// Struct is a lowered struct item: a host data declaration, a binary-format
// marker, and (via internal/emit) a reader procedure built from Fields in
// order (spec.md §4.E's struct reader contract).
type Struct struct {
	Name    string
	Docs    []string
	Derives []string
	Fields  []StructField
}

func (s *Struct) ItemName() string { return s.Name }
func (s *Struct) item()            {}

// Type is a host type: the Go type a decoded value of some format has.
type Type interface {
	typ()
}

// PrimitiveType is one of the built-in Go scalar types (uint8, int16,
// float64, bool, ...).
type PrimitiveType struct {
	GoName string
}

func (PrimitiveType) typ() {}

// NamedType references a struct item's host type by name.
type NamedType struct {
	Name string
}

func (NamedType) typ() {}

// IfType is the host type of a conditional format: a tagged union of the
// two branches' host types, emitted as an inline two-field Go struct with
// an IsLeft discriminant rather than a generic ddl_rt::If<A,B> (Go has no
// direct generics-free analog; emission specializes per call site).
type IfType struct {
	Left, Right Type
}

func (IfType) typ() {}

// InvalidType is the sentinel host type for a format position filled by
// something that does not inhabit FormatType (spec.md §4.E's "anything
// else" row), named after the original's ddl_rt::InvalidDataDescription.
type InvalidType struct{}

func (InvalidType) typ() {}

// FormatType is a runtime format descriptor: the thing a struct field's
// reader actually invokes to decode bytes.
type FormatType interface {
	formatType()
}

// PrimitiveFormat is one of the built-in format descriptors (U8, U16Le,
// F64Be, ...), named identically to fathomgo's runtime package markers.
type PrimitiveFormat struct {
	RuntimeName string
}

func (PrimitiveFormat) formatType() {}

// NamedFormat references a struct item's own format by name.
type NamedFormat struct {
	Name string
}

func (NamedFormat) formatType() {}

// IfFormat is a conditional reader: read Left's format if Cond evaluates
// true, else Right's.
type IfFormat struct {
	Cond        Term
	Left, Right FormatType
}

func (IfFormat) formatType() {}

// InvalidFormat mirrors InvalidType at the format-descriptor level.
type InvalidFormat struct{}

func (InvalidFormat) formatType() {}

// Term is the small expression language used for Const initializers and
// Function bodies (spec.md §4.E/§4.F), adapted from emit.rs's Term enum.
type Term interface {
	term()
}

// Var references another item by name (a Const, or the bound name used as
// a conditional format's scrutinee).
type Var struct {
	Name string
}

func (Var) term() {}

// Call invokes a nullary Function item by name.
type Call struct {
	Name string
}

func (Call) term() {}

// BoolLit is a literal `true`/`false`.
type BoolLit struct {
	Value bool
}

func (BoolLit) term() {}

// IntLit is an integer literal. Suffix is a host-type suffix slot (e.g.
// "u8"); lowering leaves it empty and emission prints only Text.
type IntLit struct {
	Text   string // decimal digits, arbitrary precision
	Suffix string
}

func (IntLit) term() {}

// FloatLit is a float literal, bits32 distinguishing f32 from f64.
type FloatLit struct {
	Value  float64
	Bits32 bool
}

func (FloatLit) term() {}

// If is a conditional expression, used as a Function body (spec.md §8
// scenario 3's BoolElim case). Conditional formats are represented by
// IfFormat, not by this term.
type If struct {
	Cond, Then, Else Term
}

func (If) term() {}

// MatchBranch is one `key => body` arm of a Match term.
type MatchBranch struct {
	Key  int64
	Body Term
}

// Match is a lowered IntElim: emitted as a Go switch statement. This has
// no direct counterpart in emit.rs's Term enum (the original backend never
// lowered a match-shaped function body), added because Go's switch makes
// it a natural, idiomatic target for spec.md §8 scenario 4's IntElim
// dispatch rather than leaving match-shaped aliases unlowerable.
type Match struct {
	Scrutinee Term
	Branches  []MatchBranch
	Default   Term
}

func (Match) term() {}

// Invalid is the term-level sentinel for a body that could not be lowered
// (an upstream core.Error, or an unsupported term shape).
type Invalid struct{}

func (Invalid) term() {}
