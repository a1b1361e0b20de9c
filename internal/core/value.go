package core

import (
	"fmt"

	"fathomgo/internal/ast"
	"fathomgo/internal/intern"
)

// Value is the result of evaluation: a weak-head-normal-form value, or a
// neutral (stuck) computation.
type Value interface {
	Range() ast.Range
	String() string
	value()
}

// Head is the stuck part of a Neutral value.
type Head interface {
	Range() ast.Range
	headTerm() Term
	head()
}

// HeadGlobal is a neutral head referencing an abstract (declared but
// undefined) global.
type HeadGlobal struct {
	Rng  ast.Range
	Name intern.Name
}

func (h HeadGlobal) Range() ast.Range { return h.Rng }
func (h HeadGlobal) head()            {}
func (h HeadGlobal) headTerm() Term   { return &Global{Rng: h.Rng, Name: h.Name} }

// HeadItem is a neutral head referencing a struct item (structs never
// evaluate further; they stay neutral so their fields can be looked up by
// the lowering pass).
type HeadItem struct {
	Rng  ast.Range
	Name intern.Name
}

func (h HeadItem) Range() ast.Range { return h.Rng }
func (h HeadItem) head()            {}
func (h HeadItem) headTerm() Term   { return &Item{Rng: h.Rng, Name: h.Name} }

// HeadError is a neutral head produced when an eliminator was applied to a
// value that could not possibly support it (spec.md §4.B rules 7-8, "else"
// cases).
type HeadError struct {
	Rng ast.Range
}

func (h HeadError) Range() ast.Range { return h.Rng }
func (h HeadError) head()            {}
func (h HeadError) headTerm() Term   { return &Error{Rng: h.Rng} }

// Elim is one eliminator attached to a neutral's spine, in application
// order, each remembering the range of the expression that introduced it.
type Elim interface {
	Range() ast.Range
	elim()
}

// ElimFunction is a function application eliminator.
type ElimFunction struct {
	Rng      ast.Range
	Argument Value
}

func (e ElimFunction) Range() ast.Range { return e.Rng }
func (e ElimFunction) elim()            {}

// ElimBool is a Bool-eliminator (if/then/else) attached to a spine because
// its scrutinee is neutral.
type ElimBool struct {
	Rng     ast.Range
	IfTrue  Term
	IfFalse Term
}

func (e ElimBool) Range() ast.Range { return e.Rng }
func (e ElimBool) elim()            {}

// ElimInt is an Int-eliminator (match) attached to a spine because its
// scrutinee is neutral.
type ElimInt struct {
	Rng      ast.Range
	Branches []IntBranch
	Default  Term
}

func (e ElimInt) Range() ast.Range { return e.Rng }
func (e ElimInt) elim()            {}

// Neutral is a stuck computation: a head plus an ordered spine of
// eliminators that could not reduce because the head is abstract.
type Neutral struct {
	Rng  ast.Range
	Head Head
	Spine []Elim
}

func (n *Neutral) Range() ast.Range { return n.Rng }
func (n *Neutral) value()           {}
func (n *Neutral) String() string   { return fmt.Sprintf("<neutral %s>", n.Head.headTerm()) }

// ValueUniverse, ValueFormatType, ValueFunctionType, ValueConstant, and
// ValueError mirror their Term counterparts as the non-neutral values.

type ValueUniverse struct {
	Rng   ast.Range
	Level int
}

func (v *ValueUniverse) Range() ast.Range { return v.Rng }
func (v *ValueUniverse) value()           {}
func (v *ValueUniverse) String() string   { return fmt.Sprintf("Type %d", v.Level) }

type ValueFormatType struct {
	Rng ast.Range
}

func (v *ValueFormatType) Range() ast.Range { return v.Rng }
func (v *ValueFormatType) value()           {}
func (v *ValueFormatType) String() string   { return "Format" }

type ValueFunctionType struct {
	Rng       ast.Range
	ParamType Value
	BodyType  Value
}

func (v *ValueFunctionType) Range() ast.Range { return v.Rng }
func (v *ValueFunctionType) value()           {}
func (v *ValueFunctionType) String() string {
	return fmt.Sprintf("(%s -> %s)", v.ParamType, v.BodyType)
}

type ValueConstant struct {
	Rng      ast.Range
	Constant ConstantValue
}

func (v *ValueConstant) Range() ast.Range { return v.Rng }
func (v *ValueConstant) value()           {}
func (v *ValueConstant) String() string   { return v.Constant.String() }

// ValueError is the absorbing value: equal to everything (see package eval).
type ValueError struct {
	Rng ast.Range
}

func (v *ValueError) Range() ast.Range { return v.Rng }
func (v *ValueError) value()           {}
func (v *ValueError) String() string   { return "<error>" }
