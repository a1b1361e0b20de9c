package core

import (
	"fathomgo/internal/ast"
	"fathomgo/internal/intern"
)

// ModuleItem is a checked module-level declaration: an alias or a struct
// (spec.md §3 "Module item"). Named ModuleItem, distinct from the Item term
// variant above (a *reference* to one of these from a right-hand side).
type ModuleItem interface {
	Name() intern.Name
	moduleItem()
}

// AliasItem evaluates to Term's value when referenced.
type AliasItem struct {
	Rng          ast.Range
	Doc          []string
	NameID       intern.Name
	Term         Term
	DeclaredType Term // nil if the alias had no ascription
}

func (a *AliasItem) Name() intern.Name { return a.NameID }
func (a *AliasItem) moduleItem()       {}

// StructField is one field of a checked struct, in declaration order.
type StructField struct {
	Rng        ast.Range
	Doc        []string
	Name       string
	FormatTerm Term // must inhabit FormatType
}

// StructItem's fields are checked to inhabit FormatType; referencing a
// StructItem by name never unfolds, it stays a neutral Item head.
type StructItem struct {
	Rng    ast.Range
	Doc    []string
	NameID intern.Name
	Fields []StructField
}

func (s *StructItem) Name() intern.Name { return s.NameID }
func (s *StructItem) moduleItem()       {}

// ItemMap is the `name -> item` lookup built incrementally as a module is
// checked in source order (spec.md §3 CheckedModule, §4.D).
type ItemMap map[intern.Name]ModuleItem

// GlobalEntry is one row of the ambient Globals table: a type and an
// optional definition. An entry with no definition is abstract and
// evaluates to a neutral Global head (spec.md §4.B rule 1).
type GlobalEntry struct {
	Type       Term
	Definition Term // nil if abstract
}

// Globals is the ambient table the host initializes before elaboration
// (spec.md §6): at minimum Bool, true, false, Int, U8...F64Be, Type. It
// carries the Interner that produced its Names so evaluation and
// elaboration can recognize reserved names (e.g. "true"/"false" for
// BoolElim, spec.md §4.B rule 7) without a second name-resolution table.
type Globals struct {
	Interner *intern.Interner
	Entries  map[intern.Name]GlobalEntry
}

// Lookup returns the entry registered for name, if any.
func (g Globals) Lookup(name intern.Name) (GlobalEntry, bool) {
	e, ok := g.Entries[name]
	return e, ok
}

// TextOf resolves name back to its source text via the shared interner.
func (g Globals) TextOf(name intern.Name) (string, bool) {
	if g.Interner == nil {
		return "", false
	}
	return g.Interner.Resolve(name)
}
