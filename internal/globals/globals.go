// Package globals builds the ambient Globals table the host hands to the
// elaborator and evaluator (spec.md §6): the fixed set of built-in bindings
// every module is checked against. Adapted from the teacher's
// internal/builtins registry (a flat name -> metadata map populated by a
// handful of register*() helpers run from init); here the registry is built
// once per Interner instead of at package-init time, since each Name must
// come from the same interner the rest of elaboration uses.
package globals

import (
	"fathomgo/internal/core"
	"fathomgo/internal/intern"
)

// RuntimeType names one of the primitive host types a format descriptor
// global lowers to (component E, spec.md §4.E's lowering table). Kept here
// rather than in internal/target to avoid a dependency from this package
// (used by the elaborator) on the lowering/target packages.
type RuntimeType string

const (
	U8    RuntimeType = "U8"
	I8    RuntimeType = "I8"
	U16Le RuntimeType = "U16Le"
	U16Be RuntimeType = "U16Be"
	U32Le RuntimeType = "U32Le"
	U32Be RuntimeType = "U32Be"
	U64Le RuntimeType = "U64Le"
	U64Be RuntimeType = "U64Be"
	I16Le RuntimeType = "I16Le"
	I16Be RuntimeType = "I16Be"
	I32Le RuntimeType = "I32Le"
	I32Be RuntimeType = "I32Be"
	I64Le RuntimeType = "I64Le"
	I64Be RuntimeType = "I64Be"
	F32Le RuntimeType = "F32Le"
	F32Be RuntimeType = "F32Be"
	F64Le RuntimeType = "F64Le"
	F64Be RuntimeType = "F64Be"
)

// FormatGlobalNames lists every format-universe global in deterministic
// (ascending-ish, table) order, mirroring how emit.rs's RtType enumerates
// its variants.
var FormatGlobalNames = []RuntimeType{
	U8, I8, U16Le, U16Be, U32Le, U32Be, U64Le, U64Be,
	I16Le, I16Be, I32Le, I32Be, I64Le, I64Be, F32Le, F32Be, F64Le, F64Be,
}

// Names bundles the interned Names of the ambient globals the rest of the
// toolchain needs to recognize directly (boolean literals and the Int
// alias), rather than re-resolving strings through the interner every time.
type Names struct {
	Bool    intern.Name
	True    intern.Name
	False   intern.Name
	Int     intern.Name
	F32     intern.Name
	F64     intern.Name
	Formats map[RuntimeType]intern.Name
}

// Build interns every ambient global's name against in and returns both the
// Globals table (for elaboration/evaluation) and the Names bundle (for code
// that needs to recognize specific globals, e.g. BoolElim reduction or
// lowering a format reference to a host type).
func Build(in *intern.Interner) (core.Globals, Names) {
	entries := make(map[intern.Name]core.GlobalEntry)
	names := Names{Formats: make(map[RuntimeType]intern.Name, len(FormatGlobalNames))}

	boolName := in.Intern("Bool")
	entries[boolName] = core.GlobalEntry{Type: &core.Universe{Level: 0}}
	names.Bool = boolName

	trueName := in.Intern("true")
	entries[trueName] = core.GlobalEntry{Type: &core.Global{Name: boolName}}
	names.True = trueName

	falseName := in.Intern("false")
	entries[falseName] = core.GlobalEntry{Type: &core.Global{Name: boolName}}
	names.False = falseName

	intName := in.Intern("Int")
	entries[intName] = core.GlobalEntry{Type: &core.FormatType{}}
	names.Int = intName

	f32Name := in.Intern("F32")
	entries[f32Name] = core.GlobalEntry{Type: &core.FormatType{}}
	names.F32 = f32Name

	f64Name := in.Intern("F64")
	entries[f64Name] = core.GlobalEntry{Type: &core.FormatType{}}
	names.F64 = f64Name

	for _, rt := range FormatGlobalNames {
		n := in.Intern(string(rt))
		entries[n] = core.GlobalEntry{Type: &core.FormatType{}}
		names.Formats[rt] = n
	}

	return core.Globals{Interner: in, Entries: entries}, names
}
