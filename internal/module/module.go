// Package module implements the module checker (spec.md §4.D): it walks a
// surface module's items in source order, elaborates each one against its
// declared kind (alias or struct), and assembles a CheckedModule whose
// Item(name) references can only resolve to items already accepted earlier
// in the same pass. Named module rather than something import-resolution
// shaped: unlike the teacher's internal/module (a multi-file import
// resolver), this toolchain checks a single self-contained module, so the
// only "resolution" concern left is the one spec.md §4.D actually describes.
package module

import (
	"fmt"

	"fathomgo/internal/ast"
	"fathomgo/internal/core"
	"fathomgo/internal/elaborate"
	"fathomgo/internal/errors"
	"fathomgo/internal/eval"
	"fathomgo/internal/globals"
	"fathomgo/internal/intern"
)

// CheckedModule is spec.md §3's CheckedModule: a source-ordered sequence of
// items plus the name -> item map built incrementally while checking them.
type CheckedModule struct {
	Doc   []string
	Items []core.ModuleItem
	Map   core.ItemMap

	// ItemTypes records each item's classifying value: an AliasItem's
	// declared-or-synthesized type, a StructItem's FormatType. Component E
	// (internal/lower) needs this to tell a value-level alias ("alias
	// three : U8 = 3;", lowers to Const/Function) from a type-level one
	// ("alias MyU32 = U32Le;", lowers to Alias) per spec.md §4.E's table.
	ItemTypes map[intern.Name]core.Value
}

// Lookup resolves name against the checked items, mirroring the lookup map
// spec.md §3 requires CheckedModule to expose.
func (m *CheckedModule) Lookup(name intern.Name) (core.ModuleItem, bool) {
	item, ok := m.Map[name]
	return item, ok
}

// Check elaborates surface in source order and returns the resulting
// CheckedModule. Diagnostics are accumulated into sink rather than
// aborting, per spec.md §5's ordering invariant: item checking proceeds in
// source order so diagnostic stability matches textual order, and
// references to not-yet-defined items are rejected since elab.Items only
// ever contains items accepted in a strictly earlier iteration of this loop
// (spec.md §4.D's no-forward-reference rule).
func Check(in *intern.Interner, g core.Globals, names globals.Names, sink *errors.Sink, surface *ast.Module) *CheckedModule {
	elab := elaborate.New(in, g, names, sink)
	out := &CheckedModule{
		Doc:       surface.Doc,
		Map:       core.ItemMap{},
		ItemTypes: map[intern.Name]core.Value{},
	}

	for _, surfaceItem := range surface.Items {
		switch it := surfaceItem.(type) {
		case *ast.Alias:
			checked, classifier := checkAlias(in, elab, it)
			out.Items = append(out.Items, checked)
			out.Map[checked.NameID] = checked
			out.ItemTypes[checked.NameID] = classifier
			elab.Items[checked.NameID] = checked
			elab.ItemTypes[checked.NameID] = classifier

		case *ast.Struct:
			checked := checkStruct(in, elab, it)
			formatType := &core.ValueFormatType{Rng: checked.Rng}
			out.Items = append(out.Items, checked)
			out.Map[checked.NameID] = checked
			out.ItemTypes[checked.NameID] = formatType
			elab.Items[checked.NameID] = checked
			elab.ItemTypes[checked.NameID] = formatType

		default:
			sink.Emit(errors.Bug(fmt.Sprintf("module.Check: unhandled surface item %T", surfaceItem)))
		}
	}

	return out
}

// checkAlias elaborates one alias item and returns both the checked item
// and its classifying type: the ascription's evaluated value if present,
// else the term's own synthesized type.
func checkAlias(in *intern.Interner, elab *elaborate.Elaborator, a *ast.Alias) (*core.AliasItem, core.Value) {
	name := in.Intern(a.Name)

	if a.DeclaredType == nil {
		termCore, ty := elab.Synth(a.Term)
		return &core.AliasItem{Rng: a.Range, Doc: a.Doc, NameID: name, Term: termCore}, ty
	}

	typeTerm, synthTy := elab.Synth(a.DeclaredType)
	switch synthTy.(type) {
	case *core.ValueUniverse, *core.ValueFormatType:
		classifier := eval.Eval(elab.Globals, elab.Items, typeTerm)
		termCore := elab.Check(a.Term, classifier)
		return &core.AliasItem{Rng: a.Range, Doc: a.Doc, NameID: name, Term: termCore, DeclaredType: typeTerm}, classifier
	}
	if _, isErr := synthTy.(*core.ValueError); !isErr {
		elab.Sink.Emit(errors.New(errors.KindMismatchedType, a.DeclaredType.TermRange(),
			fmt.Sprintf("expected a type or a format, found a term of type %s", synthTy)))
	}
	termCore, _ := elab.Synth(a.Term)
	return &core.AliasItem{Rng: a.Range, Doc: a.Doc, NameID: name, Term: termCore, DeclaredType: typeTerm},
		&core.ValueError{Rng: a.Range}
}

func checkStruct(in *intern.Interner, elab *elaborate.Elaborator, s *ast.Struct) *core.StructItem {
	name := in.Intern(s.Name)
	fields := make([]core.StructField, 0, len(s.Fields))
	for _, f := range s.Fields {
		formatTerm := elab.CheckFormat(f.FormatTerm)
		fields = append(fields, core.StructField{
			Rng:        f.Range,
			Doc:        f.Doc,
			Name:       f.Name,
			FormatTerm: formatTerm,
		})
	}
	return &core.StructItem{Rng: s.Range, Doc: s.Doc, NameID: name, Fields: fields}
}
