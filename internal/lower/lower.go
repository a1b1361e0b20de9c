// Package lower implements component E (spec.md §4.E): translating a
// CheckedModule into a target.Module of host types, format descriptors,
// and constant/function/alias/struct items, following the lowering table
// and struct reader contract verbatim. Grounded in
// original_source/crates/ddl/src/rust/emit.rs's RtType/Type/Term shapes
// (the Rust backend this was distilled from), adapted to a Go host.
package lower

import (
	"math"

	"fathomgo/internal/core"
	"fathomgo/internal/eval"
	"fathomgo/internal/globals"
	"fathomgo/internal/intern"
	"fathomgo/internal/module"
	"fathomgo/internal/target"
)

// itemKind classifies an AliasItem for the purposes of spec.md §4.E's
// lowering table, decided once up front so later lowering of one alias's
// body can tell whether an Item reference to another alias should read as
// a Var (a Const) or a Call (a Function).
type itemKind int

const (
	kindConst itemKind = iota
	kindFunction
	kindAlias
)

// Lower translates cm into a target.Module. Determinism (spec.md §4.E):
// items are emitted in cm.Items' source order, and IntElim branches are
// always read via IntElim.SortedBranches() (ascending key).
func Lower(cm *module.CheckedModule, g core.Globals, in *intern.Interner) *target.Module {
	kinds := make(map[intern.Name]itemKind, len(cm.Items))
	for _, it := range cm.Items {
		if alias, ok := it.(*core.AliasItem); ok {
			kinds[alias.NameID] = classifyAlias(alias, cm.ItemTypes[alias.NameID])
		}
	}

	out := &target.Module{Doc: cm.Doc}
	for _, it := range cm.Items {
		switch v := it.(type) {
		case *core.AliasItem:
			out.Items = append(out.Items, lowerAlias(v, cm, g, in, kinds))
		case *core.StructItem:
			out.Items = append(out.Items, lowerStruct(v, cm, g, in))
		}
	}
	return out
}

func classifyAlias(alias *core.AliasItem, classifier core.Value) itemKind {
	switch classifier.(type) {
	case *core.ValueUniverse, *core.ValueFormatType:
		return kindAlias
	}
	if containsComputation(alias.Term) {
		return kindFunction
	}
	return kindConst
}

// containsComputation reports whether a term's body needs a runtime
// decision (a BoolElim or IntElim anywhere in it) rather than folding to a
// plain constant (spec.md §4.E: "aliases whose body requires computation").
func containsComputation(t core.Term) bool {
	switch t.(type) {
	case *core.BoolElim, *core.IntElim:
		return true
	}
	switch v := t.(type) {
	case *core.Ann:
		return containsComputation(v.Term)
	case *core.FunctionElim:
		return containsComputation(v.Head) || containsComputation(v.Argument)
	}
	return false
}

func lowerAlias(alias *core.AliasItem, cm *module.CheckedModule, g core.Globals, in *intern.Interner, kinds map[intern.Name]itemKind) target.Item {
	name := in.MustResolve(alias.NameID)
	kind := kinds[alias.NameID]

	switch kind {
	case kindAlias:
		val := eval.Eval(g, cm.Map, alias.Term)
		hostType, _ := lowerFormatValue(val, g, cm.Map, in)
		return &target.Alias{Name: name, Docs: alias.Doc, HostType: hostType}

	case kindFunction:
		hostType := hostTypeFromClassifier(cm.ItemTypes[alias.NameID], g)
		body := lowerTerm(alias.Term, g, in, kinds)
		return &target.Function{Name: name, Docs: alias.Doc, ReturnType: hostType, Body: body}

	default: // kindConst
		hostType := hostTypeFromClassifier(cm.ItemTypes[alias.NameID], g)
		val := eval.Eval(g, cm.Map, alias.Term)
		return &target.Const{Name: name, Docs: alias.Doc, HostType: hostType, Initializer: lowerValue(val, g)}
	}
}

func lowerStruct(s *core.StructItem, cm *module.CheckedModule, g core.Globals, in *intern.Interner) *target.Struct {
	fields := make([]target.StructField, 0, len(s.Fields))
	for _, f := range s.Fields {
		hostType, formatType := lowerFormatTerm(f.FormatTerm, g, cm.Map, in)
		fields = append(fields, target.StructField{
			Name:       f.Name,
			Docs:       f.Doc,
			HostType:   hostType,
			FormatType: formatType,
		})
	}
	// Go has no derive-macro analog to the original's #[derive(...)]; the
	// "this type is a binary format with host = itself" marker (spec.md
	// §6) is produced unconditionally by internal/emit as generated
	// methods instead, so Derives stays empty here.
	return &target.Struct{Name: in.MustResolve(s.NameID), Docs: s.Doc, Fields: fields}
}

// hostTypeFromClassifier lowers the *type* of a value-level alias (Bool, or
// one of the format-universe globals used as a value's type, e.g. `U8`) to
// its Go host type.
func hostTypeFromClassifier(classifier core.Value, g core.Globals) target.Type {
	neutral, ok := classifier.(*core.Neutral)
	if !ok || len(neutral.Spine) != 0 {
		return target.InvalidType{}
	}
	headGlobal, ok := neutral.Head.(core.HeadGlobal)
	if !ok {
		return target.InvalidType{}
	}
	text, ok := g.TextOf(headGlobal.Name)
	if !ok {
		return target.InvalidType{}
	}
	if text == "Bool" {
		return target.PrimitiveType{GoName: "bool"}
	}
	if rt, ok := runtimeTypeByName(text); ok {
		return primitiveHostType(rt)
	}
	return target.InvalidType{}
}

// lowerFormatTerm is the lowering table of spec.md §4.E: evaluate term,
// then classify the resulting value.
func lowerFormatTerm(term core.Term, g core.Globals, items core.ItemMap, in *intern.Interner) (target.Type, target.FormatType) {
	return lowerFormatValue(eval.Eval(g, items, term), g, items, in)
}

func lowerFormatValue(val core.Value, g core.Globals, items core.ItemMap, in *intern.Interner) (target.Type, target.FormatType) {
	neutral, ok := val.(*core.Neutral)
	if !ok {
		return target.InvalidType{}, target.InvalidFormat{}
	}

	if len(neutral.Spine) == 0 {
		switch h := neutral.Head.(type) {
		case core.HeadGlobal:
			text, ok := g.TextOf(h.Name)
			if !ok {
				break
			}
			if rt, ok := runtimeTypeByName(text); ok {
				return primitiveHostType(rt), primitiveFormatType(rt)
			}
		case core.HeadItem:
			// spec.md §4.E's lowering table only names this row for "Item(n)
			// referencing a struct"; a reference to an alias item has no
			// reader function to call, so it falls through to Invalid below.
			if _, ok := items[h.Name].(*core.StructItem); ok {
				name := in.MustResolve(h.Name)
				return target.NamedType{Name: name}, target.NamedFormat{Name: name}
			}
		}
		return target.InvalidType{}, target.InvalidFormat{}
	}

	// spec.md §4.E / §8 scenario 6: `if c then F1 else F2`, stuck because
	// its scrutinee c is an abstract (undefined) global. Evaluation leaves
	// exactly one ElimBool on the spine of the scrutinee's own neutral head.
	if len(neutral.Spine) == 1 {
		if elimBool, ok := neutral.Spine[0].(core.ElimBool); ok {
			leftHost, leftFormat := lowerFormatTerm(elimBool.IfTrue, g, items, in)
			rightHost, rightFormat := lowerFormatTerm(elimBool.IfFalse, g, items, in)
			cond := condTerm(neutral.Head, g, in)
			return target.IfType{Left: leftHost, Right: rightHost},
				target.IfFormat{Cond: cond, Left: leftFormat, Right: rightFormat}
		}
	}

	return target.InvalidType{}, target.InvalidFormat{}
}

func condTerm(head core.Head, g core.Globals, in *intern.Interner) target.Term {
	switch h := head.(type) {
	case core.HeadGlobal:
		if text, ok := g.TextOf(h.Name); ok {
			return target.Var{Name: text}
		}
	case core.HeadItem:
		return target.Var{Name: in.MustResolve(h.Name)}
	}
	return target.Invalid{}
}

// lowerTerm lowers a Function item's (unevaluated) body, preserving its
// If/Match control flow rather than folding it (spec.md §4.E's "requires
// computation" items keep their computation).
func lowerTerm(t core.Term, g core.Globals, in *intern.Interner, kinds map[intern.Name]itemKind) target.Term {
	switch v := t.(type) {
	case *core.Ann:
		return lowerTerm(v.Term, g, in, kinds)

	case *core.Global:
		text, ok := g.TextOf(v.Name)
		if !ok {
			return target.Invalid{}
		}
		switch text {
		case "true":
			return target.BoolLit{Value: true}
		case "false":
			return target.BoolLit{Value: false}
		default:
			return target.Var{Name: text}
		}

	case *core.Item:
		name := in.MustResolve(v.Name)
		if kinds[v.Name] == kindFunction {
			return target.Call{Name: name}
		}
		return target.Var{Name: name}

	case *core.Constant:
		return lowerConstant(v.Constant)

	case *core.BoolElim:
		return target.If{
			Cond: lowerTerm(v.Scrutinee, g, in, kinds),
			Then: lowerTerm(v.IfTrue, g, in, kinds),
			Else: lowerTerm(v.IfFalse, g, in, kinds),
		}

	case *core.IntElim:
		sorted := v.SortedBranches()
		branches := make([]target.MatchBranch, 0, len(sorted))
		for _, b := range sorted {
			branches = append(branches, target.MatchBranch{Key: b.Key, Body: lowerTerm(b.Term, g, in, kinds)})
		}
		return target.Match{
			Scrutinee: lowerTerm(v.Scrutinee, g, in, kinds),
			Branches:  branches,
			Default:   lowerTerm(v.Default, g, in, kinds),
		}

	default:
		// core.FunctionElim (no value-level lambdas survive elaboration in
		// this subset, spec.md §9) and core.Error both lower to Invalid.
		return target.Invalid{}
	}
}

// lowerValue lowers a fully-evaluated value into a Const's initializer
// term; used once classifyAlias has already determined the body contains
// no computation, so eval.Eval always reaches a constant or a bare global
// reference (never a stuck neutral with a Bool/Int spine).
func lowerValue(v core.Value, g core.Globals) target.Term {
	switch val := v.(type) {
	case *core.ValueConstant:
		return lowerConstant(val.Constant)
	case *core.Neutral:
		if len(val.Spine) != 0 {
			return target.Invalid{}
		}
		if hg, ok := val.Head.(core.HeadGlobal); ok {
			text, ok := g.TextOf(hg.Name)
			if !ok {
				return target.Invalid{}
			}
			switch text {
			case "true":
				return target.BoolLit{Value: true}
			case "false":
				return target.BoolLit{Value: false}
			default:
				return target.Var{Name: text}
			}
		}
	}
	return target.Invalid{}
}

func lowerConstant(c core.ConstantValue) target.Term {
	switch c.Kind {
	case core.IntConstant:
		return target.IntLit{Text: c.Int.String()}
	case core.F32Constant:
		return target.FloatLit{Value: float64(math.Float32frombits(c.F32Bits)), Bits32: true}
	case core.F64Constant:
		return target.FloatLit{Value: math.Float64frombits(c.F64Bits), Bits32: false}
	default:
		return target.Invalid{}
	}
}

var goHostTypeByRuntime = map[globals.RuntimeType]string{
	globals.U8:    "uint8",
	globals.I8:    "int8",
	globals.U16Le: "uint16",
	globals.U16Be: "uint16",
	globals.U32Le: "uint32",
	globals.U32Be: "uint32",
	globals.U64Le: "uint64",
	globals.U64Be: "uint64",
	globals.I16Le: "int16",
	globals.I16Be: "int16",
	globals.I32Le: "int32",
	globals.I32Be: "int32",
	globals.I64Le: "int64",
	globals.I64Be: "int64",
	globals.F32Le: "float32",
	globals.F32Be: "float32",
	globals.F64Le: "float64",
	globals.F64Be: "float64",
}

func runtimeTypeByName(name string) (globals.RuntimeType, bool) {
	for _, rt := range globals.FormatGlobalNames {
		if string(rt) == name {
			return rt, true
		}
	}
	return "", false
}

func primitiveHostType(rt globals.RuntimeType) target.Type {
	return target.PrimitiveType{GoName: goHostTypeByRuntime[rt]}
}

func primitiveFormatType(rt globals.RuntimeType) target.FormatType {
	return target.PrimitiveFormat{RuntimeName: string(rt)}
}
