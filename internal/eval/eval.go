// Package eval implements the core calculus's operational semantics:
// evaluation to weak-head-normal-form values with neutral terms, read-back
// into syntax, and definitional equality (spec.md §4.B). Evaluation is
// total and pure given a fixed (Globals, ItemMap); it never fails, reporting
// undefined references as core.ValueError instead of an exception.
package eval

import (
	"fathomgo/internal/core"
)

// Eval evaluates term to a value under globals and items. It always
// terminates and always returns a value, per spec.md invariant 1.
func Eval(globals core.Globals, items core.ItemMap, term core.Term) core.Value {
	switch t := term.(type) {
	case *core.Global:
		entry, ok := globals.Lookup(t.Name)
		if !ok {
			return &core.ValueError{Rng: t.Rng}
		}
		if entry.Definition != nil {
			return Eval(globals, items, entry.Definition)
		}
		return &core.Neutral{Rng: t.Rng, Head: core.HeadGlobal{Rng: t.Rng, Name: t.Name}}

	case *core.Item:
		item, ok := items[t.Name]
		if !ok {
			return &core.ValueError{Rng: t.Rng}
		}
		switch item := item.(type) {
		case *core.AliasItem:
			return Eval(globals, items, item.Term)
		case *core.StructItem:
			return &core.Neutral{Rng: t.Rng, Head: core.HeadItem{Rng: t.Rng, Name: t.Name}}
		default:
			return &core.ValueError{Rng: t.Rng}
		}

	case *core.Ann:
		return Eval(globals, items, t.Term)

	case *core.Universe:
		return &core.ValueUniverse{Rng: t.Rng, Level: t.Level}

	case *core.FormatType:
		return &core.ValueFormatType{Rng: t.Rng}

	case *core.FunctionType:
		return &core.ValueFunctionType{
			Rng:       t.Rng,
			ParamType: Eval(globals, items, t.ParamType),
			BodyType:  Eval(globals, items, t.BodyType),
		}

	case *core.FunctionElim:
		head := Eval(globals, items, t.Head)
		if neutral, ok := head.(*core.Neutral); ok {
			spine := appendElim(neutral.Spine, core.ElimFunction{
				Rng:      t.Rng,
				Argument: Eval(globals, items, t.Argument),
			})
			return &core.Neutral{Rng: t.Rng, Head: neutral.Head, Spine: spine}
		}
		// The core has no runtime lambda-reduction in this subset: the only
		// introducers of function values are neutral heads.
		return &core.ValueError{Rng: t.Rng}

	case *core.Constant:
		return &core.ValueConstant{Rng: t.Rng, Constant: t.Constant}

	case *core.BoolElim:
		return evalBoolElim(globals, items, t)

	case *core.IntElim:
		return evalIntElim(globals, items, t)

	case *core.Error:
		return &core.ValueError{Rng: t.Rng}

	default:
		panic("eval: unhandled term variant")
	}
}

func evalBoolElim(globals core.Globals, items core.ItemMap, t *core.BoolElim) core.Value {
	scrutinee := Eval(globals, items, t.Scrutinee)
	neutral, ok := scrutinee.(*core.Neutral)
	if !ok {
		return &core.Neutral{Rng: t.Rng, Head: core.HeadError{Rng: t.Scrutinee.Range()}, Spine: []core.Elim{
			core.ElimBool{Rng: t.Rng, IfTrue: t.IfTrue, IfFalse: t.IfFalse},
		}}
	}
	if headGlobal, ok := neutral.Head.(core.HeadGlobal); ok && len(neutral.Spine) == 0 {
		if text, ok2 := globals.TextOf(headGlobal.Name); ok2 {
			switch text {
			case "true":
				return Eval(globals, items, t.IfTrue)
			case "false":
				return Eval(globals, items, t.IfFalse)
			}
		}
	}
	spine := appendElim(neutral.Spine, core.ElimBool{Rng: t.Rng, IfTrue: t.IfTrue, IfFalse: t.IfFalse})
	return &core.Neutral{Rng: t.Rng, Head: neutral.Head, Spine: spine}
}

func evalIntElim(globals core.Globals, items core.ItemMap, t *core.IntElim) core.Value {
	scrutinee := Eval(globals, items, t.Scrutinee)
	if constant, ok := scrutinee.(*core.ValueConstant); ok && constant.Constant.Kind == core.IntConstant {
		key := constant.Constant.Int.Int64()
		if branch, ok := t.BranchByKey(key); ok {
			return Eval(globals, items, branch)
		}
		return Eval(globals, items, t.Default)
	}
	if neutral, ok := scrutinee.(*core.Neutral); ok {
		spine := appendElim(neutral.Spine, core.ElimInt{Rng: t.Rng, Branches: t.Branches, Default: t.Default})
		return &core.Neutral{Rng: t.Rng, Head: neutral.Head, Spine: spine}
	}
	return &core.Neutral{Rng: t.Rng, Head: core.HeadError{Rng: t.Scrutinee.Range()}, Spine: []core.Elim{
		core.ElimInt{Rng: t.Rng, Branches: t.Branches, Default: t.Default},
	}}
}

// appendElim copies the spine before appending, mirroring the reference
// implementation's `elims.clone()` (original_source's semantics.rs): values
// are immutable and freely shared, so spines must never be mutated in place.
func appendElim(spine []core.Elim, e core.Elim) []core.Elim {
	out := make([]core.Elim, len(spine), len(spine)+1)
	copy(out, spine)
	return append(out, e)
}
