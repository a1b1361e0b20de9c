package eval

import "fathomgo/internal/core"

// ReadBack converts a value back into the term syntax. It is total and is
// the (up-to-equivalence) inverse of Eval on closed, well-typed terms
// (spec.md invariant 4).
func ReadBack(value core.Value) core.Term {
	switch v := value.(type) {
	case *core.Neutral:
		return readBackNeutral(v.Head, v.Spine)
	case *core.ValueUniverse:
		return &core.Universe{Rng: v.Rng, Level: v.Level}
	case *core.ValueFormatType:
		return &core.FormatType{Rng: v.Rng}
	case *core.ValueFunctionType:
		return &core.FunctionType{
			Rng:       v.Rng,
			ParamType: ReadBack(v.ParamType),
			BodyType:  ReadBack(v.BodyType),
		}
	case *core.ValueConstant:
		return &core.Constant{Rng: v.Rng, Constant: v.Constant}
	case *core.ValueError:
		return &core.Error{Rng: v.Rng}
	default:
		panic("eval: unhandled value variant in ReadBack")
	}
}

// readBackNeutral folds a neutral's head and spine back into the
// corresponding chain of eliminator terms, each carrying its original range.
func readBackNeutral(head core.Head, spine []core.Elim) core.Term {
	var result core.Term
	switch h := head.(type) {
	case core.HeadGlobal:
		result = &core.Global{Rng: h.Rng, Name: h.Name}
	case core.HeadItem:
		result = &core.Item{Rng: h.Rng, Name: h.Name}
	case core.HeadError:
		result = &core.Error{Rng: h.Rng}
	default:
		panic("eval: unhandled head variant in readBackNeutral")
	}
	for _, e := range spine {
		switch e := e.(type) {
		case core.ElimFunction:
			result = &core.FunctionElim{Rng: e.Rng, Head: result, Argument: ReadBack(e.Argument)}
		case core.ElimBool:
			result = &core.BoolElim{Rng: e.Rng, Scrutinee: result, IfTrue: e.IfTrue, IfFalse: e.IfFalse}
		case core.ElimInt:
			result = &core.IntElim{Rng: e.Rng, Scrutinee: result, Branches: e.Branches, Default: e.Default}
		default:
			panic("eval: unhandled elim variant in readBackNeutral")
		}
	}
	return result
}
