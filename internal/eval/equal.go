package eval

import "fathomgo/internal/core"

// Equal decides definitional equality of two values (spec.md §4.B). Neutral
// values are compared by reading both sides back into terms and comparing
// those structurally; this keeps the comparator quadratic in syntax size
// but avoids maintaining substitutions to detect alpha-equivalent neutrals.
// ValueError is equal to everything on either side (invariant 3), which
// stops a single upstream diagnostic from cascading into dozens more.
func Equal(v1, v2 core.Value) bool {
	if _, ok := v1.(*core.ValueError); ok {
		return true
	}
	if _, ok := v2.(*core.ValueError); ok {
		return true
	}

	switch a := v1.(type) {
	case *core.Neutral:
		b, ok := v2.(*core.Neutral)
		if !ok {
			return false
		}
		return core.TermEqual(readBackNeutral(a.Head, a.Spine), readBackNeutral(b.Head, b.Spine))
	case *core.ValueUniverse:
		b, ok := v2.(*core.ValueUniverse)
		return ok && a.Level == b.Level
	case *core.ValueFormatType:
		_, ok := v2.(*core.ValueFormatType)
		return ok
	case *core.ValueFunctionType:
		b, ok := v2.(*core.ValueFunctionType)
		// Contravariant in the parameter: equal iff the other side's
		// parameter type is equal to this one's, and the body types agree
		// in the usual (covariant) order.
		return ok && Equal(b.ParamType, a.ParamType) && Equal(a.BodyType, b.BodyType)
	case *core.ValueConstant:
		b, ok := v2.(*core.ValueConstant)
		return ok && a.Constant.Equal(b.Constant)
	default:
		return false
	}
}
