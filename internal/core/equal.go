package core

// TermEqual decides structural equality of two core terms, ignoring source
// ranges. This is the notion of equality core.Term values support directly;
// neutral-value equality in package eval reduces to this by reading both
// sides back into terms first (spec.md §4.A, §4.B).
func TermEqual(a, b Term) bool {
	switch a := a.(type) {
	case *Global:
		b, ok := b.(*Global)
		return ok && a.Name == b.Name
	case *Item:
		b, ok := b.(*Item)
		return ok && a.Name == b.Name
	case *Ann:
		b, ok := b.(*Ann)
		return ok && TermEqual(a.Term, b.Term) && TermEqual(a.Type, b.Type)
	case *Universe:
		b, ok := b.(*Universe)
		return ok && a.Level == b.Level
	case *FormatType:
		_, ok := b.(*FormatType)
		return ok
	case *FunctionType:
		b, ok := b.(*FunctionType)
		return ok && TermEqual(a.ParamType, b.ParamType) && TermEqual(a.BodyType, b.BodyType)
	case *FunctionElim:
		b, ok := b.(*FunctionElim)
		return ok && TermEqual(a.Head, b.Head) && TermEqual(a.Argument, b.Argument)
	case *Constant:
		b, ok := b.(*Constant)
		return ok && a.Constant.Equal(b.Constant)
	case *BoolElim:
		b, ok := b.(*BoolElim)
		return ok && TermEqual(a.Scrutinee, b.Scrutinee) &&
			TermEqual(a.IfTrue, b.IfTrue) && TermEqual(a.IfFalse, b.IfFalse)
	case *IntElim:
		b, ok := b.(*IntElim)
		if !ok || !TermEqual(a.Scrutinee, b.Scrutinee) || !TermEqual(a.Default, b.Default) {
			return false
		}
		return intBranchesEqual(a.Branches, b.Branches)
	case *Error:
		_, ok := b.(*Error)
		return ok
	default:
		return false
	}
}

// intBranchesEqual treats Branches as the unordered map spec.md describes:
// equal iff they have exactly the same key set, each mapping to equal terms.
func intBranchesEqual(a, b []IntBranch) bool {
	if len(a) != len(b) {
		return false
	}
	bByKey := make(map[int64]Term, len(b))
	for _, br := range b {
		bByKey[br.Key] = br.Term
	}
	for _, br := range a {
		other, ok := bByKey[br.Key]
		if !ok || !TermEqual(br.Term, other) {
			return false
		}
	}
	return true
}
