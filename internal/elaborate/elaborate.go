// Package elaborate implements bidirectional type checking of surface
// (internal/ast) terms into core (internal/core) terms: Synth for terms
// whose type can be read off the term itself, Check for terms whose type
// must be supplied by the context (spec.md §4.C). Diagnostics are
// accumulated into an internal/errors.Sink instead of aborting on the first
// failure; every failing rule still returns a well-formed core.Error node so
// the caller always has a term to continue with (spec.md §5's
// accumulate-don't-abort philosophy, and invariant 3's Error absorption).
package elaborate

import (
	"fmt"
	"math/big"

	"fathomgo/internal/ast"
	"fathomgo/internal/core"
	"fathomgo/internal/errors"
	"fathomgo/internal/eval"
	"fathomgo/internal/globals"
	"fathomgo/internal/intern"
)

// Elaborator holds everything a single module's elaboration needs: the
// ambient Globals table, the module items checked so far (in source order,
// spec.md §4.D), and the diagnostic sink. Items and ItemTypes are populated
// by the module checker (component D) as each item is accepted, so that
// later items in the same module can refer to earlier ones but never to
// later ones (spec.md §4.D's no-forward-reference rule).
type Elaborator struct {
	Interner  *intern.Interner
	Globals   core.Globals
	Names     globals.Names
	Items     core.ItemMap
	ItemTypes map[intern.Name]core.Value
	Sink      *errors.Sink
}

// New creates an Elaborator over an empty module.
func New(in *intern.Interner, g core.Globals, names globals.Names, sink *errors.Sink) *Elaborator {
	return &Elaborator{
		Interner:  in,
		Globals:   g,
		Names:     names,
		Items:     core.ItemMap{},
		ItemTypes: map[intern.Name]core.Value{},
		Sink:      sink,
	}
}

func (e *Elaborator) eval(t core.Term) core.Value { return eval.Eval(e.Globals, e.Items, t) }

func (e *Elaborator) boolType() core.Value {
	return &core.Neutral{Head: core.HeadGlobal{Name: e.Names.Bool}}
}

func (e *Elaborator) intType() core.Value {
	return &core.Neutral{Head: core.HeadGlobal{Name: e.Names.Int}}
}

func (e *Elaborator) floatType(bits32 bool) core.Value {
	if bits32 {
		return &core.Neutral{Head: core.HeadGlobal{Name: e.Names.F32}}
	}
	return &core.Neutral{Head: core.HeadGlobal{Name: e.Names.F64}}
}

// Synth elaborates term and returns both its core form and its type, read
// off the term's own shape without any external expectation.
func (e *Elaborator) Synth(term ast.Term) (core.Term, core.Value) {
	rng := term.TermRange()
	switch t := term.(type) {
	case *ast.Name:
		return e.synthName(rng, t)

	case *ast.Ann:
		typeTerm, classifier, ok := e.synthClassifier(t.Type)
		if !ok {
			return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
		}
		valueTerm := e.Check(t.Term, classifier)
		return &core.Ann{Rng: rng, Term: valueTerm, Type: typeTerm}, classifier

	case *ast.UniverseLit:
		return &core.Universe{Rng: rng, Level: t.Level}, &core.ValueUniverse{Rng: rng, Level: t.Level + 1}

	case *ast.FunctionType:
		paramTerm, _, _ := e.synthClassifier(t.Param)
		bodyTerm, bodyClassifier, _ := e.synthClassifier(t.Body)
		level := 0
		if u, ok := bodyClassifier.(*core.ValueUniverse); ok {
			level = u.Level
		}
		return &core.FunctionType{Rng: rng, ParamType: paramTerm, BodyType: bodyTerm},
			&core.ValueUniverse{Rng: rng, Level: level}

	case *ast.FunctionElim:
		headTerm, headType := e.Synth(t.Head)
		fnType, ok := headType.(*core.ValueFunctionType)
		if !ok {
			if _, isErr := headType.(*core.ValueError); !isErr {
				e.Sink.Emit(errors.New(errors.KindNotAFunction, rng,
					fmt.Sprintf("cannot apply a non-function value of type %s", headType)))
			}
			return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
		}
		argTerm := e.Check(t.Argument, fnType.ParamType)
		return &core.FunctionElim{Rng: rng, Head: headTerm, Argument: argTerm}, fnType.BodyType

	case *ast.IntLit:
		// spec.md §4.C's literal rule: an integer literal's type can never be
		// read off the literal itself (any width/signedness could fit), so
		// synthesizing one outside a Check context is always ambiguous. A
		// literal actually used somewhere always arrives through Check (a
		// declared alias type, a struct field's format, a match branch
		// checked against its sibling branches' type).
		if _, ok := new(big.Int).SetString(t.Text, 10); !ok {
			e.Sink.Emit(errors.New(errors.KindParseError, rng, fmt.Sprintf("invalid integer literal %q", t.Text)))
			return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
		}
		e.Sink.Emit(errors.New(errors.KindAmbiguousLiteral, rng,
			fmt.Sprintf("ambiguous integer literal %q: annotate with a target type (e.g. `: Int` or a sized integer format)", t.Text)))
		return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}

	case *ast.FloatLit:
		return e.synthFloatLit(rng, t), e.floatType(t.Bits32)

	case *ast.If:
		condTerm := e.Check(t.Cond, e.boolType())
		trueTerm, trueType := e.Synth(t.True)
		falseTerm := e.Check(t.False, trueType)
		return &core.BoolElim{Rng: rng, Scrutinee: condTerm, IfTrue: trueTerm, IfFalse: falseTerm}, trueType

	case *ast.Match:
		return e.synthMatch(rng, t)

	default:
		e.Sink.Emit(errors.Bug(fmt.Sprintf("elaborate.Synth: unhandled surface term %T", term)))
		return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
	}
}

// Check elaborates term against an expected type supplied by the caller.
// If/Match get dedicated check-mode rules so each branch only needs to
// Check against the shared expected type rather than mutually synthesizing
// and comparing; every other term shape falls back to Synth-then-compare.
func (e *Elaborator) Check(term ast.Term, expected core.Value) core.Term {
	rng := term.TermRange()

	if _, isErr := expected.(*core.ValueError); isErr {
		// The expected type already failed upstream; don't cascade a second
		// diagnostic for the same root cause.
		synthTerm, _ := e.Synth(term)
		return synthTerm
	}

	switch t := term.(type) {
	case *ast.If:
		condTerm := e.Check(t.Cond, e.boolType())
		trueTerm := e.Check(t.True, expected)
		falseTerm := e.Check(t.False, expected)
		return &core.BoolElim{Rng: rng, Scrutinee: condTerm, IfTrue: trueTerm, IfFalse: falseTerm}

	case *ast.Match:
		return e.checkMatch(rng, t, expected)

	case *ast.IntLit:
		return e.checkIntLit(rng, t, expected)
	}

	synthTerm, synthType := e.Synth(term)
	if eval.Equal(synthType, expected) {
		return synthTerm
	}
	if _, isErr := synthType.(*core.ValueError); isErr {
		return synthTerm
	}
	e.Sink.Emit(errors.New(errors.KindMismatchedType, rng,
		fmt.Sprintf("expected a term of type %s, found one of type %s", expected, synthType)))
	return &core.Error{Rng: rng}
}

// CheckFormat is a convenience wrapper for positions that must contain a
// format descriptor (struct fields, component E's lowering input).
func (e *Elaborator) CheckFormat(term ast.Term) core.Term {
	return e.Check(term, &core.ValueFormatType{})
}

func (e *Elaborator) synthName(rng ast.Range, t *ast.Name) (core.Term, core.Value) {
	name := e.Interner.Intern(t.Text)
	if item, ok := e.Items[name]; ok {
		switch item.(type) {
		case *core.AliasItem, *core.StructItem:
			return &core.Item{Rng: rng, Name: name}, e.ItemTypes[name]
		}
	}
	if entry, ok := e.Globals.Lookup(name); ok {
		return &core.Global{Rng: rng, Name: name}, e.eval(entry.Type)
	}
	e.Sink.Emit(errors.New(errors.KindUnboundName, rng, fmt.Sprintf("unbound name %q", t.Text)))
	return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
}

// synthClassifier elaborates term in a position that must itself denote a
// type or a format (an alias's declared type, a function type's domain and
// codomain): its Synth'd type must be a Universe or the Format universe,
// and the classifier value returned is term's own evaluated value, not its
// type (e.g. for `Int`, the classifier is the value `Int` itself, since
// Format-universe members double as the types of the values they format).
func (e *Elaborator) synthClassifier(term ast.Term) (core.Term, core.Value, bool) {
	coreTerm, ty := e.Synth(term)
	switch ty.(type) {
	case *core.ValueUniverse, *core.ValueFormatType:
		return coreTerm, e.eval(coreTerm), true
	}
	if _, isErr := ty.(*core.ValueError); isErr {
		return coreTerm, &core.ValueError{Rng: term.TermRange()}, false
	}
	e.Sink.Emit(errors.New(errors.KindMismatchedType, term.TermRange(),
		fmt.Sprintf("expected a type or a format, found a term of type %s", ty)))
	return &core.Error{Rng: term.TermRange()}, &core.ValueError{Rng: term.TermRange()}, false
}

func (e *Elaborator) synthFloatLit(rng ast.Range, t *ast.FloatLit) core.Term {
	var f float64
	if _, err := fmt.Sscanf(t.Text, "%g", &f); err != nil {
		e.Sink.Emit(errors.New(errors.KindParseError, rng, fmt.Sprintf("invalid float literal %q", t.Text)))
		return &core.Error{Rng: rng}
	}
	if t.Bits32 {
		return &core.Constant{Rng: rng, Constant: core.NewF32(float32(f))}
	}
	return &core.Constant{Rng: rng, Constant: core.NewF64(f)}
}

func (e *Elaborator) synthMatch(rng ast.Range, m *ast.Match) (core.Term, core.Value) {
	scrutineeTerm := e.Check(m.Scrutinee, e.intType())
	if m.Default == nil {
		e.Sink.Emit(errors.New(errors.KindInvalidFormat, rng, "match requires a default `_` branch"))
		return &core.Error{Rng: rng}, &core.ValueError{Rng: rng}
	}

	branches, seen := make([]core.IntBranch, 0, len(m.Branches)), map[int64]ast.Range{}
	var expected core.Value
	for _, b := range m.Branches {
		key, ok := e.parseBranchKey(b.Range, b.Key)
		if !ok {
			continue
		}
		if prior, dup := seen[key]; dup {
			e.Sink.Emit(errors.New(errors.KindDuplicateIntBranch, b.Range,
				fmt.Sprintf("duplicate match branch for key %d", key), fmt.Sprintf("first seen at %s", prior)))
			continue
		}
		seen[key] = b.Range

		var bodyTerm core.Term
		if expected == nil {
			bodyTerm, expected = e.Synth(b.Body)
		} else {
			bodyTerm = e.Check(b.Body, expected)
		}
		branches = append(branches, core.IntBranch{Key: key, Term: bodyTerm})
	}

	var defaultTerm core.Term
	if expected == nil {
		defaultTerm, expected = e.Synth(m.Default)
	} else {
		defaultTerm = e.Check(m.Default, expected)
	}
	return &core.IntElim{Rng: rng, Scrutinee: scrutineeTerm, Branches: branches, Default: defaultTerm}, expected
}

func (e *Elaborator) checkMatch(rng ast.Range, m *ast.Match, expected core.Value) core.Term {
	scrutineeTerm := e.Check(m.Scrutinee, e.intType())

	branches, seen := make([]core.IntBranch, 0, len(m.Branches)), map[int64]ast.Range{}
	for _, b := range m.Branches {
		key, ok := e.parseBranchKey(b.Range, b.Key)
		if !ok {
			continue
		}
		if prior, dup := seen[key]; dup {
			e.Sink.Emit(errors.New(errors.KindDuplicateIntBranch, b.Range,
				fmt.Sprintf("duplicate match branch for key %d", key), fmt.Sprintf("first seen at %s", prior)))
			continue
		}
		seen[key] = b.Range
		branches = append(branches, core.IntBranch{Key: key, Term: e.Check(b.Body, expected)})
	}

	var defaultTerm core.Term
	if m.Default == nil {
		e.Sink.Emit(errors.New(errors.KindInvalidFormat, rng, "match requires a default `_` branch"))
		defaultTerm = &core.Error{Rng: rng}
	} else {
		defaultTerm = e.Check(m.Default, expected)
	}
	return &core.IntElim{Rng: rng, Scrutinee: scrutineeTerm, Branches: branches, Default: defaultTerm}
}

// intWidth is the bit width and signedness a sized integer format checks an
// integer literal against (spec.md §4.C's literal rule: "bounds-checked by
// target type").
type intWidth struct {
	bits   uint
	signed bool
}

var intFormatWidths = map[globals.RuntimeType]intWidth{
	globals.U8:    {8, false},
	globals.I8:    {8, true},
	globals.U16Le: {16, false}, globals.U16Be: {16, false},
	globals.U32Le: {32, false}, globals.U32Be: {32, false},
	globals.U64Le: {64, false}, globals.U64Be: {64, false},
	globals.I16Le: {16, true}, globals.I16Be: {16, true},
	globals.I32Le: {32, true}, globals.I32Be: {32, true},
	globals.I64Le: {64, true}, globals.I64Be: {64, true},
}

// bounds returns the inclusive [min, max] an integer literal may take under
// this width/signedness.
func (w intWidth) bounds() (min, max *big.Int) {
	span := new(big.Int).Lsh(big.NewInt(1), w.bits)
	if !w.signed {
		return big.NewInt(0), span.Sub(span, big.NewInt(1))
	}
	half := span.Rsh(span, 1)
	max = new(big.Int).Sub(half, big.NewInt(1))
	min = new(big.Int).Neg(half)
	return min, max
}

func (w intWidth) contains(n *big.Int) bool {
	min, max := w.bounds()
	return n.Cmp(min) >= 0 && n.Cmp(max) <= 0
}

// globalNameOf returns the interned name v refers to when v is an abstract
// global's neutral value (e.g. the expected-type value produced for `U8` by
// synthClassifier), the shape every sized format/Int target takes.
func globalNameOf(v core.Value) (intern.Name, bool) {
	n, ok := v.(*core.Neutral)
	if !ok {
		return intern.Name{}, false
	}
	g, ok := n.Head.(core.HeadGlobal)
	if !ok {
		return intern.Name{}, false
	}
	return g.Name, true
}

// runtimeTypeOf reverses e.Names.Formats to find which sized format name
// refers to, if any.
func (e *Elaborator) runtimeTypeOf(name intern.Name) (globals.RuntimeType, bool) {
	for rt, n := range e.Names.Formats {
		if n == name {
			return rt, true
		}
	}
	return "", false
}

// checkIntLit elaborates an integer literal against an expected type,
// spec.md §4.C's literal rule: accepted against the abstract Int target with
// no bounds check, accepted against a sized integer format only if the value
// fits that format's width, rejected (mismatched type) against anything else
// (a float format, Bool, a function type, ...).
func (e *Elaborator) checkIntLit(rng ast.Range, t *ast.IntLit, expected core.Value) core.Term {
	n := new(big.Int)
	if _, ok := n.SetString(t.Text, 10); !ok {
		e.Sink.Emit(errors.New(errors.KindParseError, rng, fmt.Sprintf("invalid integer literal %q", t.Text)))
		return &core.Error{Rng: rng}
	}

	name, ok := globalNameOf(expected)
	if !ok {
		e.Sink.Emit(errors.New(errors.KindMismatchedType, rng,
			fmt.Sprintf("expected a term of type %s, found an integer literal", expected)))
		return &core.Error{Rng: rng}
	}

	if name == e.Names.Int {
		return &core.Constant{Rng: rng, Constant: core.NewInt(n)}
	}

	rt, ok := e.runtimeTypeOf(name)
	width, hasWidth := intFormatWidths[rt]
	if !ok || !hasWidth {
		e.Sink.Emit(errors.New(errors.KindMismatchedType, rng,
			fmt.Sprintf("expected a term of type %s, found an integer literal", expected)))
		return &core.Error{Rng: rng}
	}

	if !width.contains(n) {
		e.Sink.Emit(errors.New(errors.KindInvalidFormat, rng,
			fmt.Sprintf("integer literal %s is out of range for %s", t.Text, rt)))
		return &core.Error{Rng: rng}
	}
	return &core.Constant{Rng: rng, Constant: core.NewInt(n)}
}

func (e *Elaborator) parseBranchKey(rng ast.Range, text string) (int64, bool) {
	n := new(big.Int)
	if _, ok := n.SetString(text, 10); !ok {
		e.Sink.Emit(errors.New(errors.KindParseError, rng, fmt.Sprintf("invalid match key %q", text)))
		return 0, false
	}
	return n.Int64(), true
}
