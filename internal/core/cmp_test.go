package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"fathomgo/internal/ast"
)

// TermEqual (equal.go) answers "do these compare equal"; this test instead
// wants a readable diff when two elaborator outputs drift, so it reaches
// for go-cmp directly rather than re-deriving TermEqual's bool into text.
// Structural comparison must still ignore source ranges, the same as
// TermEqual's own semantics (spec.md §4.A).
func TestCmp_IgnoresRangesAcrossTermTree(t *testing.T) {
	ignoreRanges := cmpopts.IgnoreTypes(ast.Range{})

	a := &FunctionType{
		Rng:       ast.Range{Start: ast.Pos{Line: 1}},
		ParamType: &Universe{Rng: ast.Range{Start: ast.Pos{Line: 2}}, Level: 0},
		BodyType:  &FormatType{Rng: ast.Range{Start: ast.Pos{Line: 3}}},
	}
	b := &FunctionType{
		Rng:       ast.Range{Start: ast.Pos{Line: 99}},
		ParamType: &Universe{Rng: ast.Range{Start: ast.Pos{Line: 100}}, Level: 0},
		BodyType:  &FormatType{Rng: ast.Range{Start: ast.Pos{Line: 101}}},
	}

	if diff := cmp.Diff(a, b, ignoreRanges); diff != "" {
		t.Fatalf("terms should be identical once ranges are ignored (-a +b):\n%s", diff)
	}
}

func TestCmp_ReportsRealDifference(t *testing.T) {
	ignoreRanges := cmpopts.IgnoreTypes(ast.Range{})

	a := &Universe{Level: 0}
	b := &Universe{Level: 1}

	if cmp.Equal(a, b, ignoreRanges) {
		t.Fatalf("terms with different universe levels must not compare equal")
	}
}
