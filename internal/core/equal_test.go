package core

import (
	"testing"

	"fathomgo/internal/ast"
	"fathomgo/internal/intern"
)

func TestTermEqual_IgnoresRanges(t *testing.T) {
	in := intern.New()
	n := in.Intern("true")

	a := &Global{Rng: ast.Range{Start: ast.Pos{Line: 1}}, Name: n}
	b := &Global{Rng: ast.Range{Start: ast.Pos{Line: 99}}, Name: n}

	if !TermEqual(a, b) {
		t.Fatalf("TermEqual must ignore source ranges")
	}
}

func TestTermEqual_DifferentConstructors(t *testing.T) {
	a := &Universe{Level: 0}
	b := &FormatType{}
	if TermEqual(a, b) {
		t.Fatalf("different term constructors must never compare equal")
	}
}

func TestTermEqual_IntElimBranchesUnordered(t *testing.T) {
	mk := func(order []int64) *IntElim {
		var branches []IntBranch
		for _, k := range order {
			branches = append(branches, IntBranch{Key: k, Term: &Constant{Constant: NewIntInt64(k * 10)}})
		}
		return &IntElim{
			Scrutinee: &Constant{Constant: NewIntInt64(0)},
			Branches:  branches,
			Default:   &Error{},
		}
	}

	a := mk([]int64{1, 2, 3})
	b := mk([]int64{3, 1, 2})

	if !TermEqual(a, b) {
		t.Fatalf("IntElim branch equality must not depend on slice order")
	}
}

func TestIntElim_SortedBranchesAscending(t *testing.T) {
	ie := &IntElim{Branches: []IntBranch{
		{Key: 5}, {Key: 1}, {Key: 3},
	}}
	sorted := ie.SortedBranches()
	want := []int64{1, 3, 5}
	for i, b := range sorted {
		if b.Key != want[i] {
			t.Fatalf("SortedBranches()[%d].Key = %d, want %d", i, b.Key, want[i])
		}
	}
	// Original order must be untouched.
	if ie.Branches[0].Key != 5 {
		t.Fatalf("SortedBranches must not mutate the receiver")
	}
}

func TestIntElim_BranchByKey(t *testing.T) {
	one := &Constant{Constant: NewIntInt64(100)}
	ie := &IntElim{Branches: []IntBranch{{Key: 1, Term: one}}}

	if got, ok := ie.BranchByKey(1); !ok || got != one {
		t.Fatalf("BranchByKey(1) = %v, %v; want %v, true", got, ok, one)
	}
	if _, ok := ie.BranchByKey(2); ok {
		t.Fatalf("BranchByKey(2) should not be found")
	}
}
