package errors

import (
	"testing"

	"fathomgo/internal/ast"
)

func TestNew_AssignsStableCode(t *testing.T) {
	r := New(KindUnboundName, ast.Range{}, "unbound name 'foo'")
	if r.Code != "FMT002" {
		t.Fatalf("Code = %q, want FMT002", r.Code)
	}
	if r.Severity != "error" {
		t.Fatalf("Severity = %q, want error", r.Severity)
	}
}

func TestSink_HasErrors(t *testing.T) {
	s := NewSink()
	if s.HasErrors() {
		t.Fatalf("empty sink must not report errors")
	}
	s.Emit(New(KindUnboundName, ast.Range{}, "x"))
	if !s.HasErrors() {
		t.Fatalf("sink with an Error-severity report must report HasErrors")
	}
}

func TestSink_DrainOrderMatchesEmitOrder(t *testing.T) {
	s := NewSink()
	first := New(KindUnboundName, ast.Range{Start: ast.Pos{Offset: 10}}, "first")
	second := New(KindMismatchedType, ast.Range{Start: ast.Pos{Offset: 20}}, "second")
	s.Emit(first)
	s.Emit(second)

	got := s.Reports()
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("Reports() must preserve emission order")
	}
}

func TestSink_SortedByRangeIsNonDecreasing(t *testing.T) {
	s := NewSink()
	s.Emit(New(KindUnboundName, ast.Range{Start: ast.Pos{Offset: 20}}, "later"))
	s.Emit(New(KindUnboundName, ast.Range{Start: ast.Pos{Offset: 10}}, "earlier"))

	sorted := s.SortedByRange()
	if sorted[0].Message != "earlier" || sorted[1].Message != "later" {
		t.Fatalf("SortedByRange must order by ascending start offset")
	}
}

func TestBug_HasNoRange(t *testing.T) {
	r := Bug("invariant violated")
	if r.Range != nil {
		t.Fatalf("Bug reports should not carry a source range")
	}
	if r.Severity != "bug" {
		t.Fatalf("Severity = %q, want bug", r.Severity)
	}
}

func TestToJSON_RoundTrips(t *testing.T) {
	reports := []*Report{New(KindInvalidFormat, ast.Range{}, "not a format")}
	out, err := ToJSON(reports, true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if out == "" {
		t.Fatalf("ToJSON produced empty output")
	}
}
