package intern

import "testing"

func TestIntern_SameTextSameName(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Fatalf("interning the same text twice must return the same Name")
	}
}

func TestIntern_DifferentTextDifferentName(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b {
		t.Fatalf("interning different text must return different Names")
	}
}

func TestResolve_RoundTrips(t *testing.T) {
	in := New()
	n := in.Intern("widget")
	text, ok := in.Resolve(n)
	if !ok || text != "widget" {
		t.Fatalf("Resolve(Intern(%q)) = %q, %v", "widget", text, ok)
	}
}

func TestResolve_UnknownName(t *testing.T) {
	in := New()
	_, ok := in.Resolve(Name{})
	if ok {
		t.Fatalf("Resolve should fail for a Name this interner never produced")
	}
}

func TestMustResolve_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustResolve should panic on an unknown Name")
		}
	}()
	in := New()
	in.Intern("a") // occupies id 0
	other := New()
	other.MustResolve(Name{id: 5})
}
