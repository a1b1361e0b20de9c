package elaborate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fathomgo/internal/core"
	"fathomgo/internal/errors"
	"fathomgo/internal/globals"
	"fathomgo/internal/intern"
	"fathomgo/internal/module"
	"fathomgo/internal/parser"
)

func setup(t *testing.T) (*intern.Interner, core.Globals, globals.Names, *errors.Sink) {
	t.Helper()
	in := intern.New()
	g, names := globals.Build(in)
	return in, g, names, errors.NewSink()
}

func checkSrc(t *testing.T, src string) *errors.Sink {
	t.Helper()
	in, g, names, sink := setup(t)
	surface, err := parser.ParseString("t.fm", src)
	require.NoError(t, err)
	module.Check(in, g, names, sink, surface)
	return sink
}

// spec.md §4.C: a literal checked against the abstract Int target is always
// accepted, with no bounds check.
func TestCheck_IntLitAgainstInt(t *testing.T) {
	sink := checkSrc(t, `alias N : Int = 12345;`)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Reports())
}

// spec.md §4.C: a literal checked against a sized integer format is accepted
// when it fits that format's width. Surface syntax has no unary minus (an
// integer literal token is always `[0-9]+`), so these exercise each format's
// upper bound rather than its (unreachable-from-source) negative range.
func TestCheck_IntLitAgainstEachSizedFormat(t *testing.T) {
	cases := []struct {
		format string
		lit    string
	}{
		{"U8", "255"},
		{"I8", "127"},
		{"U16Le", "65535"},
		{"U16Be", "65535"},
		{"U32Le", "4294967295"},
		{"U32Be", "4294967295"},
		{"U64Le", "18446744073709551615"},
		{"U64Be", "18446744073709551615"},
		{"I16Le", "32767"},
		{"I16Be", "32767"},
		{"I32Le", "2147483647"},
		{"I32Be", "2147483647"},
		{"I64Le", "9223372036854775807"},
		{"I64Be", "9223372036854775807"},
	}
	for _, c := range cases {
		t.Run(c.format, func(t *testing.T) {
			sink := checkSrc(t, `alias N : `+c.format+` = `+c.lit+`;`)
			require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Reports())
		})
	}
}

// spec.md §4.C: a literal above a sized format's upper bound is rejected
// rather than silently truncated or widened.
func TestCheck_IntLitOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		format string
		lit    string
	}{
		{"unsigned_overflow", "U8", "256"},
		{"signed_overflow", "I8", "128"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sink := checkSrc(t, `alias N : `+c.format+` = `+c.lit+`;`)
			require.True(t, sink.HasErrors())
			reports := sink.Reports()
			require.Len(t, reports, 1)
			require.Equal(t, errors.KindInvalidFormat, reports[0].Kind)
		})
	}
}

// spec.md §4.C: a literal checked against a non-numeric expected type (here,
// Bool) is a mismatched-type error, not a bounds-check failure.
func TestCheck_IntLitAgainstNonNumericType(t *testing.T) {
	sink := checkSrc(t, `alias N : Bool = 3;`)
	require.True(t, sink.HasErrors())
	reports := sink.Reports()
	require.Len(t, reports, 1)
	require.Equal(t, errors.KindMismatchedType, reports[0].Kind)
}

// spec.md §4.C: an integer literal's type can never be read off the literal
// itself, so an alias with no declared type (forcing Synth) is ambiguous.
func TestSynth_BareIntLitIsAmbiguous(t *testing.T) {
	sink := checkSrc(t, `alias N = 3;`)
	require.True(t, sink.HasErrors())
	reports := sink.Reports()
	require.Len(t, reports, 1)
	require.Equal(t, errors.KindAmbiguousLiteral, reports[0].Kind)
}

// A match whose alias carries a declared type elaborates via checkMatch, so
// every branch body is checked against that declared type rather than
// synthesized, exercising checkIntLit from a second call site.
func TestCheck_IntLitInMatchBranch(t *testing.T) {
	sink := checkSrc(t, `alias N : U16Le = match 1 { 0 => 10, _ => 20 };`)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Reports())
}
