package emit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fathomgo/internal/emit"
	"fathomgo/internal/target"
)

func render(t *testing.T, mod *target.Module, cfg emit.Config) string {
	t.Helper()
	var out strings.Builder
	err := emit.Emit(&out, mod, cfg)
	require.NoError(t, err)
	return out.String()
}

// spec.md §4.E: an alias lowered to Const emits a single typed const decl.
func TestEmit_ConstItem(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Const{
			Name:        "Three",
			HostType:    target.PrimitiveType{GoName: "uint8"},
			Initializer: target.IntLit{Text: "3"},
		},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "const Three uint8 = 3")
}

// spec.md §4.E: an alias lowered to Function emits a nullary function whose
// body is a statement-level If, not an any-typed expression closure.
func TestEmit_FunctionItem_IfBody(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Function{
			Name:       "Flag",
			ReturnType: target.PrimitiveType{GoName: "bool"},
			Body: target.If{
				Cond: target.BoolLit{Value: true},
				Then: target.BoolLit{Value: false},
				Else: target.BoolLit{Value: true},
			},
		},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "func Flag() bool {")
	require.Contains(t, out, "if true {")
	require.Contains(t, out, "return false")
	require.Contains(t, out, "return true")
	// every control-flow path must end in a typed return, never an IIFE.
	require.NotContains(t, out, "func() any")
	require.NotContains(t, out, "func() interface{}")
}

// spec.md §8 scenario 4: a Match-bodied function lowers to a Go switch with
// sorted, deterministic case ordering and an explicit default branch.
func TestEmit_FunctionItem_MatchBody(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Function{
			Name:       "Pick",
			ReturnType: target.PrimitiveType{GoName: "uint8"},
			Body: target.Match{
				Scrutinee: target.Var{Name: "tag"},
				Branches: []target.MatchBranch{
					{Key: 2, Body: target.IntLit{Text: "20"}},
					{Key: 1, Body: target.IntLit{Text: "10"}},
				},
				Default: target.IntLit{Text: "0"},
			},
		},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "switch tag {")
	require.Contains(t, out, "case 1:\n\t\treturn 10")
	require.Contains(t, out, "case 2:\n\t\treturn 20")
	require.Contains(t, out, "default:\n\t\treturn 0")
	// branches must be sorted ascending regardless of input order.
	require.Less(t, strings.Index(out, "case 1:"), strings.Index(out, "case 2:"))
}

// spec.md §4.E: a type-synonym alias emits a Go type alias declaration.
func TestEmit_AliasItem(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Alias{Name: "MyU32", HostType: target.PrimitiveType{GoName: "uint32"}},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "type MyU32 = uint32")
}

// An empty struct still emits a Marker method and a reader that short-
// circuits with a zero value (no fields to decode).
func TestEmit_StructItem_Empty(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Struct{Name: "Empty"},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "type Empty struct{}")
	require.Contains(t, out, "func (Empty) Marker() {}")
	require.Contains(t, out, "func ReadEmpty(ctxt *runtime.ReadCtxt) (Empty, error) {")
	require.Contains(t, out, "return Empty{}, nil")
	// an import block is still required for the runtime Marker/reader, but
	// fmt is only pulled in when there's at least one field to format an
	// error around.
	require.Contains(t, out, `"fathomgo/internal/runtime"`)
	require.NotContains(t, out, `"fmt"`)
}

// spec.md §4.E's struct reader contract: fields decode in declaration
// order, each wrapped in its own error-returning check.
func TestEmit_StructItem_Fields(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Struct{
			Name: "Point",
			Fields: []target.StructField{
				{Name: "x", HostType: target.PrimitiveType{GoName: "uint16"}, FormatType: target.PrimitiveFormat{RuntimeName: "U16Le"}},
				{Name: "y", HostType: target.PrimitiveType{GoName: "uint16"}, FormatType: target.PrimitiveFormat{RuntimeName: "U16Be"}},
			},
		},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "type Point struct {\n\tX uint16\n\tY uint16\n}")
	require.Contains(t, out, "x, err := (runtime.U16Le{}).Read(ctxt)")
	require.Contains(t, out, `fmt.Errorf("Point.x: %w", err)`)
	require.Contains(t, out, "y, err := (runtime.U16Be{}).Read(ctxt)")
	require.Contains(t, out, "return Point{\n\t\tX: x,\n\t\tY: y,\n\t}, nil")
	require.Contains(t, out, `"fmt"`)
}

// A struct field referencing another struct item by name reads via that
// struct's own Read function, never a primitive runtime marker.
func TestEmit_StructItem_NamedFieldReference(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Struct{Name: "Inner", Fields: []target.StructField{
			{Name: "x", HostType: target.PrimitiveType{GoName: "uint8"}, FormatType: target.PrimitiveFormat{RuntimeName: "U8"}},
		}},
		&target.Struct{Name: "Outer", Fields: []target.StructField{
			{Name: "inner", HostType: target.NamedType{Name: "Inner"}, FormatType: target.NamedFormat{Name: "Inner"}},
		}},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "inner, err := ReadInner(ctxt)")
	require.Contains(t, out, "type Outer struct {\n\tInner Inner\n}")
}

// spec.md §8 scenario 6: a conditional-format field emits a var declaration
// plus an if/else block, with the IfType's inline struct text byte-for-byte
// identical at the var declaration and at both composite literal sites —
// Go requires structurally identical anonymous struct literals to unify.
func TestEmit_StructItem_ConditionalField(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Struct{
			Name: "Point",
			Fields: []target.StructField{
				{
					Name:     "data",
					HostType: target.IfType{Left: target.PrimitiveType{GoName: "uint32"}, Right: target.PrimitiveType{GoName: "uint32"}},
					FormatType: target.IfFormat{
						Cond:  target.Var{Name: "tag"},
						Left:  target.PrimitiveFormat{RuntimeName: "U32Le"},
						Right: target.PrimitiveFormat{RuntimeName: "U32Be"},
					},
				},
			},
		},
	}}
	out := render(t, mod, emit.DefaultConfig())

	const tagType = "struct { IsLeft bool; Left uint32; Right uint32 }"
	require.Contains(t, out, "var data "+tagType)
	require.Contains(t, out, "if tag {")
	require.Contains(t, out, "v, err := (runtime.U32Le{}).Read(ctxt)")
	require.Contains(t, out, "data = "+tagType+"{IsLeft: true, Left: v}")
	require.Contains(t, out, "} else {")
	require.Contains(t, out, "v, err := (runtime.U32Be{}).Read(ctxt)")
	require.Contains(t, out, "data = "+tagType+"{IsLeft: false, Right: v}")

	// the composite literals must reuse the var declaration's type text
	// verbatim, or Go would treat them as distinct anonymous struct types.
	varDecl := "var data " + tagType
	leftLit := tagType + "{IsLeft: true, Left: v}"
	rightLit := tagType + "{IsLeft: false, Right: v}"
	require.True(t, strings.Contains(out, varDecl))
	require.True(t, strings.Contains(out, leftLit))
	require.True(t, strings.Contains(out, rightLit))
}

// spec.md §4.F: an identifier colliding with a Go keyword is quoted with
// the configured reserved prefix rather than rejected.
func TestEmit_ReservedWordIdentifier(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Const{Name: "type", HostType: target.PrimitiveType{GoName: "uint8"}, Initializer: target.IntLit{Text: "1"}},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "const _type uint8 = 1")
}

// The doc-line header and per-item doc comments normalize to NFC and have
// trailing whitespace trimmed (SPEC_FULL.md's golang.org/x/text wiring).
func TestEmit_DocLinesNormalized(t *testing.T) {
	mod := &target.Module{
		Doc: []string{"module doc   "},
		Items: []target.Item{
			&target.Const{
				Name:        "One",
				Docs:        []string{"field doc   "},
				HostType:    target.PrimitiveType{GoName: "uint8"},
				Initializer: target.IntLit{Text: "1"},
			},
		},
	}
	out := render(t, mod, emit.DefaultConfig())
	require.Contains(t, out, "// module doc\n")
	require.Contains(t, out, "// field doc\n")
	require.NotContains(t, out, "module doc   \n")
}

// A module with no structs needs neither the runtime nor the fmt import.
func TestEmit_NoImportsWhenNoStructs(t *testing.T) {
	mod := &target.Module{Items: []target.Item{
		&target.Const{Name: "One", HostType: target.PrimitiveType{GoName: "uint8"}, Initializer: target.IntLit{Text: "1"}},
	}}
	out := render(t, mod, emit.DefaultConfig())
	require.NotContains(t, out, "import (")
}

// The package clause and generator header reflect the supplied Config, not
// hardcoded defaults.
func TestEmit_HeaderAndPackageFromConfig(t *testing.T) {
	cfg := emit.Config{
		GeneratorName:    "customgen",
		GeneratorVersion: "9.9.9",
		Package:          "decoded",
		ReservedPrefix:   "_",
		RuntimeImport:    "example.com/rt",
	}
	mod := &target.Module{Items: []target.Item{
		&target.Struct{Name: "Empty"},
	}}
	out := render(t, mod, cfg)
	require.Contains(t, out, "// automatically generated by customgen 9.9.9")
	require.Contains(t, out, "package decoded")
	require.Contains(t, out, `"example.com/rt"`)
}
