package lower_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fathomgo/internal/core"
	"fathomgo/internal/errors"
	"fathomgo/internal/globals"
	"fathomgo/internal/intern"
	"fathomgo/internal/lower"
	"fathomgo/internal/module"
	"fathomgo/internal/parser"
	"fathomgo/internal/target"
)

func setup(t *testing.T) (*intern.Interner, core.Globals, globals.Names, *errors.Sink) {
	t.Helper()
	in := intern.New()
	g, names := globals.Build(in)
	return in, g, names, errors.NewSink()
}

func checkAndLower(t *testing.T, src string) *target.Module {
	t.Helper()
	in, g, names, sink := setup(t)
	surface, err := parser.ParseString("t.fm", src)
	require.NoError(t, err)
	checked := module.Check(in, g, names, sink, surface)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Reports())
	return lower.Lower(checked, g, in)
}

// spec.md §4.E: an alias whose type is a primitive lowers to Const.
func TestLower_ValueAliasBecomesConst(t *testing.T) {
	mod := checkAndLower(t, `alias Three : U8 = 3;`)
	require.Len(t, mod.Items, 1)

	c, ok := mod.Items[0].(*target.Const)
	require.True(t, ok)
	require.Equal(t, "Three", c.Name)
	require.Equal(t, target.PrimitiveType{GoName: "uint8"}, c.HostType)
	lit, ok := c.Initializer.(target.IntLit)
	require.True(t, ok)
	require.Equal(t, "3", lit.Text)
}

// spec.md §4.E: an alias whose body requires computation lowers to Function.
func TestLower_ComputedAliasBecomesFunction(t *testing.T) {
	mod := checkAndLower(t, `alias Flag : Bool = if true then false else true;`)
	require.Len(t, mod.Items, 1)

	f, ok := mod.Items[0].(*target.Function)
	require.True(t, ok)
	require.Equal(t, "Flag", f.Name)
	ifTerm, ok := f.Body.(target.If)
	require.True(t, ok)
	require.Equal(t, target.BoolLit{Value: true}, ifTerm.Cond)
}

// spec.md §4.E: an alias whose body is itself a FormatType-valued expression
// lowers to a type synonym.
func TestLower_TypeAliasBecomesAlias(t *testing.T) {
	mod := checkAndLower(t, `alias MyU32 = U32Le;`)
	require.Len(t, mod.Items, 1)

	a, ok := mod.Items[0].(*target.Alias)
	require.True(t, ok)
	require.Equal(t, "MyU32", a.Name)
	require.Equal(t, target.PrimitiveType{GoName: "uint32"}, a.HostType)
}

// spec.md §4.E's struct reader contract: fields lower in declaration order,
// each carrying both its host type and its format descriptor.
func TestLower_StructFieldsInOrder(t *testing.T) {
	mod := checkAndLower(t, `struct Point { x: U16Le, y: U16Be }`)
	require.Len(t, mod.Items, 1)

	s, ok := mod.Items[0].(*target.Struct)
	require.True(t, ok)
	require.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	require.Equal(t, "x", s.Fields[0].Name)
	require.Equal(t, target.PrimitiveFormat{RuntimeName: "U16Le"}, s.Fields[0].FormatType)
	require.Equal(t, "y", s.Fields[1].Name)
	require.Equal(t, target.PrimitiveFormat{RuntimeName: "U16Be"}, s.Fields[1].FormatType)
}

// spec.md §4.E's lowering table: "Item(n) referencing a struct" lowers to a
// named host type and a named format, used by a later struct's field.
func TestLower_StructReferenceBecomesNamedFormat(t *testing.T) {
	mod := checkAndLower(t, `
struct Inner { x: U8 }
struct Outer { inner: Inner }
`)
	require.Len(t, mod.Items, 2)

	outer := mod.Items[1].(*target.Struct)
	require.Len(t, outer.Fields, 1)
	require.Equal(t, target.NamedType{Name: "Inner"}, outer.Fields[0].HostType)
	require.Equal(t, target.NamedFormat{Name: "Inner"}, outer.Fields[0].FormatType)
}

// spec.md §8 scenario 6: a conditional format lowers to a tagged host type
// and an IfFormat reader, scrutinized by the abstract condition global.
func TestLower_ConditionalFormatBecomesIfType(t *testing.T) {
	in, g, names, sink := setup(t)
	g.Entries[in.Intern("tag")] = core.GlobalEntry{Type: &core.Global{Name: names.Bool}}

	surface, err := parser.ParseString("t.fm", `struct Point { data: if tag then U32Le else U32Be }`)
	require.NoError(t, err)
	checked := module.Check(in, g, names, sink, surface)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Reports())

	mod := lower.Lower(checked, g, in)
	s := mod.Items[0].(*target.Struct)
	require.Len(t, s.Fields, 1)

	ifFmt, ok := s.Fields[0].FormatType.(target.IfFormat)
	require.True(t, ok)
	require.Equal(t, target.Var{Name: "tag"}, ifFmt.Cond)
	require.Equal(t, target.PrimitiveFormat{RuntimeName: "U32Le"}, ifFmt.Left)
	require.Equal(t, target.PrimitiveFormat{RuntimeName: "U32Be"}, ifFmt.Right)

	ifType, ok := s.Fields[0].HostType.(target.IfType)
	require.True(t, ok)
	require.Equal(t, target.PrimitiveType{GoName: "uint32"}, ifType.Left)
	require.Equal(t, target.PrimitiveType{GoName: "uint32"}, ifType.Right)
}
