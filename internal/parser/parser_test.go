package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fathomgo/internal/ast"
	"fathomgo/internal/parser"
)

func TestParseString_Alias(t *testing.T) {
	mod, err := parser.ParseString("t.fm", `alias Byte : Type 0 = U8;`)
	require.NoError(t, err)
	require.Len(t, mod.Items, 1)

	alias, ok := mod.Items[0].(*ast.Alias)
	require.True(t, ok)
	require.Equal(t, "Byte", alias.Name)
	require.NotNil(t, alias.DeclaredType)

	universe, ok := alias.DeclaredType.(*ast.UniverseLit)
	require.True(t, ok)
	require.Equal(t, 0, universe.Level)

	name, ok := alias.Term.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "U8", name.Text)
}

func TestParseString_StructWithDocAndIf(t *testing.T) {
	src := `
/// Point on a grid.
struct Point {
    /// little-endian x
    x: U16Le,
    y: if tag then U16Le else U16Be,
}
`
	mod, err := parser.ParseString("t.fm", src)
	require.NoError(t, err)
	require.Len(t, mod.Items, 1)

	s, ok := mod.Items[0].(*ast.Struct)
	require.True(t, ok)
	require.Equal(t, "Point", s.Name)
	require.Equal(t, []string{" Point on a grid."}, s.Doc)
	require.Len(t, s.Fields, 2)
	require.Equal(t, []string{" little-endian x"}, s.Fields[0].Doc)

	ifTerm, ok := s.Fields[1].FormatTerm.(*ast.If)
	require.True(t, ok)
	require.IsType(t, &ast.Name{}, ifTerm.Cond)
}

func TestParseString_MatchWithDefault(t *testing.T) {
	src := `alias Tagged = match tag { 1 => U8, 2 => U16Le, _ => U8 };`
	mod, err := parser.ParseString("t.fm", src)
	require.NoError(t, err)

	alias := mod.Items[0].(*ast.Alias)
	m, ok := alias.Term.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Branches, 2)
	require.Equal(t, "1", m.Branches[0].Key)
	require.NotNil(t, m.Default)
}

func TestParseString_ApplicationAndArrow(t *testing.T) {
	src := `alias F : Int -> Type 0 = Array len;`
	mod, err := parser.ParseString("t.fm", src)
	require.NoError(t, err)

	alias := mod.Items[0].(*ast.Alias)
	arrow, ok := alias.DeclaredType.(*ast.FunctionType)
	require.True(t, ok)
	require.IsType(t, &ast.Name{}, arrow.Param)

	app, ok := alias.Term.(*ast.FunctionElim)
	require.True(t, ok)
	require.Equal(t, "Array", app.Head.(*ast.Name).Text)
	require.Equal(t, "len", app.Argument.(*ast.Name).Text)
}

func TestParseString_RejectsGarbage(t *testing.T) {
	_, err := parser.ParseString("t.fm", `struct {{{`)
	require.Error(t, err)
}
