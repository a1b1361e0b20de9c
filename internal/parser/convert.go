package parser

import (
	plex "github.com/alecthomas/participle/v2/lexer"

	"fathomgo/internal/ast"
	"fathomgo/internal/grammar"
)

func pos(filename string, p plex.Position) ast.Pos {
	return ast.Pos{File: filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// rangeAt builds a single-point Range from a captured lexer.Position. Ranges
// exist purely for diagnostics (ast.Range's doc comment); a precise end
// offset is not worth the grammar complexity of threading an EndPos field
// through every alternative.
func rangeAt(filename string, p plex.Position) ast.Range {
	start := pos(filename, p)
	return ast.Range{Start: start, End: start}
}

func convertProgram(filename string, prog *grammar.Program) *ast.Module {
	mod := &ast.Module{Doc: stripDocMarker(prog.ModuleDoc, "//!")}
	for _, item := range prog.Items {
		mod.Items = append(mod.Items, convertItem(filename, item))
	}
	return mod
}

func stripDocMarker(lines []string, marker string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = trimPrefixLen(l, len(marker))
	}
	return out
}

func trimPrefixLen(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[n:]
}

func convertItem(filename string, item *grammar.Item) ast.Item {
	doc := stripDocMarker(item.Doc, "///")
	switch {
	case item.Alias != nil:
		a := item.Alias
		out := &ast.Alias{
			Range: rangeAt(filename, a.Pos),
			Doc:   doc,
			Name:  a.Name,
			Term:  convertExpr(filename, a.Term),
		}
		if a.DeclaredType != nil {
			out.DeclaredType = convertExpr(filename, a.DeclaredType)
		}
		return out
	case item.Struct != nil:
		s := item.Struct
		out := &ast.Struct{
			Range: rangeAt(filename, s.Pos),
			Doc:   doc,
			Name:  s.Name,
		}
		for _, f := range s.Fields {
			out.Fields = append(out.Fields, ast.Field{
				Range:      rangeAt(filename, f.Pos),
				Doc:        stripDocMarker(f.Doc, "///"),
				Name:       f.Name,
				FormatTerm: convertExpr(filename, f.FormatTerm),
			})
		}
		return out
	default:
		panic("grammar.Item with neither Alias nor Struct set")
	}
}

func convertExpr(filename string, e *grammar.Expr) ast.Term {
	head := convertApp(filename, e.Head)
	if e.Arrow == nil {
		return head
	}
	return &ast.FunctionType{
		Range: rangeAt(filename, e.Pos),
		Param: head,
		Body:  convertExpr(filename, e.Arrow),
	}
}

func convertApp(filename string, a *grammar.AppExpr) ast.Term {
	result := convertAtom(filename, a.Fn)
	for _, arg := range a.Args {
		result = &ast.FunctionElim{
			Range:    rangeAt(filename, a.Pos),
			Head:     result,
			Argument: convertAtom(filename, arg),
		}
	}
	return result
}

func convertAtom(filename string, at *grammar.Atom) ast.Term {
	rng := rangeAt(filename, at.Pos)
	switch {
	case at.Paren != nil:
		inner := convertExpr(filename, at.Paren.Inner)
		if at.Paren.Ascription == nil {
			return inner
		}
		return &ast.Ann{Range: rng, Term: inner, Type: convertExpr(filename, at.Paren.Ascription)}
	case at.UniverseLit != nil:
		return &ast.UniverseLit{Range: rng, Level: parseIntText(at.UniverseLit.Level)}
	case at.If != nil:
		return &ast.If{
			Range: rng,
			Cond:  convertExpr(filename, at.If.Cond),
			True:  convertExpr(filename, at.If.True),
			False: convertExpr(filename, at.If.False),
		}
	case at.Match != nil:
		return convertMatch(filename, rng, at.Match)
	case at.Float != nil:
		return &ast.FloatLit{Range: rng, Text: at.Float.Text, Bits32: at.Float.Suffix == "f32"}
	case at.Int != nil:
		return &ast.IntLit{Range: rng, Text: at.Int.Text}
	case at.Ident != nil:
		return &ast.Name{Range: rng, Text: *at.Ident}
	default:
		panic("grammar.Atom with no alternative set")
	}
}

func convertMatch(filename string, rng ast.Range, m *grammar.MatchExpr) ast.Term {
	out := &ast.Match{Range: rng, Scrutinee: convertExpr(filename, m.Scrutinee)}
	for _, b := range m.Branches {
		body := convertExpr(filename, b.Body)
		if b.Wildcard {
			out.Default = body
			continue
		}
		out.Branches = append(out.Branches, ast.MatchBranch{
			Range: rangeAt(filename, b.Pos),
			Key:   *b.Key,
			Body:  body,
		})
	}
	return out
}

func parseIntText(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
