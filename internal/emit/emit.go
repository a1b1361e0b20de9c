// Package emit is the pure serializer of component F (spec.md §4.F): it
// writes a target.Module to final Go source text and performs no
// evaluation or type checking of its own. Grounded in
// original_source/crates/ddl/src/rust/emit.rs's emit_module/emit_item
// structure (header, then one declaration per item in source order),
// adapted to Go's package/import/struct/func syntax instead of Rust's.
package emit

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"fathomgo/internal/target"
)

// Config controls generator metadata and target-specific conventions
// (spec.md §4.F: "reserved-word identifiers... quoting them with a
// configured prefix"). The gen CLI subcommand's --config flag populates
// this from YAML front matter (SPEC_FULL.md's domain-stack entry for
// gopkg.in/yaml.v3).
type Config struct {
	GeneratorName    string `yaml:"generator_name"`
	GeneratorVersion string `yaml:"generator_version"`
	Package          string `yaml:"package"`
	ReservedPrefix   string `yaml:"reserved_prefix"`
	RuntimeImport    string `yaml:"runtime_import"`
}

// DefaultConfig is used when the gen subcommand is invoked without
// --config.
func DefaultConfig() Config {
	return Config{
		GeneratorName:    "fathomgo",
		GeneratorVersion: "0.1.0",
		Package:          "generated",
		ReservedPrefix:   "_",
		RuntimeImport:    "fathomgo/internal/runtime",
	}
}

// Emit writes mod to w as compilable Go source text. It is a pure writer:
// every decision about what to emit was already made by component E.
func Emit(w io.Writer, mod *target.Module, cfg Config) error {
	e := &emitter{w: w, cfg: cfg}
	e.header(mod)
	e.printf("package %s\n", identOf(cfg.Package, cfg))
	e.imports(mod)
	for _, item := range mod.Items {
		e.item(item)
	}
	return e.err
}

type emitter struct {
	w   io.Writer
	cfg Config
	err error
}

func (e *emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, format, args...)
	if err != nil {
		e.err = err
	}
}

func (e *emitter) header(mod *target.Module) {
	e.printf("// automatically generated by %s %s\n", e.cfg.GeneratorName, e.cfg.GeneratorVersion)
	e.printf("// not intended for manual editing\n")
	if len(mod.Doc) > 0 {
		e.printf("//\n")
		for _, line := range mod.Doc {
			e.printf("// %s\n", normalizeDocLine(line))
		}
	}
	e.printf("\n")
}

// normalizeDocLine applies NFC (canonical composition) normalization to
// doc-comment text before emission, mirroring the teacher's use of
// golang.org/x/text for source-text normalization (SPEC_FULL.md's domain
// stack; grounded in the teacher's internal/lexer/normalize.go).
func normalizeDocLine(line string) string {
	return norm.NFC.String(strings.TrimRight(line, " \t"))
}

func (e *emitter) imports(mod *target.Module) {
	needsRuntime := false
	needsFmt := false
	for _, item := range mod.Items {
		if s, ok := item.(*target.Struct); ok {
			needsRuntime = true
			if len(s.Fields) > 0 {
				needsFmt = true
			}
		}
	}
	if !needsRuntime && !needsFmt {
		e.printf("\n")
		return
	}
	e.printf("\nimport (\n")
	if needsFmt {
		e.printf("\t%s\n", strconv.Quote("fmt"))
	}
	if needsRuntime {
		e.printf("\t%s\n", strconv.Quote(e.cfg.RuntimeImport))
	}
	e.printf(")\n")
}

func (e *emitter) item(item target.Item) {
	e.printf("\n")
	switch it := item.(type) {
	case *target.Const:
		e.constItem(it)
	case *target.Function:
		e.functionItem(it)
	case *target.Alias:
		e.aliasItem(it)
	case *target.Struct:
		e.structItem(it)
	default:
		e.printf("// unsupported item\n")
	}
}

func (e *emitter) docLines(prefix string, docs []string) {
	for _, line := range docs {
		e.printf("%s// %s\n", prefix, normalizeDocLine(line))
	}
}

func (e *emitter) constItem(c *target.Const) {
	e.docLines("", c.Docs)
	e.printf("const %s %s = %s\n", identOf(c.Name, e.cfg), typeString(c.HostType, e.cfg), termString(c.Initializer, e.cfg))
}

func (e *emitter) functionItem(f *target.Function) {
	e.docLines("", f.Docs)
	e.printf("func %s() %s {\n", identOf(f.Name, e.cfg), typeString(f.ReturnType, e.cfg))
	e.writeReturn(f.Body, "\t", e.cfg)
	e.printf("}\n")
}

// writeReturn emits term as one or more statements ending in every
// control-flow path returning a value, rather than folding If/Match into
// an expression: Go's `const`/typed-return positions can't host the
// `any`-typed closure an expression-only encoding would need.
func (e *emitter) writeReturn(term target.Term, indent string, cfg Config) {
	switch v := term.(type) {
	case target.If:
		e.printf("%sif %s {\n", indent, termString(v.Cond, cfg))
		e.writeReturn(v.Then, indent+"\t", cfg)
		e.printf("%s}\n", indent)
		e.writeReturn(v.Else, indent, cfg)
	case target.Match:
		e.printf("%sswitch %s {\n", indent, termString(v.Scrutinee, cfg))
		sorted := make([]target.MatchBranch, len(v.Branches))
		copy(sorted, v.Branches)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		for _, br := range sorted {
			e.printf("%scase %d:\n", indent, br.Key)
			e.writeReturn(br.Body, indent+"\t", cfg)
		}
		e.printf("%sdefault:\n", indent)
		e.writeReturn(v.Default, indent+"\t", cfg)
		e.printf("%s}\n", indent)
	default:
		e.printf("%sreturn %s\n", indent, termString(term, cfg))
	}
}

func (e *emitter) aliasItem(a *target.Alias) {
	e.docLines("", a.Docs)
	e.printf("type %s = %s\n", identOf(a.Name, e.cfg), typeString(a.HostType, e.cfg))
}

func (e *emitter) structItem(s *target.Struct) {
	name := identOf(s.Name, e.cfg)
	e.docLines("", s.Docs)
	if len(s.Derives) > 0 {
		e.printf("// derives: %s\n", strings.Join(s.Derives, ", "))
	}

	if len(s.Fields) == 0 {
		e.printf("type %s struct{}\n", name)
	} else {
		e.printf("type %s struct {\n", name)
		for _, f := range s.Fields {
			e.docLines("\t", f.Docs)
			e.printf("\t%s %s\n", exportedFieldName(f.Name, e.cfg), typeString(f.HostType, e.cfg))
		}
		e.printf("}\n")
	}

	// "This type is a binary format with host = itself" (spec.md §6).
	e.printf("\nfunc (%s) Marker() {}\n", name)
	e.readerFunc(name, s)
}

// readerFunc emits the reader procedure: fields are read in declaration
// order, the first failure short-circuits and surfaces a read error
// carrying the field's position (spec.md §4.E's struct reader contract).
func (e *emitter) readerFunc(name string, s *target.Struct) {
	e.printf("\nfunc Read%s(ctxt *runtime.ReadCtxt) (%s, error) {\n", name, name)
	if len(s.Fields) == 0 {
		e.printf("\treturn %s{}, nil\n", name)
		e.printf("}\n")
		return
	}
	for _, f := range s.Fields {
		e.readField(name, f)
	}
	e.printf("\treturn %s{\n", name)
	for _, f := range s.Fields {
		e.printf("\t\t%s: %s,\n", exportedFieldName(f.Name, e.cfg), unexportedLocal(f.Name, e.cfg))
	}
	e.printf("\t}, nil\n")
	e.printf("}\n")
}

// readField emits one struct field's read, in declaration order, as a
// statement block that short-circuits on the first failure (spec.md
// §4.E's struct reader contract). A conditional-format field needs its own
// if/else block since its two branches decode unrelated wire shapes into a
// single IsLeft-tagged host value; every other format reads as one
// expression.
func (e *emitter) readField(structName string, f target.StructField) {
	local := unexportedLocal(f.Name, e.cfg)
	errReturn := fmt.Sprintf("return %s{}, fmt.Errorf(%s, err)", structName, strconv.Quote(structName+"."+f.Name+": %w"))

	ifFmt, ok := f.FormatType.(target.IfFormat)
	if !ok {
		e.printf("\t%s, err := %s\n", local, formatReadExpr(f.FormatType, e.cfg))
		e.printf("\tif err != nil {\n\t\t%s\n\t}\n", errReturn)
		return
	}

	tagType := typeString(f.HostType, e.cfg)
	e.printf("\tvar %s %s\n", local, tagType)
	e.printf("\tif %s {\n", termString(ifFmt.Cond, e.cfg))
	e.printf("\t\tv, err := %s\n", formatReadExpr(ifFmt.Left, e.cfg))
	e.printf("\t\tif err != nil {\n\t\t\t%s\n\t\t}\n", errReturn)
	e.printf("\t\t%s = %s{IsLeft: true, Left: v}\n", local, tagType)
	e.printf("\t} else {\n")
	e.printf("\t\tv, err := %s\n", formatReadExpr(ifFmt.Right, e.cfg))
	e.printf("\t\tif err != nil {\n\t\t\t%s\n\t\t}\n", errReturn)
	e.printf("\t\t%s = %s{IsLeft: false, Right: v}\n", local, tagType)
	e.printf("\t}\n")
}

func formatReadExpr(ft target.FormatType, cfg Config) string {
	switch v := ft.(type) {
	case target.PrimitiveFormat:
		return fmt.Sprintf("(runtime.%s{}).Read(ctxt)", v.RuntimeName)
	case target.NamedFormat:
		return fmt.Sprintf("Read%s(ctxt)", identOf(v.Name, cfg))
	default:
		return "(runtime.InvalidDataDescription{}).Read(ctxt)"
	}
}

func typeString(t target.Type, cfg Config) string {
	switch v := t.(type) {
	case target.PrimitiveType:
		return v.GoName
	case target.NamedType:
		return identOf(v.Name, cfg)
	case target.IfType:
		return fmt.Sprintf("struct { IsLeft bool; Left %s; Right %s }", typeString(v.Left, cfg), typeString(v.Right, cfg))
	default:
		return "runtime.InvalidDataDescription"
	}
}

func termString(t target.Term, cfg Config) string {
	switch v := t.(type) {
	case target.Var:
		return identOf(v.Name, cfg)
	case target.Call:
		return identOf(v.Name, cfg) + "()"
	case target.BoolLit:
		return strconv.FormatBool(v.Value)
	case target.IntLit:
		return v.Text
	case target.FloatLit:
		if v.Bits32 {
			return strconv.FormatFloat(float64(float32(v.Value)), 'g', -1, 32)
		}
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	default:
		// target.If and target.Match are handled at the statement level by
		// writeReturn; termString never needs to render them as expressions.
		return "nil /* invalid */"
	}
}

// reservedWords are Go's keywords; an identifier matching one is quoted by
// prefixing ReservedPrefix rather than rejected (spec.md §4.F).
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func identOf(name string, cfg Config) string {
	if reservedWords[name] {
		return cfg.ReservedPrefix + name
	}
	return name
}

// exportedFieldName capitalizes name's first byte so struct fields are
// exported (readable and settable by Read<Struct>'s own package-external
// callers), then applies reserved-word quoting.
func exportedFieldName(name string, cfg Config) string {
	return identOf(capitalize(name), cfg)
}

// unexportedLocal is used for the reader's field-local variables, which
// must stay lowercase regardless of the exported field name they feed.
func unexportedLocal(name string, cfg Config) string {
	return identOf(name, cfg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
