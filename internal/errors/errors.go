// Package errors implements the diagnostic taxonomy of spec.md §7: a
// structured Report type, a stable per-kind code registry, and an
// ordered Sink that accumulates diagnostics during elaboration so a single
// command can report as many issues as it can find instead of stopping at
// the first one. Adapted from the teacher's internal/errors package
// (Report/ReportError/ErrorRegistry), trimmed to this toolchain's one-phase
// pipeline and severity-keyed ordering instead of AILANG's multi-phase
// PAR/MOD/LDR/TC/... code families.
package errors

import (
	"encoding/json"
	"sort"

	"fathomgo/internal/ast"
)

// Severity orders diagnostics by how strongly they block a module from
// being considered OK (spec.md §6).
type Severity int

const (
	Help Severity = iota
	Note
	Warning
	Error
	SeverityBug
)

func (s Severity) String() string {
	switch s {
	case Help:
		return "help"
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case SeverityBug:
		return "bug"
	default:
		return "unknown"
	}
}

// Kind is the error taxonomy of spec.md §7 (a taxonomy, not a set of Go
// types): each Kind carries a stable code and default severity.
type Kind string

const (
	KindParseError         Kind = "ParseError"
	KindUnboundName        Kind = "UnboundName"
	KindMismatchedType     Kind = "MismatchedType"
	KindNotAFunction       Kind = "NotAFunction"
	KindDuplicateIntBranch Kind = "DuplicateIntBranch"
	KindAmbiguousLiteral   Kind = "AmbiguousLiteral"
	KindInvalidFormat      Kind = "InvalidFormat"
	KindInternalBug        Kind = "InternalBug"
)

// kindInfo is one entry of the Kind -> (code, phase, default severity)
// registry, mirroring the teacher's ErrorRegistry shape.
type kindInfo struct {
	Code     string
	Phase    string
	Severity Severity
}

var registry = map[Kind]kindInfo{
	KindParseError:         {"FMT001", "parser", Error},
	KindUnboundName:        {"FMT002", "elaborate", Error},
	KindMismatchedType:     {"FMT003", "elaborate", Error},
	KindNotAFunction:       {"FMT004", "elaborate", Error},
	KindDuplicateIntBranch: {"FMT005", "elaborate", Error},
	KindAmbiguousLiteral:   {"FMT006", "elaborate", Error},
	KindInvalidFormat:      {"FMT007", "elaborate", Error},
	KindInternalBug:        {"FMT999", "internal", SeverityBug},
}

// Report is the canonical structured diagnostic record (spec.md §6).
type Report struct {
	Schema   string     `json:"schema"`
	Code     string     `json:"code"`
	Kind     Kind       `json:"kind"`
	Severity string     `json:"severity"`
	Phase    string     `json:"phase"`
	Message  string     `json:"message"`
	Range    *ast.Range `json:"range,omitempty"`
	Notes    []string   `json:"notes,omitempty"`
}

// New builds a Report for kind at the default severity registered for it.
func New(kind Kind, rng ast.Range, message string, notes ...string) *Report {
	info, ok := registry[kind]
	if !ok {
		info = kindInfo{Code: "FMT000", Phase: "unknown", Severity: Error}
	}
	return &Report{
		Schema:   "fathomgo.diagnostic/v1",
		Code:     info.Code,
		Kind:     kind,
		Severity: info.Severity.String(),
		Phase:    info.Phase,
		Message:  message,
		Range:    &rng,
		Notes:    notes,
	}
}

// Bug builds an InternalBug-severity report for an invariant violation
// recovered from a panic (spec.md §6's panic-hook path).
func Bug(message string, notes ...string) *Report {
	r := New(KindInternalBug, ast.Range{}, message, notes...)
	r.Range = nil
	return r
}

// Sink accumulates diagnostics in production order and drains them in that
// same order (spec.md §5's ordering invariant: diagnostics are drained in
// the order they were produced, which for a single source-order elaboration
// pass is also non-decreasing source start offset, spec.md invariant 6).
type Sink struct {
	reports []*Report
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink { return &Sink{} }

// Emit records a diagnostic.
func (s *Sink) Emit(r *Report) { s.reports = append(s.reports, r) }

// Reports returns all diagnostics emitted so far, in production order. The
// returned slice must not be mutated by the caller.
func (s *Sink) Reports() []*Report { return s.reports }

// HasErrors reports whether any diagnostic at Error severity or above was
// emitted (spec.md §6: determines the command's exit code).
func (s *Sink) HasErrors() bool {
	for _, r := range s.reports {
		if severityOf(r) >= Error {
			return true
		}
	}
	return false
}

func severityOf(r *Report) Severity {
	switch r.Severity {
	case "help":
		return Help
	case "note":
		return Note
	case "warning":
		return Warning
	case "bug":
		return SeverityBug
	default:
		return Error
	}
}

// SortedByRange returns a copy of the sink's reports ordered by ascending
// source start offset, for callers (like tests) that want to assert
// diagnostic ordering independent of emission order. Production drains
// always use Reports() directly, since spec.md invariant 6 requires
// elaboration itself to emit in non-decreasing order already; this exists
// to verify that invariant.
func (s *Sink) SortedByRange() []*Report {
	out := make([]*Report, len(s.reports))
	copy(out, s.reports)
	sort.SliceStable(out, func(i, j int) bool {
		return startOffset(out[i]) < startOffset(out[j])
	})
	return out
}

func startOffset(r *Report) int {
	if r.Range == nil {
		return -1
	}
	return r.Range.Start.Offset
}

// ToJSON serializes a batch of reports deterministically (keys in Report's
// struct field order; indented for readability unless compact is set),
// mirroring the teacher's Report.ToJSON.
func ToJSON(reports []*Report, compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(reports)
	} else {
		data, err = json.MarshalIndent(reports, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
