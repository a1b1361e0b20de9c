package core

import "github.com/davecgh/go-spew/spew"

// dumpConfig renders a core.Term's full field structure rather than its
// String method's surface-syntax rendering, for --dump-core's debug output
// (SPEC_FULL.md's domain-stack entry for go-spew). Ranges are included:
// unlike String, a structural dump is expected to show exactly what the
// elaborator produced, not a human-readable approximation of it.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders term's full internal structure, for debugging an elaborator
// or lowering pass output by eye rather than through its pretty-printed form.
func Dump(term Term) string {
	return dumpConfig.Sdump(term)
}
