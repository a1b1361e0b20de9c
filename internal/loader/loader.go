// Package loader reads the surface-term source text named by the front
// end's --surface-term flag (spec.md §6), trimmed from the teacher's
// internal/loader/loader.go: where the teacher resolves a multi-module
// import graph (ModuleLoader.Load/LoadAll/resolvePath across many files),
// this toolchain's front end is assigned a single self-contained module per
// spec.md §4.D, so the only "loading" concern left is reading one source
// (from a path, or from stdin when the path is "-").
package loader

import (
	"fmt"
	"io"
	"os"
)

// Source is loaded surface-term text plus the filename diagnostics should
// attribute it to ("<stdin>" when read from standard input).
type Source struct {
	Filename string
	Text     string
}

// Load reads path as a Source. path == "-" reads from stdin, mirroring the
// teacher's CLI convention of treating "-" as the standard-input sentinel.
func Load(path string) (Source, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return Source{}, fmt.Errorf("read stdin: %w", err)
		}
		return Source{Filename: "<stdin>", Text: string(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Source{Filename: path, Text: string(data)}, nil
}
