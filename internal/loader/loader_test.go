package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fathomgo/internal/loader"
)

// SPEC_FULL.md's loading section: a single named file is read whole, with
// its path carried through as the diagnostic-attributing filename.
func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "point.fm")
	require.NoError(t, os.WriteFile(path, []byte("struct Point { x: U8 }"), 0o644))

	src, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, path, src.Filename)
	require.Equal(t, "struct Point { x: U8 }", src.Text)
}

// A missing file is a plain error, not a panic.
func TestLoad_MissingFile(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.fm"))
	require.Error(t, err)
}
