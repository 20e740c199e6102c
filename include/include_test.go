package include

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, 0, r.Len())

	require.NoError(t, r.Add("/b.ink"))
	require.NoError(t, r.Add("/a.ink"))
	require.True(t, r.Contains("/a.ink"))
	require.Equal(t, []string{"/a.ink", "/b.ink"}, r.Paths())

	err := r.Add("/a.ink")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAlreadyOpen))
	require.Contains(t, err.Error(), "/a.ink")
	require.Equal(t, 2, r.Len())

	r.Remove("/a.ink")
	require.False(t, r.Contains("/a.ink"))
	require.NoError(t, r.Add("/a.ink"))

	r.Remove("/missing.ink")
	require.Equal(t, 2, r.Len())
}

func TestMapFileHandler(t *testing.T) {
	h := NewMapFileHandler(map[string]string{
		"/story/intro.ink": "Hello",
	})
	h.RootDir = "/story"

	p, err := h.ResolveInkFilename("./sub/../intro.ink")
	require.NoError(t, err)
	require.Equal(t, "/story/intro.ink", p)

	p, err = h.ResolveInkFilename("/other//x.ink")
	require.NoError(t, err)
	require.Equal(t, "/other/x.ink", p)

	text, err := h.LoadInkFileContents("/story/intro.ink")
	require.NoError(t, err)
	require.Equal(t, "Hello", text)

	_, err = h.LoadInkFileContents("/story/missing.ink")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDefaultFileHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ink"), []byte("Text"), 0o644))

	h := NewFileHandler(dir)
	p, err := h.ResolveInkFilename("a.ink")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(p))

	again, err := h.ResolveInkFilename(filepath.Join("x", "..", "a.ink"))
	require.NoError(t, err)
	require.Equal(t, p, again)

	text, err := h.LoadInkFileContents(p)
	require.NoError(t, err)
	require.Equal(t, "Text", text)

	missing, err := h.ResolveInkFilename("missing.ink")
	require.NoError(t, err)
	_, err = h.LoadInkFileContents(missing)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
