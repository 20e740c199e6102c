// Package include tracks the files open in one include tree and resolves
// INCLUDE statements to file contents.
package include

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ErrAlreadyOpen is returned by Registry.Add for a path that is already
// being parsed, which means the include graph has a cycle.
var ErrAlreadyOpen = errors.New("file is already open")

// Registry is the set of canonical paths currently being parsed within one
// include tree. It is shared by every parser in the tree and is not safe for
// concurrent use.
type Registry struct {
	open map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{open: map[string]struct{}{}}
}

// Add marks path as open. It fails with ErrAlreadyOpen if it already is.
func (r *Registry) Add(path string) error {
	if _, ok := r.open[path]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, path)
	}
	r.open[path] = struct{}{}
	return nil
}

// Remove marks path as no longer open.
func (r *Registry) Remove(path string) {
	delete(r.open, path)
}

// Contains reports whether path is open.
func (r *Registry) Contains(path string) bool {
	_, ok := r.open[path]
	return ok
}

// Len returns the number of open paths.
func (r *Registry) Len() int {
	return len(r.open)
}

// Paths returns the open paths in sorted order.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.open))
	for p := range r.open {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FileHandler resolves include names and loads file contents on behalf of
// the parser.
type FileHandler interface {
	// ResolveInkFilename returns the canonical absolute path for a name
	// as written in an INCLUDE statement.
	ResolveInkFilename(includeName string) (string, error)

	// LoadInkFileContents returns the text of a resolved file.
	LoadInkFileContents(fullFilename string) (string, error)
}

// DefaultFileHandler resolves names relative to RootDir on the local file
// system.
type DefaultFileHandler struct {
	// RootDir is the directory include names are relative to. The current
	// working directory is used when it is empty.
	RootDir string
}

// NewFileHandler returns a DefaultFileHandler rooted at rootDir.
func NewFileHandler(rootDir string) *DefaultFileHandler {
	return &DefaultFileHandler{RootDir: rootDir}
}

func (h *DefaultFileHandler) ResolveInkFilename(includeName string) (string, error) {
	name := includeName
	if !filepath.IsAbs(name) {
		root := h.RootDir
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			root = wd
		}
		name = filepath.Join(root, name)
	}
	return Canonicalize(name)
}

// Canonicalize returns the absolute form of a local file path, relative to
// the current working directory. Symlinks are resolved when the file exists
// so that two names for the same file are recognized as one.
func Canonicalize(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func (h *DefaultFileHandler) LoadInkFileContents(fullFilename string) (string, error) {
	data, err := os.ReadFile(fullFilename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MapFileHandler serves files from memory. Keys of Files are slash
// separated absolute paths.
type MapFileHandler struct {
	RootDir string
	Files   map[string]string
}

// NewMapFileHandler returns a MapFileHandler rooted at "/".
func NewMapFileHandler(files map[string]string) *MapFileHandler {
	return &MapFileHandler{RootDir: "/", Files: files}
}

func (h *MapFileHandler) ResolveInkFilename(includeName string) (string, error) {
	if path.IsAbs(includeName) {
		return path.Clean(includeName), nil
	}
	root := h.RootDir
	if root == "" {
		root = "/"
	}
	return path.Join(root, includeName), nil
}

func (h *MapFileHandler) LoadInkFileContents(fullFilename string) (string, error) {
	text, ok := h.Files[fullFilename]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: fullFilename, Err: fs.ErrNotExist}
	}
	return text, nil
}
