// Package loader resolves a qualified module name to a file under a
// config.Workspace's search roots, and lexes, parses, and elaborates it
// into a decl.Module. Loaded modules are memoized by canonical module
// identity, so importing the same module twice from two different call
// sites is a cache hit rather than a re-parse, and a load stack (ported
// from the teacher's ModuleLoader DFS tracking) detects circular imports.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hb-lang/hbc/internal/config"
	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/elaborate"
	"github.com/hb-lang/hbc/internal/parser"
)

// Loader loads and caches modules by canonical qualified name.
type Loader struct {
	ws    *config.Workspace
	cache map[string]*decl.Module
	stack []string
}

// New creates a Loader rooted at ws.
func New(ws *config.Workspace) *Loader {
	return &Loader{ws: ws, cache: make(map[string]*decl.Module)}
}

// Load resolves qualified (e.g. "nat.add"), reading, parsing, and
// elaborating it on first access. Subsequent calls for the same qualified
// name return the cached decl.Module without touching the filesystem.
func (l *Loader) Load(qualified string) (*decl.Module, error) {
	qualified = CanonicalID(qualified)
	if mod, ok := l.cache[qualified]; ok {
		return mod, nil
	}
	for _, seen := range l.stack {
		if seen == qualified {
			trace := append(append([]string{}, l.stack...), qualified)
			return nil, diag.Wrap(diag.New(diag.LDRCycle, "loader",
				"import cycle: "+strings.Join(trace, " -> ")))
		}
	}

	path, err := l.resolve(qualified)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(diag.New(diag.LDRNotFound, "loader", "reading "+path+": "+err.Error()))
	}

	l.stack = append(l.stack, qualified)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	file, err := parser.ParseFile(path, string(src))
	if err != nil {
		return nil, diag.Wrap(diag.New(diag.LDRParse, "loader", err.Error()))
	}

	el := &elaborate.Elaborator{ModulePrefix: qualified}
	mod, err := el.ElaborateFile(file)
	if err != nil {
		return nil, diag.Wrap(diag.New(diag.LDRElaborate, "loader", err.Error()))
	}

	l.cache[qualified] = mod
	return mod, nil
}

// resolve turns a dotted qualified name into a filesystem path by joining
// it, with dots replaced by path separators, against each search root in
// turn and appending the ".hb" extension, returning the first match.
func (l *Loader) resolve(qualified string) (string, error) {
	rel := strings.ReplaceAll(qualified, ".", string(filepath.Separator)) + ".hb"
	for _, root := range l.ws.Roots() {
		candidate := filepath.Join(root, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", diag.Wrap(diag.New(diag.LDRNotFound, "loader", "module "+qualified+" not found under any search root"))
}

// CanonicalID normalizes a qualified module name: forward slashes become
// dots, a trailing ".hb" is stripped, and a leading "./" is removed, so
// the same module reached two different ways hits the same cache entry.
func CanonicalID(qualified string) string {
	id := filepath.ToSlash(qualified)
	id = strings.TrimSuffix(id, ".hb")
	id = strings.TrimPrefix(id, "./")
	id = strings.ReplaceAll(id, "/", ".")
	return id
}
