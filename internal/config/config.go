// Package config reads the hbc workspace file (hbc.yaml), which names the
// stdlib root and extra search paths internal/loader joins qualified
// module names against.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Workspace is the parsed contents of hbc.yaml.
type Workspace struct {
	// StdlibRoot is the directory qualified names are resolved relative
	// to by default.
	StdlibRoot string `yaml:"stdlib_root"`
	// SearchPaths are additional roots consulted, in order, before
	// StdlibRoot.
	SearchPaths []string `yaml:"search_paths"`
}

// Default returns a Workspace rooted at the current directory with no
// extra search paths.
func Default() *Workspace {
	return &Workspace{StdlibRoot: "."}
}

// Load reads and parses a workspace file at path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	if ws.StdlibRoot == "" {
		ws.StdlibRoot = "."
	}
	return &ws, nil
}

// Roots returns every directory to search, in priority order.
func (w *Workspace) Roots() []string {
	return append(append([]string{}, w.SearchPaths...), w.StdlibRoot)
}
