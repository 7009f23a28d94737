// Package srcmap carries source position information for diagnostics.
// Positions and spans never participate in term equality or reduction.
package srcmap

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	if p.File == "" {
		return "<generated>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether p carries no location (e.g. a synthesized term).
func (p Pos) IsZero() bool {
	return p == Pos{}
}

// Span is a half-open range [Start, End) in a single source file.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	if s.Start.IsZero() {
		return "<generated>"
	}
	return s.Start.String()
}

// File holds the raw source of a single loaded module, keyed by its
// canonical path, for rendering snippets in diagnostics.
type File struct {
	Name   string
	Source string
}

// Map is the SourceMap of spec.md §6: a registry of loaded files used only
// for diagnostic rendering.
type Map struct {
	files map[string]*File
}

// NewMap creates an empty source map.
func NewMap() *Map {
	return &Map{files: make(map[string]*File)}
}

// Add registers a file's source under name, overwriting any prior entry.
func (m *Map) Add(name, source string) {
	m.files[name] = &File{Name: name, Source: source}
}

// Get returns the registered file, if any.
func (m *Map) Get(name string) (*File, bool) {
	f, ok := m.files[name]
	return f, ok
}

// Line returns the 1-indexed source line for a position, or "" if unknown.
func (m *Map) Line(p Pos) string {
	f, ok := m.files[p.File]
	if !ok || p.Line <= 0 {
		return ""
	}
	line := 1
	start := -1
	for i, r := range f.Source {
		if line == p.Line {
			start = i
			break
		}
		if r == '\n' {
			line++
		}
	}
	if start < 0 {
		return ""
	}
	end := start
	for end < len(f.Source) && f.Source[end] != '\n' {
		end++
	}
	return f.Source[start:end]
}
