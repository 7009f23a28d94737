// Package tyctxt implements the global environment of spec.md §3/§4.C: the
// mapping of qualified names to axioms, definitions, datatypes, and
// functions, populated monotonically while a module is checked.
package tyctxt

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/recursor"
	"github.com/hb-lang/hbc/internal/term"
)

// Definition pairs a function's declared type with its body.
type Definition struct {
	Type term.Term
	Body term.Term
}

// TyCtxt is the global environment. It is exclusively owned by its caller;
// there is no aliased mutation (spec.md §5).
type TyCtxt struct {
	Axioms      map[string]term.Term
	Definitions map[string]Definition
	Types       map[string]*decl.Data
	Functions   map[string]*decl.Function

	Alloc *name.Allocator
}

// New creates an empty environment with a fresh local counter.
func New() *TyCtxt {
	return &TyCtxt{
		Axioms:      make(map[string]term.Term),
		Definitions: make(map[string]Definition),
		Types:       make(map[string]*decl.Data),
		Functions:   make(map[string]*decl.Function),
		Alloc:       name.NewAllocator(),
	}
}

// key canonicalizes a Name into the string the four maps are keyed by.
func key(n name.Name) string { return n.String() }

// DeclareDatatype records d, inserts its own type and each constructor's
// type into Axioms, then synthesizes and inserts its recursor. Duplicate
// names fail with SCONameExists.
func (c *TyCtxt) DeclareDatatype(d *decl.Data) error {
	k := key(d.Name)
	if _, exists := c.Types[k]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("datatype %q already declared", k)))
	}
	if _, exists := c.Axioms[k]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("name %q already declared", k)))
	}
	c.Types[k] = d
	c.Axioms[k] = d.Type

	for _, ctor := range d.Ctors {
		ck := key(ctor.Name)
		if _, exists := c.Axioms[ck]; exists {
			return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("constructor %q already declared", ck)))
		}
		c.Axioms[ck] = ctor.Type
	}

	recType, _, err := recursor.Synthesize(d, c.Alloc)
	if err != nil {
		return err
	}
	recKey := k + ".rec"
	if _, exists := c.Axioms[recKey]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("recursor name %q already declared", recKey)))
	}
	c.Axioms[recKey] = recType
	return nil
}

// DeclareDef records f's metadata and (type, body) pair. The body is not
// checked here — checking is a separate pass (component G) so every name
// in the module is in scope first (spec.md §4.C).
func (c *TyCtxt) DeclareDef(f *decl.Function) error {
	k := key(f.Name)
	if _, exists := c.Definitions[k]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("definition %q already declared", k)))
	}
	if _, exists := c.Axioms[k]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("name %q already declared", k)))
	}
	c.Functions[k] = f
	c.Definitions[k] = Definition{Type: f.RetTy, Body: f.Body}
	return nil
}

// DeclareExtern inserts e's type into Axioms only; it becomes an axiom
// with no body, opaque to δ-reduction.
func (c *TyCtxt) DeclareExtern(e *decl.Extern) error {
	k := key(e.Name)
	if _, exists := c.Axioms[k]; exists {
		return diag.Wrap(diag.New(diag.SCONameExists, "declare", fmt.Sprintf("name %q already declared", k)))
	}
	c.Axioms[k] = e.Type
	return nil
}

// LookupGlobal returns n's declared type: its definition's declared type
// if present, else its axiom type, else UnknownVariable.
func (c *TyCtxt) LookupGlobal(n name.Name) (term.Term, error) {
	k := key(n)
	if d, ok := c.Definitions[k]; ok {
		return d.Type, nil
	}
	if t, ok := c.Axioms[k]; ok {
		return t, nil
	}
	return nil, diag.Wrap(diag.New(diag.SCOUnknownVariable, "lookup", fmt.Sprintf("unknown variable %q", k)).WithData("name", k))
}

// InScope reports whether n appears in Axioms or Definitions.
func (c *TyCtxt) InScope(n name.Name) bool {
	k := key(n)
	if _, ok := c.Definitions[k]; ok {
		return true
	}
	_, ok := c.Axioms[k]
	return ok
}

// Merge inserts every entry of other into c. Any key collision is batched
// into diag.Many rather than stopping at the first one (spec.md §4.C / §8
// property 9: exactly one NameExists per colliding name). A single
// declaration spans more than one map (DeclareDef populates both
// Definitions and Functions under the same key), so collisions are
// detected once per canonical name across all four maps rather than once
// per map, to avoid double-reporting the same logical collision.
func (c *TyCtxt) Merge(other *TyCtxt) error {
	reported := make(map[string]bool)
	var reports []*diag.Report
	collides := func(k string) bool {
		_, inAxioms := c.Axioms[k]
		_, inDefinitions := c.Definitions[k]
		_, inTypes := c.Types[k]
		_, inFunctions := c.Functions[k]
		return inAxioms || inDefinitions || inTypes || inFunctions
	}
	report := func(k string) {
		if reported[k] {
			return
		}
		reported[k] = true
		reports = append(reports, diag.New(diag.SCONameExists, "merge", fmt.Sprintf("name %q already exists", k)).WithData("name", k))
	}

	for k, v := range other.Axioms {
		if collides(k) {
			report(k)
			continue
		}
		c.Axioms[k] = v
	}
	for k, v := range other.Definitions {
		if collides(k) {
			report(k)
			continue
		}
		c.Definitions[k] = v
	}
	for k, v := range other.Types {
		if collides(k) {
			report(k)
			continue
		}
		c.Types[k] = v
	}
	for k, v := range other.Functions {
		if collides(k) {
			report(k)
			continue
		}
		c.Functions[k] = v
	}

	return diag.NewMany(reports)
}

// GetMainBody returns the body of the function named "main", or NoMain.
func (c *TyCtxt) GetMainBody() (term.Term, error) {
	d, ok := c.Definitions["main"]
	if !ok {
		return nil, diag.Wrap(diag.New(diag.SCONoMain, "lookup", "module declares no function named main"))
	}
	return d.Body, nil
}
