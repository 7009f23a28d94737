// Package decl holds the declaration shapes of spec.md §3: inductive
// datatypes, function definitions, and external declarations. It sits
// below both tyctxt (component C) and recursor (component D) so neither
// has to import the other to share these types.
package decl

import (
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/term"
)

// Ctor is one constructor of an inductive declaration: a name and its
// Π-telescope type, terminating in an application of the inductive's name
// to its parameters/indices.
type Ctor struct {
	Name name.Name
	Type term.Term
}

// Data is an inductive datatype declaration.
type Data struct {
	Name  name.Name
	Type  term.Term // closed top-level type (a Π-telescope ending in Type)
	Ctors []Ctor    // ordered list of constructors
}

// Function is a function definition: its declared (possibly Π) type and
// its body, checked against that type by a separate pass (component G).
type Function struct {
	Name  name.Name
	RetTy term.Term
	Body  term.Term
}

// Extern is an external declaration: a name with a declared type but no
// body, becoming an axiom.
type Extern struct {
	Name name.Name
	Type term.Term
}

// Item is one top-level declaration of a Module: exactly one of Data, Fn,
// or Extern is non-nil.
type Item struct {
	Data   *Data
	Fn     *Function
	Extern *Extern
}

// Module is an elaborated collection of declarations in source order
// (spec.md §6: "Module { imports, defs }" — imports are resolved by the
// loader before a Module reaches the kernel, so only Items remain here).
type Module struct {
	Items []Item
}
