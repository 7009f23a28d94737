// Package term implements the core term algebra of spec.md §3/§4.B: a
// variant tree of core terms with locally-nameless binders (DeBruijn
// indices in stored terms, Locals during checking), and the
// substitution/instantiation/abstraction primitives the evaluator and
// checker build on.
package term

import (
	"fmt"
	"strings"

	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
)

// Term is the base interface for every core term variant. Spans are carried
// for diagnostics only: Equal and every reduction rule ignore them.
type Term interface {
	Span() srcmap.Span
	String() string
	termNode()
}

// node is embedded by every variant to carry its span.
type node struct {
	span srcmap.Span
}

func (n node) Span() srcmap.Span { return n.span }

// Var is a variable reference: bound (DeBruijn), free during checking
// (Local), global (Qualified), or a placeholder (Meta).
type Var struct {
	node
	Name name.Name
}

func (*Var) termNode() {}
func (v *Var) String() string { return v.Name.String() }

// NewVar wraps a name.Name as a Var term at the given span.
func NewVar(span srcmap.Span, n name.Name) *Var {
	return &Var{node: node{span}, Name: n}
}

// App is function application.
type App struct {
	node
	Fun Term
	Arg Term
}

func (*App) termNode() {}
func (a *App) String() string { return fmt.Sprintf("(%s %s)", a.Fun, a.Arg) }

// Lambda is an abstraction; Body uses DeBruijn index 0 for the bound
// variable (spec.md invariant 1 — never a Local).
type Lambda struct {
	node
	Hint    string
	ArgType Term
	Body    Term
}

func (*Lambda) termNode() {}
func (l *Lambda) String() string {
	return fmt.Sprintf("(fun (%s : %s) => %s)", l.Hint, l.ArgType, l.Body)
}

// Forall is the dependent function type (Π), with the same binder
// convention as Lambda.
type Forall struct {
	node
	Hint    string
	ArgType Term
	BodyTy  Term
}

func (*Forall) termNode() {}
func (f *Forall) String() string {
	return fmt.Sprintf("(forall (%s : %s), %s)", f.Hint, f.ArgType, f.BodyTy)
}

// TypeSort is the sole universe/sort.
type TypeSort struct {
	node
}

func (*TypeSort) termNode() {}
func (*TypeSort) String() string { return "Type" }

func NewTypeSort(span srcmap.Span) *TypeSort { return &TypeSort{node{span}} }

// LitKind distinguishes the primitive literal forms.
type LitKind int

const (
	LitInt LitKind = iota
	LitUnit
)

// Literal is a primitive value.
type Literal struct {
	node
	Kind LitKind
	Int  int64 // meaningful iff Kind == LitInt
}

func (*Literal) termNode() {}
func (l *Literal) String() string {
	if l.Kind == LitUnit {
		return "unit"
	}
	return fmt.Sprintf("%d", l.Int)
}

// Recursor is a fully saturated recursor application (spec.md §3 invariant
// 3): Offset counts the motive plus every minor premise, so
// Args[len(Args)-Offset+i] is the minor premise for constructor i, and
// Args[len(Args)-1] is the scrutinee.
type Recursor struct {
	node
	Datatype name.Name // Qualified name of the inductive type
	Offset   int
	Args     []Term
}

func (*Recursor) termNode() {}
func (r *Recursor) String() string {
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s.rec[%d](%s)", r.Datatype, r.Offset, strings.Join(parts, ", "))
}

// Scrutinee returns the last argument, the term being eliminated.
func (r *Recursor) Scrutinee() Term {
	return r.Args[len(r.Args)-1]
}

// NewRecursor builds a Recursor term at the given span.
func NewRecursor(span srcmap.Span, datatype name.Name, offset int, args []Term) *Recursor {
	return &Recursor{node: node{span}, Datatype: datatype, Offset: offset, Args: args}
}

// LocalType asserts a Local name's ascribed type back to a Term. Panics if
// n is not a Local or was not allocated with a Term type — both are
// programmer errors within this package's closed construction discipline.
func LocalType(n name.Name) Term {
	t, ok := n.LocalTypeAny().(Term)
	if !ok {
		panic("term: LocalType called on a name with no Term-typed payload")
	}
	return t
}
