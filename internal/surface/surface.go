// Package surface is the syntax tree produced by internal/parser: named
// binders, no DeBruijn indices, no implicit-argument resolution. It is the
// input to internal/elaborate, the pass that discharges spec.md §6's
// assumption that terms reaching the kernel are "already elaborated: no
// surface sugar, no implicit arguments, DeBruijn-correct".
package surface

import "github.com/hb-lang/hbc/internal/srcmap"

// Expr is the base interface for surface expressions.
type Expr interface {
	Span() srcmap.Span
	exprNode()
}

// Node carries a span and is embedded by every expression/declaration.
type Node struct{ Sp srcmap.Span }

func (n Node) Span() srcmap.Span { return n.Sp }

// Ident is a (possibly dotted) identifier reference.
type Ident struct {
	Node
	Name string
}

func (*Ident) exprNode() {}

// App is juxtaposition application: `f x`.
type App struct {
	Node
	Fun Expr
	Arg Expr
}

func (*App) exprNode() {}

// Lambda is `fun (x : T) => body`.
type Lambda struct {
	Node
	Param     string
	ParamType Expr
	Body      Expr
}

func (*Lambda) exprNode() {}

// Forall is `forall (x : T), body`.
type Forall struct {
	Node
	Param     string
	ParamType Expr
	Body      Expr
}

func (*Forall) exprNode() {}

// Arrow is non-dependent function type sugar `T -> U`.
type Arrow struct {
	Node
	Dom Expr
	Cod Expr
}

func (*Arrow) exprNode() {}

// TypeExpr is the literal `Type` sort.
type TypeExpr struct{ Node }

func (*TypeExpr) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	Node
	Value int64
}

func (*IntLit) exprNode() {}

// UnitLit is the `unit` literal.
type UnitLit struct{ Node }

func (*UnitLit) exprNode() {}

// Decl is the base interface for top-level declarations.
type Decl interface {
	Span() srcmap.Span
	declNode()
}

// CtorDecl is one constructor of a DataDecl.
type CtorDecl struct {
	Name string
	Type Expr
}

// DataDecl is `data Name : Type | ctor : T ... end`.
type DataDecl struct {
	Node
	Name  string
	Type  Expr
	Ctors []CtorDecl
}

func (*DataDecl) declNode() {}

// FnDecl is `def Name : T := body`.
type FnDecl struct {
	Node
	Name string
	Type Expr
	Body Expr
}

func (*FnDecl) declNode() {}

// ExternDecl is `extern Name : T`.
type ExternDecl struct {
	Node
	Name string
	Type Expr
}

func (*ExternDecl) declNode() {}

// File is a parsed source file: an ordered list of top-level declarations.
type File struct {
	Decls []Decl
}
