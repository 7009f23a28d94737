// Package kernel implements the normalizing evaluator (spec.md §4.E) and
// definitional equality (spec.md §4.F): weak-head/full normalization via
// beta, delta, and iota reduction, and the structural comparison of normal
// forms that the checker uses to decide definitional equality.
package kernel

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/term"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

// DefaultStepBudget bounds eval's recursion so a non-terminating
// definition (spec.md §5: "possible if definitions admits non-termination")
// fails with a reportable error instead of looping forever — spec.md §5's
// documented option (b).
const DefaultStepBudget = 1_000_000

// Evaluator normalizes terms against a fixed global environment.
type Evaluator struct {
	Ctx        *tyctxt.TyCtxt
	StepBudget int
}

// New creates an Evaluator with the default step budget.
func New(ctx *tyctxt.TyCtxt) *Evaluator {
	return &Evaluator{Ctx: ctx, StepBudget: DefaultStepBudget}
}

// Eval is a total normalizer with call-by-value evaluation order
// (spec.md §4.E).
func (e *Evaluator) Eval(t term.Term) (term.Term, error) {
	steps := 0
	return e.eval(t, &steps)
}

func (e *Evaluator) eval(t term.Term, steps *int) (term.Term, error) {
	*steps++
	if *steps > e.StepBudget {
		return nil, diag.Wrap(diag.New(diag.EVLStepBudget, "eval", fmt.Sprintf("exceeded step budget of %d", e.StepBudget)).WithSpan(t.Span()))
	}

	switch n := t.(type) {
	case *term.Var:
		return e.evalVar(n, steps)

	case *term.App:
		f, err := e.eval(n.Fun, steps)
		if err != nil {
			return nil, err
		}
		a, err := e.eval(n.Arg, steps)
		if err != nil {
			return nil, err
		}
		if lam, ok := f.(*term.Lambda); ok {
			return e.eval(term.Instantiate(lam.Body, a), steps)
		}
		return &term.App{Fun: f, Arg: a}, nil

	case *term.Forall:
		dom, err := e.eval(n.ArgType, steps)
		if err != nil {
			return nil, err
		}
		cod, err := e.eval(n.BodyTy, steps)
		if err != nil {
			return nil, err
		}
		return &term.Forall{Hint: n.Hint, ArgType: dom, BodyTy: cod}, nil

	case *term.Lambda, *term.TypeSort, *term.Literal:
		// No reduction under lambdas in the current design (spec.md §9);
		// Type and Literal are already normal forms.
		return t, nil

	case *term.Recursor:
		return e.evalRecursor(n, steps)

	default:
		return t, nil
	}
}

// evalVar implements the β-δ rule for variable occurrences: bound/local/
// meta variables are returned as-is; a qualified name unfolds to its
// definition's body if one exists, else is returned unchanged (axioms and
// undefined names are opaque).
func (e *Evaluator) evalVar(v *term.Var, steps *int) (term.Term, error) {
	if v.Name.Kind() != name.Qualified {
		return v, nil
	}
	if def, ok := e.Ctx.Definitions[v.Name.String()]; ok {
		return e.eval(def.Body, steps)
	}
	return v, nil
}

// evalRecursor implements the ι rule: evaluate the scrutinee, find the
// constructor it begins with, and reduce to the matching minor premise.
// A nullary constructor reduces to the premise itself; otherwise the premise
// is applied to the constructor's fields followed by exactly one recursive
// invocation of the same recursor on the first field, whatever the fields'
// types.
func (e *Evaluator) evalRecursor(r *term.Recursor, steps *int) (term.Term, error) {
	args := make([]term.Term, len(r.Args))
	for i, a := range r.Args {
		v, err := e.eval(a, steps)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	scrutinee := args[len(args)-1]

	data, ok := e.Ctx.Types[r.Datatype.String()]
	if !ok {
		return nil, diag.Wrap(diag.New(diag.SCOUnknownVariable, "eval", fmt.Sprintf("unknown datatype %q in recursor", r.Datatype)).WithSpan(r.Span()))
	}

	head := term.Head(scrutinee)
	headVar, ok := head.(*term.Var)
	if !ok {
		return stuckRecursor(r, args), nil
	}

	ctorIdx := -1
	for i, c := range data.Ctors {
		if headVar.Name.Equal(c.Name) {
			ctorIdx = i
			break
		}
	}
	if ctorIdx == -1 {
		// No matching constructor head: the scrutinee is neutral (e.g. a
		// Local). Per spec.md §9 this is a known weak point where the
		// reference evaluator panics; here we return the stuck recursor
		// rebuilt with its evaluated scrutinee instead.
		return stuckRecursor(r, args), nil
	}

	// The minor premise for constructor i sits at len(args)-Offset+i: Offset
	// counts the (motive + all minor premises) block, so len(args)-Offset is
	// the position right after any leading datatype parameters/indices,
	// i.e. the motive's own slot, and the premises follow it in order.
	premise := args[len(args)-r.Offset+ctorIdx]
	spine := term.Args(scrutinee)
	if spine == nil {
		return e.eval(premise, steps)
	}

	recArgs := make([]term.Term, len(args))
	copy(recArgs, args)
	recArgs[len(recArgs)-1] = spine[0]
	recursiveCall := term.NewRecursor(r.Span(), r.Datatype, r.Offset, recArgs)

	applied := term.ApplyAll(premise, append(append([]term.Term{}, spine...), recursiveCall))
	return e.eval(applied, steps)
}

func stuckRecursor(r *term.Recursor, evaluatedArgs []term.Term) term.Term {
	return term.NewRecursor(r.Span(), r.Datatype, r.Offset, evaluatedArgs)
}
