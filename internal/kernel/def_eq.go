package kernel

import (
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
)

// Inequality records one leaf mismatch found while comparing two terms'
// normal forms structurally.
type Inequality struct {
	Left  term.Term
	Right term.Term
}

// DefEq evaluates t and u to normal form and compares the results
// structurally modulo alpha-equivalence (automatic via DeBruijn indices).
// On success it returns the shared normal form; on mismatch it returns a
// diag error carrying both normal forms and the full inequality log
// (spec.md §4.F).
func (e *Evaluator) DefEq(span srcmap.Span, t, u term.Term) (term.Term, error) {
	tn, err := e.Eval(t)
	if err != nil {
		return nil, err
	}
	un, err := e.Eval(u)
	if err != nil {
		return nil, err
	}

	var log []Inequality
	walkEqual(tn, un, &log)
	if len(log) > 0 {
		data := make([]map[string]string, len(log))
		for i, ineq := range log {
			data[i] = map[string]string{"left": ineq.Left.String(), "right": ineq.Right.String()}
		}
		return nil, diag.Wrap(diag.New(diag.TYPDefUnequal, "check", "definitional equality failed").
			WithSpan(span).
			WithData("lhs", tn.String()).
			WithData("rhs", un.String()).
			WithData("inequalities", data))
	}
	return tn, nil
}

// walkEqual walks a and b in lockstep, appending every leaf mismatch to
// log rather than short-circuiting at the first one, so a DefUnequal error
// can report the complete set of inequalities.
func walkEqual(a, b term.Term, log *[]Inequality) {
	switch x := a.(type) {
	case *term.Var:
		y, ok := b.(*term.Var)
		if !ok || !x.Name.Equal(y.Name) {
			*log = append(*log, Inequality{a, b})
		}
	case *term.App:
		y, ok := b.(*term.App)
		if !ok {
			*log = append(*log, Inequality{a, b})
			return
		}
		walkEqual(x.Fun, y.Fun, log)
		walkEqual(x.Arg, y.Arg, log)
	case *term.Lambda:
		y, ok := b.(*term.Lambda)
		if !ok {
			*log = append(*log, Inequality{a, b})
			return
		}
		walkEqual(x.ArgType, y.ArgType, log)
		walkEqual(x.Body, y.Body, log)
	case *term.Forall:
		y, ok := b.(*term.Forall)
		if !ok {
			*log = append(*log, Inequality{a, b})
			return
		}
		walkEqual(x.ArgType, y.ArgType, log)
		walkEqual(x.BodyTy, y.BodyTy, log)
	case *term.TypeSort:
		if _, ok := b.(*term.TypeSort); !ok {
			*log = append(*log, Inequality{a, b})
		}
	case *term.Literal:
		y, ok := b.(*term.Literal)
		if !ok || x.Kind != y.Kind || (x.Kind == term.LitInt && x.Int != y.Int) {
			*log = append(*log, Inequality{a, b})
		}
	case *term.Recursor:
		y, ok := b.(*term.Recursor)
		if !ok || !x.Datatype.Equal(y.Datatype) || x.Offset != y.Offset || len(x.Args) != len(y.Args) {
			*log = append(*log, Inequality{a, b})
			return
		}
		for i := range x.Args {
			walkEqual(x.Args[i], y.Args[i], log)
		}
	default:
		*log = append(*log, Inequality{a, b})
	}
}
