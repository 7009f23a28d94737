package kernel

import (
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
)

// UnfoldName exposes a single δ-step for a qualified name: the
// definition's body if it resolves, otherwise n itself as a term — used
// for debugging and targeted rewriting rather than as part of the checking
// fixed point (spec.md §4.E).
func (e *Evaluator) UnfoldName(n name.Name) term.Term {
	if n.Kind() == name.Qualified {
		if def, ok := e.Ctx.Definitions[n.String()]; ok {
			return def.Body
		}
	}
	return term.NewVar(srcmap.Span{}, n)
}

// Unfold performs a conditional rewrite in t: every subterm that is not
// definitionally equal to Var(n) and is structurally equal to n's unfolded
// body is replaced by that unfolded body. Used by diagnostic code; not
// part of the checking fixed point (spec.md §4.E).
func (e *Evaluator) Unfold(t term.Term, n name.Name) term.Term {
	unfolded := e.UnfoldName(n)
	nVar := term.NewVar(srcmap.Span{}, n)
	return term.ReplaceTerm(t, unfolded, func(sub term.Term) bool {
		if _, err := e.DefEq(srcmap.Span{}, sub, nVar); err == nil {
			return false
		}
		return term.Equal(sub, unfolded)
	})
}
