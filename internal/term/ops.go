package term

import "github.com/hb-lang/hbc/internal/name"

// Instantiate replaces DeBruijn index 0 in self with value, decrementing
// deeper indices, and shifts value's free DeBruijn indices as it is pushed
// under binders. This is spec.md §4.B's `instantiate`.
func Instantiate(self Term, value Term) Term {
	return instantiateAt(self, 0, value)
}

func instantiateAt(t Term, depth int, value Term) Term {
	switch n := t.(type) {
	case *Var:
		if n.Name.Kind() != name.DeBruijn {
			return n
		}
		idx := n.Name.Index()
		switch {
		case idx == depth:
			return shift(value, depth, 0)
		case idx > depth:
			return NewVar(n.span, n.Name.ShiftDeBruijn(-1))
		default:
			return n
		}
	case *App:
		return &App{node: n.node, Fun: instantiateAt(n.Fun, depth, value), Arg: instantiateAt(n.Arg, depth, value)}
	case *Lambda:
		return &Lambda{
			node:    n.node,
			Hint:    n.Hint,
			ArgType: instantiateAt(n.ArgType, depth, value),
			Body:    instantiateAt(n.Body, depth+1, value),
		}
	case *Forall:
		return &Forall{
			node:    n.node,
			Hint:    n.Hint,
			ArgType: instantiateAt(n.ArgType, depth, value),
			BodyTy:  instantiateAt(n.BodyTy, depth+1, value),
		}
	case *TypeSort:
		return n
	case *Literal:
		return n
	case *Recursor:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = instantiateAt(a, depth, value)
		}
		return &Recursor{node: n.node, Datatype: n.Datatype, Offset: n.Offset, Args: args}
	default:
		return t
	}
}

// shift adjusts the free DeBruijn indices of t by delta, treating any index
// >= cutoff as free. Used to push a substituted value under binders.
func shift(t Term, delta, cutoff int) Term {
	if delta == 0 {
		return t
	}
	switch n := t.(type) {
	case *Var:
		if n.Name.Kind() != name.DeBruijn {
			return n
		}
		if n.Name.Index() >= cutoff {
			return NewVar(n.span, n.Name.ShiftDeBruijn(delta))
		}
		return n
	case *App:
		return &App{node: n.node, Fun: shift(n.Fun, delta, cutoff), Arg: shift(n.Arg, delta, cutoff)}
	case *Lambda:
		return &Lambda{node: n.node, Hint: n.Hint, ArgType: shift(n.ArgType, delta, cutoff), Body: shift(n.Body, delta, cutoff+1)}
	case *Forall:
		return &Forall{node: n.node, Hint: n.Hint, ArgType: shift(n.ArgType, delta, cutoff), BodyTy: shift(n.BodyTy, delta, cutoff+1)}
	case *Recursor:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = shift(a, delta, cutoff)
		}
		return &Recursor{node: n.node, Datatype: n.Datatype, Offset: n.Offset, Args: args}
	default:
		return t
	}
}

// Abstr replaces occurrences of local (matched by its unique tag) with a
// fresh DeBruijn Var at the current depth, closing the term under that
// binder. This is spec.md §4.B's `abstr`, the inverse of opening.
func Abstr(self Term, local name.Name) Term {
	return abstrAt(self, 0, local)
}

func abstrAt(t Term, depth int, local name.Name) Term {
	switch n := t.(type) {
	case *Var:
		if n.Name.Kind() == name.Local && n.Name.Equal(local) {
			return NewVar(n.span, name.NewDeBruijn(depth, n.Name.Hint()))
		}
		return n
	case *App:
		return &App{node: n.node, Fun: abstrAt(n.Fun, depth, local), Arg: abstrAt(n.Arg, depth, local)}
	case *Lambda:
		return &Lambda{node: n.node, Hint: n.Hint, ArgType: abstrAt(n.ArgType, depth, local), Body: abstrAt(n.Body, depth+1, local)}
	case *Forall:
		return &Forall{node: n.node, Hint: n.Hint, ArgType: abstrAt(n.ArgType, depth, local), BodyTy: abstrAt(n.BodyTy, depth+1, local)}
	case *Recursor:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = abstrAt(a, depth, local)
		}
		return &Recursor{node: n.node, Datatype: n.Datatype, Offset: n.Offset, Args: args}
	default:
		return t
	}
}

// Predicate decides whether a subterm should be rewritten by ReplaceTerm.
type Predicate func(Term) bool

// ReplaceTerm performs a structural rewrite: every subterm satisfying pred
// is replaced by rhs. Used only by Unfold (see kernel package).
func ReplaceTerm(self Term, rhs Term, pred Predicate) Term {
	if pred(self) {
		return rhs
	}
	switch n := self.(type) {
	case *App:
		return &App{node: n.node, Fun: ReplaceTerm(n.Fun, rhs, pred), Arg: ReplaceTerm(n.Arg, rhs, pred)}
	case *Lambda:
		return &Lambda{node: n.node, Hint: n.Hint, ArgType: ReplaceTerm(n.ArgType, rhs, pred), Body: ReplaceTerm(n.Body, rhs, pred)}
	case *Forall:
		return &Forall{node: n.node, Hint: n.Hint, ArgType: ReplaceTerm(n.ArgType, rhs, pred), BodyTy: ReplaceTerm(n.BodyTy, rhs, pred)}
	case *Recursor:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = ReplaceTerm(a, rhs, pred)
		}
		return &Recursor{node: n.node, Datatype: n.Datatype, Offset: n.Offset, Args: args}
	default:
		return self
	}
}

// Head returns f for a curried application spine f x1 ... xn, with its span
// left as is; a term that is not an App is its own head. It never returns
// nil: callers decide from the head's variant whether it names a
// constructor.
func Head(t Term) Term {
	for {
		app, ok := t.(*App)
		if !ok {
			return t
		}
		t = app.Fun
	}
}

// Args returns the spine arguments of Head(t), outermost-last (i.e. in
// application order), or nil if t carries no application spine at all.
func Args(t Term) []Term {
	var rev []Term
	for {
		app, ok := t.(*App)
		if !ok {
			break
		}
		rev = append(rev, app.Arg)
		t = app.Fun
	}
	if len(rev) == 0 {
		return nil
	}
	args := make([]Term, len(rev))
	for i, a := range rev {
		args[len(rev)-1-i] = a
	}
	return args
}

// ApplyAll left-folds applications: ApplyAll(f, [a, b, c]) == f a b c.
func ApplyAll(head Term, args []Term) Term {
	result := head
	for _, a := range args {
		result = &App{Fun: result, Arg: a}
	}
	return result
}

// Equal is structural equality ignoring spans and binder hints but
// respecting DeBruijn indices (alpha-equivalence is inherent since binders
// are nameless).
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name.Equal(y.Name)
	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && Equal(x.ArgType, y.ArgType) && Equal(x.Body, y.Body)
	case *Forall:
		y, ok := b.(*Forall)
		return ok && Equal(x.ArgType, y.ArgType) && Equal(x.BodyTy, y.BodyTy)
	case *TypeSort:
		_, ok := b.(*TypeSort)
		return ok
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Kind == y.Kind && (x.Kind != LitInt || x.Int == y.Int)
	case *Recursor:
		y, ok := b.(*Recursor)
		if !ok || !x.Datatype.Equal(y.Datatype) || x.Offset != y.Offset || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
