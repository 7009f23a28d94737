package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/recursor"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

// natFixture builds a minimal global environment with a Peano-style Nat
// datatype (zero/succ) and its synthesized recursor, mirroring spec.md §8's
// seed cases.
type natFixture struct {
	ctx      *tyctxt.TyCtxt
	zero     term.Term
	succName name.Name
	natName  name.Name
}

func newNatFixture(t *testing.T) *natFixture {
	t.Helper()
	ctx := tyctxt.New()

	natName := name.NewQualifiedString("Nat")
	zeroName := name.NewQualifiedString("Nat.zero")
	succName := name.NewQualifiedString("Nat.succ")

	data := &decl.Data{
		Name: natName,
		Type: term.NewTypeSort(srcmap.Span{}),
		Ctors: []decl.Ctor{
			{Name: zeroName, Type: term.NewVar(srcmap.Span{}, natName)},
			{Name: succName, Type: &term.Forall{
				Hint:    "n",
				ArgType: term.NewVar(srcmap.Span{}, natName),
				BodyTy:  term.NewVar(srcmap.Span{}, natName),
			}},
		},
	}
	require.NoError(t, ctx.DeclareDatatype(data))

	return &natFixture{
		ctx:      ctx,
		zero:     term.NewVar(srcmap.Span{}, zeroName),
		succName: succName,
		natName:  natName,
	}
}

func (f *natFixture) succ(n term.Term) term.Term {
	return &term.App{Fun: term.NewVar(srcmap.Span{}, f.succName), Arg: n}
}

func (f *natFixture) lit(n int) term.Term {
	t := f.zero
	for i := 0; i < n; i++ {
		t = f.succ(t)
	}
	return t
}

// recursorOf builds a fully-applied Recursor eliminating scrutinee with
// motive/minor premises supplied directly (bypassing check.inferRecursor,
// which this package does not import, to keep the test self-contained).
func (f *natFixture) recursorOf(motive, zeroCase, succCase, scrutinee term.Term) term.Term {
	_, offset, err := recursor.Synthesize(f.ctx.Types[f.natName.String()], f.ctx.Alloc)
	if err != nil {
		panic(err)
	}
	return term.NewRecursor(srcmap.Span{}, f.natName, offset, []term.Term{motive, zeroCase, succCase, scrutinee})
}

func TestEvalBetaReducesApplication(t *testing.T) {
	ev := New(tyctxt.New())
	id := &term.Lambda{ArgType: term.NewTypeSort(srcmap.Span{}), Body: term.NewVar(srcmap.Span{}, name.NewDeBruijn(0, "x"))}
	app := &term.App{Fun: id, Arg: &term.Literal{Kind: term.LitUnit}}

	result, err := ev.Eval(app)
	require.NoError(t, err)
	assert.True(t, term.Equal(result, &term.Literal{Kind: term.LitUnit}))
}

func TestEvalDeltaUnfoldsDefinition(t *testing.T) {
	ctx := tyctxt.New()
	fnName := name.NewQualifiedString("theUnit")
	require.NoError(t, ctx.DeclareDef(&decl.Function{
		Name:  fnName,
		RetTy: term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit")),
		Body:  &term.Literal{Kind: term.LitUnit},
	}))

	ev := New(ctx)
	result, err := ev.Eval(term.NewVar(srcmap.Span{}, fnName))
	require.NoError(t, err)
	assert.True(t, term.Equal(result, &term.Literal{Kind: term.LitUnit}))
}

func TestEvalIotaReducesRecursorOnZero(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	motive := &term.Lambda{ArgType: term.NewVar(srcmap.Span{}, f.natName), Body: term.NewVar(srcmap.Span{}, f.natName)}
	zeroCase := f.zero
	succCase := &term.Lambda{ // n
		ArgType: term.NewVar(srcmap.Span{}, f.natName),
		Body: &term.Lambda{ // ih
			ArgType: term.NewVar(srcmap.Span{}, f.natName),
			Body:    term.NewVar(srcmap.Span{}, name.NewDeBruijn(0, "ih")),
		},
	}
	rec := f.recursorOf(motive, zeroCase, succCase, f.zero)

	result, err := ev.Eval(rec)
	require.NoError(t, err)
	assert.True(t, term.Equal(result, f.zero))
}

func TestEvalIotaReducesRecursorOnSucc(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	motive := &term.Lambda{ArgType: term.NewVar(srcmap.Span{}, f.natName), Body: term.NewVar(srcmap.Span{}, f.natName)}
	zeroCase := f.zero
	// fun n ih => n   (predecessor-stripping recursor: pred)
	succCase := &term.Lambda{
		ArgType: term.NewVar(srcmap.Span{}, f.natName),
		Body: &term.Lambda{
			ArgType: term.NewVar(srcmap.Span{}, f.natName),
			Body:    term.NewVar(srcmap.Span{}, name.NewDeBruijn(1, "n")),
		},
	}
	rec := f.recursorOf(motive, zeroCase, succCase, f.lit(2))

	result, err := ev.Eval(rec)
	require.NoError(t, err)
	assert.True(t, term.Equal(result, f.lit(1)))
}

func TestEvalRecursorStuckOnNeutralScrutinee(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	local := f.ctx.Alloc.FreshLocal("n", term.NewVar(srcmap.Span{}, f.natName))
	motive := &term.Lambda{ArgType: term.NewVar(srcmap.Span{}, f.natName), Body: term.NewVar(srcmap.Span{}, f.natName)}
	rec := f.recursorOf(motive, f.zero, &term.Lambda{
		ArgType: term.NewVar(srcmap.Span{}, f.natName),
		Body:    &term.Lambda{ArgType: term.NewVar(srcmap.Span{}, f.natName), Body: term.NewVar(srcmap.Span{}, name.NewDeBruijn(0, "ih"))},
	}, term.NewVar(srcmap.Span{}, local))

	result, err := ev.Eval(rec)
	require.NoError(t, err)
	_, stuck := result.(*term.Recursor)
	assert.True(t, stuck, "recursor on a neutral scrutinee must stay stuck, not panic")
}

func TestEvalIsDeterministicAndIdempotent(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	expr := f.succ(f.succ(f.zero))
	r1, err := ev.Eval(expr)
	require.NoError(t, err)
	r2, err := ev.Eval(expr)
	require.NoError(t, err)
	assert.True(t, term.Equal(r1, r2), "evaluating the same term twice must agree")

	again, err := ev.Eval(r1)
	require.NoError(t, err)
	assert.True(t, term.Equal(again, r1), "evaluating an already-normal term must be a no-op")
}

func TestEvalStepBudgetExceeded(t *testing.T) {
	ctx := tyctxt.New()
	loopName := name.NewQualifiedString("loop")
	require.NoError(t, ctx.DeclareDef(&decl.Function{
		Name:  loopName,
		RetTy: term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit")),
		Body:  term.NewVar(srcmap.Span{}, loopName),
	}))

	ev := New(ctx)
	ev.StepBudget = 100
	_, err := ev.Eval(term.NewVar(srcmap.Span{}, loopName))
	require.Error(t, err)
}

func TestDefEqSucceedsOnEqualNormalForms(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	result, err := ev.DefEq(srcmap.Span{}, f.lit(2), f.succ(f.succ(f.zero)))
	require.NoError(t, err)
	assert.True(t, term.Equal(result, f.lit(2)))
}

func TestDefEqFailsAndCollectsInequalities(t *testing.T) {
	f := newNatFixture(t)
	ev := New(f.ctx)

	_, err := ev.DefEq(srcmap.Span{}, f.lit(1), f.lit(2))
	require.Error(t, err)
}
