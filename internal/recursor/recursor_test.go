package recursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
)

func natData() *decl.Data {
	natName := name.NewQualifiedString("Nat")
	return &decl.Data{
		Name: natName,
		Type: term.NewTypeSort(srcmap.Span{}),
		Ctors: []decl.Ctor{
			{Name: name.NewQualifiedString("Nat.zero"), Type: term.NewVar(srcmap.Span{}, natName)},
			{Name: name.NewQualifiedString("Nat.succ"), Type: &term.Forall{
				Hint:    "n",
				ArgType: term.NewVar(srcmap.Span{}, natName),
				BodyTy:  term.NewVar(srcmap.Span{}, natName),
			}},
		},
	}
}

func TestSynthesizeOffsetCountsMotivePlusConstructors(t *testing.T) {
	data := natData()
	_, offset, err := Synthesize(data, name.NewAllocator())
	require.NoError(t, err)
	assert.Equal(t, 1+len(data.Ctors), offset)
}

func TestSynthesizeTelescopeEndsInMotiveAppliedToScrutinee(t *testing.T) {
	data := natData()
	alloc := name.NewAllocator()
	recType, _, err := Synthesize(data, alloc)
	require.NoError(t, err)

	// Peel every Forall: for Nat there are none besides motive/minor/
	// scrutinee (no data parameters), so exactly 4 binders: motive, two
	// minor premises, scrutinee.
	cur := recType
	count := 0
	for {
		f, ok := cur.(*term.Forall)
		if !ok {
			break
		}
		count++
		cur = term.Instantiate(f.BodyTy, term.NewVar(srcmap.Span{}, alloc.FreshLocal("x", f.ArgType)))
	}
	assert.Equal(t, 1+len(data.Ctors)+1, count, "motive + one minor premise per ctor + scrutinee")

	app, ok := cur.(*term.App)
	require.True(t, ok, "conclusion must be an application of the motive to the scrutinee")
	motiveVar, ok := app.Fun.(*term.Var)
	require.True(t, ok)
	assert.Equal(t, name.Local, motiveVar.Name.Kind())
}

func TestSynthesizeInsertsInductiveHypothesisForSelfReferencingField(t *testing.T) {
	data := natData()
	alloc := name.NewAllocator()
	recType, _, err := Synthesize(data, alloc)
	require.NoError(t, err)

	// Walk to the succ minor premise (second-to-last binder before the
	// scrutinee) and confirm it has two arguments: the field `n` and an
	// inductive hypothesis `motive n`.
	cur := recType
	var premiseTypes []term.Term
	for {
		f, ok := cur.(*term.Forall)
		if !ok {
			break
		}
		premiseTypes = append(premiseTypes, f.ArgType)
		cur = term.Instantiate(f.BodyTy, term.NewVar(srcmap.Span{}, alloc.FreshLocal("x", f.ArgType)))
	}
	succPremise := premiseTypes[2] // [motive, zeroPremise, succPremise, scrutineeTy]

	outer, ok := succPremise.(*term.Forall)
	require.True(t, ok, "succ premise must bind its field n")
	inner, ok := outer.BodyTy.(*term.Forall)
	require.True(t, ok, "succ premise must also bind an inductive hypothesis for n")

	ihApp, ok := inner.ArgType.(*term.App)
	require.True(t, ok, "the inductive hypothesis type must be `motive n`")
	_, ok = ihApp.Fun.(*term.Var)
	assert.True(t, ok)
}
