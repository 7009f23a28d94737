package tyctxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
)

func boolData() *decl.Data {
	boolName := name.NewQualifiedString("Bool")
	return &decl.Data{
		Name: boolName,
		Type: term.NewTypeSort(srcmap.Span{}),
		Ctors: []decl.Ctor{
			{Name: name.NewQualifiedString("Bool.true"), Type: term.NewVar(srcmap.Span{}, boolName)},
			{Name: name.NewQualifiedString("Bool.false"), Type: term.NewVar(srcmap.Span{}, boolName)},
		},
	}
}

func TestDeclareDatatypeRegistersTypeCtorsAndRecursor(t *testing.T) {
	ctx := New()
	require.NoError(t, ctx.DeclareDatatype(boolData()))

	assert.True(t, ctx.InScope(name.NewQualifiedString("Bool")))
	assert.True(t, ctx.InScope(name.NewQualifiedString("Bool.true")))
	assert.True(t, ctx.InScope(name.NewQualifiedString("Bool.false")))
	assert.True(t, ctx.InScope(name.NewQualifiedString("Bool.rec")))
}

func TestDeclareDatatypeRejectsDuplicateName(t *testing.T) {
	ctx := New()
	require.NoError(t, ctx.DeclareDatatype(boolData()))
	require.Error(t, ctx.DeclareDatatype(boolData()))
}

func TestDeclareDefThenLookupGlobalReturnsDeclaredType(t *testing.T) {
	ctx := New()
	fnName := name.NewQualifiedString("id")
	retTy := term.NewTypeSort(srcmap.Span{})
	require.NoError(t, ctx.DeclareDef(&decl.Function{Name: fnName, RetTy: retTy, Body: retTy}))

	got, err := ctx.LookupGlobal(fnName)
	require.NoError(t, err)
	assert.True(t, term.Equal(got, retTy))
}

func TestLookupGlobalUnknownNameErrors(t *testing.T) {
	ctx := New()
	_, err := ctx.LookupGlobal(name.NewQualifiedString("nope"))
	require.Error(t, err)
}

func TestMergeBatchesNameCollisionsRatherThanStoppingAtFirst(t *testing.T) {
	a := New()
	require.NoError(t, a.DeclareDatatype(boolData()))

	b := New()
	require.NoError(t, b.DeclareDatatype(boolData()))

	err := a.Merge(b)
	require.Error(t, err)
	// Bool, Bool.true, Bool.false, and Bool.rec each collide with a's
	// identical declarations (Bool collides in both Types and Axioms, but
	// is reported once, not twice); Merge must not stop at the first
	// collision, so the aggregate report mentions more than one name.
	assert.Contains(t, err.Error(), "Bool")

	rep, ok := err.(*diag.Many)
	require.True(t, ok)
	assert.Len(t, rep.Reports, 4, "one NameExists per colliding name, not per colliding map entry")
}

func TestMergeSucceedsOnDisjointEnvironments(t *testing.T) {
	a := New()
	require.NoError(t, a.DeclareDatatype(boolData()))

	b := New()
	otherName := name.NewQualifiedString("Other")
	require.NoError(t, b.DeclareDatatype(&decl.Data{
		Name: otherName,
		Type: term.NewTypeSort(srcmap.Span{}),
		Ctors: []decl.Ctor{
			{Name: name.NewQualifiedString("Other.mk"), Type: term.NewVar(srcmap.Span{}, otherName)},
		},
	}))

	require.NoError(t, a.Merge(b))
	assert.True(t, a.InScope(otherName))
	assert.True(t, a.InScope(name.NewQualifiedString("Bool")))
}

func TestGetMainBodyReturnsMainDefinitionBody(t *testing.T) {
	ctx := New()
	body := term.NewTypeSort(srcmap.Span{})
	require.NoError(t, ctx.DeclareDef(&decl.Function{
		Name:  name.NewQualifiedString("main"),
		RetTy: term.NewTypeSort(srcmap.Span{}),
		Body:  body,
	}))

	got, err := ctx.GetMainBody()
	require.NoError(t, err)
	assert.True(t, term.Equal(got, body))
}

func TestGetMainBodyErrorsWhenNoMain(t *testing.T) {
	ctx := New()
	_, err := ctx.GetMainBody()
	require.Error(t, err)
}
