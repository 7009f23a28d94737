package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

func unitModule() *decl.Module {
	unitName := name.NewQualifiedString("Unit")
	return &decl.Module{
		Items: []decl.Item{
			{Data: &decl.Data{
				Name: unitName,
				Type: term.NewTypeSort(srcmap.Span{}),
				Ctors: []decl.Ctor{
					{Name: name.NewQualifiedString("Unit.unit"), Type: term.NewVar(srcmap.Span{}, unitName)},
				},
			}},
		},
	}
}

func TestTypeInferTermOnTypeSortIsTypeInType(t *testing.T) {
	cx := New(tyctxt.New())
	ty, err := cx.TypeInferTerm(term.NewTypeSort(srcmap.Span{}))
	require.NoError(t, err)
	assert.True(t, term.Equal(ty, term.NewTypeSort(srcmap.Span{})))
}

func TestTypeInferTermUnitLiteral(t *testing.T) {
	ctx, err := FromModule(unitModule())
	require.NoError(t, err)
	cx := New(ctx)

	ty, err := cx.TypeInferTerm(&term.Literal{Kind: term.LitUnit})
	require.NoError(t, err)
	assert.True(t, term.Equal(ty, term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit"))))
}

func TestTypeInferTermIntLiteralIsUnimplemented(t *testing.T) {
	cx := New(tyctxt.New())
	_, err := cx.TypeInferTerm(&term.Literal{Kind: term.LitInt, Int: 1})
	require.Error(t, err)
}

func TestTypeCheckTermLambdaAgainstForall(t *testing.T) {
	cx := New(tyctxt.New())
	// fun (x : Type) => x  :  forall (x : Type), Type
	id := &term.Lambda{
		Hint:    "x",
		ArgType: term.NewTypeSort(srcmap.Span{}),
		Body:    term.NewVar(srcmap.Span{}, name.NewDeBruijn(0, "x")),
	}
	want := &term.Forall{
		Hint:    "x",
		ArgType: term.NewTypeSort(srcmap.Span{}),
		BodyTy:  term.NewTypeSort(srcmap.Span{}),
	}
	_, err := cx.TypeCheckTerm(id, want)
	require.NoError(t, err)
}

func TestInferAppRejectsApplicationToNonFunction(t *testing.T) {
	cx := New(tyctxt.New())
	bad := &term.App{Fun: &term.Literal{Kind: term.LitUnit}, Arg: &term.Literal{Kind: term.LitUnit}}
	_, err := cx.TypeInferTerm(bad)
	require.Error(t, err)
}

func TestFromModuleChecksFunctionBodyAgainstDeclaredType(t *testing.T) {
	mod := unitModule()
	mod.Items = append(mod.Items, decl.Item{Fn: &decl.Function{
		Name:  name.NewQualifiedString("theUnit"),
		RetTy: term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit")),
		Body:  term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit.unit")),
	}})

	ctx, err := FromModule(mod)
	require.NoError(t, err)
	body, err := ctx.LookupGlobal(name.NewQualifiedString("theUnit"))
	require.NoError(t, err)
	assert.True(t, term.Equal(body, term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit"))))
}

func TestFromModuleFailsWhenBodyDoesNotMatchDeclaredType(t *testing.T) {
	mod := unitModule()
	mod.Items = append(mod.Items, decl.Item{Fn: &decl.Function{
		Name:  name.NewQualifiedString("bad"),
		RetTy: term.NewTypeSort(srcmap.Span{}),
		Body:  term.NewVar(srcmap.Span{}, name.NewQualifiedString("Unit.unit")),
	}})

	_, err := FromModule(mod)
	require.Error(t, err)
}

func TestGetMainBodyErrorsWhenAbsent(t *testing.T) {
	ctx, err := FromModule(unitModule())
	require.NoError(t, err)
	_, err = ctx.GetMainBody()
	require.Error(t, err)
}
