package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb-lang/hbc/internal/surface"
)

func TestParseFileDataDecl(t *testing.T) {
	f, err := ParseFile("t.hb", `
data Nat : Type
  | zero : Nat
  | succ : Nat -> Nat
end
`)
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)

	data, ok := f.Decls[0].(*surface.DataDecl)
	require.True(t, ok)
	assert.Equal(t, "Nat", data.Name)
	require.Len(t, data.Ctors, 2)
	assert.Equal(t, "zero", data.Ctors[0].Name)
	assert.Equal(t, "succ", data.Ctors[1].Name)

	arrow, ok := data.Ctors[1].Type.(*surface.Arrow)
	require.True(t, ok, "succ : Nat -> Nat must parse as an Arrow")
	assert.IsType(t, &surface.Ident{}, arrow.Dom)
	assert.IsType(t, &surface.Ident{}, arrow.Cod)
}

func TestParseFileFnDecl(t *testing.T) {
	f, err := ParseFile("t.hb", "def two : Nat := succ (succ zero)")
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*surface.FnDecl)
	require.True(t, ok)
	assert.Equal(t, "two", fn.Name)

	outer, ok := fn.Body.(*surface.App)
	require.True(t, ok)
	inner, ok := outer.Arg.(*surface.App)
	require.True(t, ok)
	assert.Equal(t, "zero", inner.Arg.(*surface.Ident).Name)
}

func TestParseFileExternDecl(t *testing.T) {
	f, err := ParseFile("t.hb", "extern magic : Nat")
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)
	ext, ok := f.Decls[0].(*surface.ExternDecl)
	require.True(t, ok)
	assert.Equal(t, "magic", ext.Name)
}

func TestParseExprLambdaAndForall(t *testing.T) {
	e, err := ParseExprString("t.hb", "fun (x : Type) => x")
	require.NoError(t, err)
	lam, ok := e.(*surface.Lambda)
	require.True(t, ok)
	assert.Equal(t, "x", lam.Param)

	e, err = ParseExprString("t.hb", "forall (x : Type), x")
	require.NoError(t, err)
	_, ok = e.(*surface.Forall)
	require.True(t, ok)
}

func TestParseExprApplicationIsLeftAssociative(t *testing.T) {
	e, err := ParseExprString("t.hb", "f a b")
	require.NoError(t, err)
	outer, ok := e.(*surface.App)
	require.True(t, ok)
	inner, ok := outer.Fun.(*surface.App)
	require.True(t, ok)
	assert.Equal(t, "f", inner.Fun.(*surface.Ident).Name)
	assert.Equal(t, "a", inner.Arg.(*surface.Ident).Name)
	assert.Equal(t, "b", outer.Arg.(*surface.Ident).Name)
}

func TestParseExprArrowIsRightAssociative(t *testing.T) {
	e, err := ParseExprString("t.hb", "A -> B -> C")
	require.NoError(t, err)
	outer, ok := e.(*surface.Arrow)
	require.True(t, ok)
	assert.Equal(t, "A", outer.Dom.(*surface.Ident).Name)
	inner, ok := outer.Cod.(*surface.Arrow)
	require.True(t, ok)
	assert.Equal(t, "B", inner.Dom.(*surface.Ident).Name)
	assert.Equal(t, "C", inner.Cod.(*surface.Ident).Name)
}

func TestParseExprRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseExprString("t.hb", "x y )")
	require.Error(t, err)
}
