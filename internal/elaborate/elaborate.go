// Package elaborate lowers internal/surface's named-binder AST to
// internal/term's locally-nameless core, discharging spec.md §6's
// assumption that terms reaching the kernel are "already elaborated: no
// surface sugar, no implicit arguments, DeBruijn-correct". It performs only
// name resolution and DeBruijn conversion — never unification or
// inference, keeping spec.md's Non-goals intact.
package elaborate

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/surface"
	"github.com/hb-lang/hbc/internal/term"
)

// scope is a stack of binder hints, innermost last; position from the end
// gives the DeBruijn index directly.
type scope []string

func (s scope) push(hint string) scope {
	return append(append(scope{}, s...), hint)
}

func (s scope) resolve(ident string) (term.Term, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ident {
			return term.NewVar(srcmap.Span{}, name.NewDeBruijn(len(s)-1-i, ident)), true
		}
	}
	return nil, false
}

// Elaborator lowers a single file's declarations, qualifying every
// top-level name under ModulePrefix (joined with "."), unless the source
// identifier already contains a dot (an explicitly-written qualified
// reference is taken verbatim).
type Elaborator struct {
	ModulePrefix string
}

// New creates an Elaborator with no module prefix (standalone file usage,
// matching spec.md §8's seed cases, which use bare unqualified names).
func New() *Elaborator {
	return &Elaborator{}
}

// qualify builds the global Name for a bare top-level identifier.
func (el *Elaborator) qualify(ident string) name.Name {
	if el.ModulePrefix == "" {
		return name.NewQualifiedString(ident)
	}
	return name.NewQualifiedString(el.ModulePrefix + "." + ident)
}

// ElaborateFile lowers every declaration of f, in order, into a
// decl.Module.
func (el *Elaborator) ElaborateFile(f *surface.File) (*decl.Module, error) {
	mod := &decl.Module{}
	for _, d := range f.Decls {
		item, err := el.elaborateDecl(d)
		if err != nil {
			return nil, err
		}
		mod.Items = append(mod.Items, item)
	}
	return mod, nil
}

func (el *Elaborator) elaborateDecl(d surface.Decl) (decl.Item, error) {
	switch n := d.(type) {
	case *surface.DataDecl:
		return el.elaborateData(n)
	case *surface.FnDecl:
		return el.elaborateFn(n)
	case *surface.ExternDecl:
		return el.elaborateExtern(n)
	default:
		return decl.Item{}, fmt.Errorf("elaborate: unhandled declaration %T", d)
	}
}

func (el *Elaborator) elaborateData(d *surface.DataDecl) (decl.Item, error) {
	ty, err := el.elaborateExpr(d.Type, nil)
	if err != nil {
		return decl.Item{}, err
	}
	dataName := el.qualify(d.Name)

	seen := make(map[string]bool, len(d.Ctors))
	ctors := make([]decl.Ctor, len(d.Ctors))
	for i, c := range d.Ctors {
		if seen[c.Name] {
			return decl.Item{}, diag.Wrap(diag.New(diag.SCONameExists, "elaborate", fmt.Sprintf("duplicate constructor %q in datatype %q", c.Name, d.Name)).WithSpan(d.Span()))
		}
		seen[c.Name] = true
		ct, err := el.elaborateExpr(c.Type, nil)
		if err != nil {
			return decl.Item{}, err
		}
		ctors[i] = decl.Ctor{Name: el.qualify(c.Name), Type: ct}
	}

	return decl.Item{Data: &decl.Data{Name: dataName, Type: ty, Ctors: ctors}}, nil
}

func (el *Elaborator) elaborateFn(f *surface.FnDecl) (decl.Item, error) {
	ty, err := el.elaborateExpr(f.Type, nil)
	if err != nil {
		return decl.Item{}, err
	}
	body, err := el.elaborateExpr(f.Body, nil)
	if err != nil {
		return decl.Item{}, err
	}
	return decl.Item{Fn: &decl.Function{Name: el.qualify(f.Name), RetTy: ty, Body: body}}, nil
}

func (el *Elaborator) elaborateExtern(e *surface.ExternDecl) (decl.Item, error) {
	ty, err := el.elaborateExpr(e.Type, nil)
	if err != nil {
		return decl.Item{}, err
	}
	return decl.Item{Extern: &decl.Extern{Name: el.qualify(e.Name), Type: ty}}, nil
}

// ElaborateExpr lowers a single standalone expression (no enclosing
// declaration), used by the REPL to evaluate one line at a time.
func (el *Elaborator) ElaborateExpr(e surface.Expr) (term.Term, error) {
	return el.elaborateExpr(e, nil)
}

func (el *Elaborator) elaborateExpr(e surface.Expr, sc scope) (term.Term, error) {
	switch n := e.(type) {
	case *surface.Ident:
		if v, ok := sc.resolve(n.Name); ok {
			return withSpan(v, n.Span()), nil
		}
		return term.NewVar(n.Span(), el.resolveGlobal(n.Name)), nil

	case *surface.App:
		fun, err := el.elaborateExpr(n.Fun, sc)
		if err != nil {
			return nil, err
		}
		arg, err := el.elaborateExpr(n.Arg, sc)
		if err != nil {
			return nil, err
		}
		return &term.App{Fun: fun, Arg: arg}, nil

	case *surface.Lambda:
		argTy, err := el.elaborateExpr(n.ParamType, sc)
		if err != nil {
			return nil, err
		}
		body, err := el.elaborateExpr(n.Body, sc.push(n.Param))
		if err != nil {
			return nil, err
		}
		return &term.Lambda{Hint: n.Param, ArgType: argTy, Body: body}, nil

	case *surface.Forall:
		argTy, err := el.elaborateExpr(n.ParamType, sc)
		if err != nil {
			return nil, err
		}
		body, err := el.elaborateExpr(n.Body, sc.push(n.Param))
		if err != nil {
			return nil, err
		}
		return &term.Forall{Hint: n.Param, ArgType: argTy, BodyTy: body}, nil

	case *surface.Arrow:
		dom, err := el.elaborateExpr(n.Dom, sc)
		if err != nil {
			return nil, err
		}
		cod, err := el.elaborateExpr(n.Cod, sc.push("_"))
		if err != nil {
			return nil, err
		}
		return &term.Forall{Hint: "_", ArgType: dom, BodyTy: cod}, nil

	case *surface.TypeExpr:
		return term.NewTypeSort(n.Span()), nil

	case *surface.IntLit:
		return &term.Literal{Kind: term.LitInt, Int: n.Value}, nil

	case *surface.UnitLit:
		return &term.Literal{Kind: term.LitUnit}, nil

	default:
		return nil, fmt.Errorf("elaborate: unhandled expression %T", e)
	}
}

// resolveGlobal qualifies a bare identifier the same way a declaration
// name is qualified, so references to sibling declarations in the same
// file resolve to the names DeclareDatatype/DeclareDef/DeclareExtern used.
// An identifier that already contains a dot is a fully qualified reference
// and is taken verbatim (e.g. a name imported from another module by the
// loader).
func (el *Elaborator) resolveGlobal(ident string) name.Name {
	for _, r := range ident {
		if r == '.' {
			return name.NewQualifiedString(ident)
		}
	}
	return el.qualify(ident)
}

// withSpan rewraps a Var term with a different (more precise) span.
func withSpan(t term.Term, span srcmap.Span) term.Term {
	v, ok := t.(*term.Var)
	if !ok {
		return t
	}
	return term.NewVar(span, v.Name)
}
