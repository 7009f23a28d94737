// Package recursor synthesizes the elimination principle (eliminator) for
// an inductive datatype declaration — spec.md §4.D. Given a Data
// declaration, it builds the recursor's type (inserted into the global
// environment's axioms under "<datatype>.rec") and the Offset the
// evaluator uses to locate minor premises during ι-reduction.
//
// Construction follows the opening/closing discipline spec.md §4.G
// describes for the checker: every telescope is opened into fresh Locals
// (so dependent occurrences can be built as ordinary term.Var references),
// and closed back into a Π-telescope via repeated term.Abstr once the
// conclusion is built. This avoids hand-rolled DeBruijn-index arithmetic.
package recursor

import (
	"fmt"

	"github.com/hb-lang/hbc/internal/decl"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/name"
	"github.com/hb-lang/hbc/internal/srcmap"
	"github.com/hb-lang/hbc/internal/term"
)

// Synthesize builds the recursor's type for d and returns it alongside the
// Offset (1 motive + len(d.Ctors) minor premises) that a Recursor term
// must respect. The returned type is closed: every local minted by alloc
// while building it is re-abstracted before this function returns, so none
// escape into the persistent environment (spec.md invariant 2).
func Synthesize(d *decl.Data, alloc *name.Allocator) (recType term.Term, offset int, err error) {
	dataLocals, dataParamTypes, _ := openTelescope(d.Type, alloc)
	dataApplied := term.ApplyAll(term.NewVar(srcmap.Span{}, d.Name), varsOf(dataLocals))

	motiveType := &term.Forall{
		Hint:    "_",
		ArgType: dataApplied,
		BodyTy:  term.NewTypeSort(srcmap.Span{}),
	}
	motiveLocal := alloc.FreshLocal("motive", motiveType)

	var minorLocals []name.Name
	var minorTypes []term.Term
	for _, c := range d.Ctors {
		mt, err := minorPremiseType(d, c, motiveLocal, alloc)
		if err != nil {
			return nil, 0, fmt.Errorf("recursor: datatype %s, constructor %s: %w", d.Name, c.Name, err)
		}
		ml := alloc.FreshLocal("minor_"+c.Name.String(), mt)
		minorLocals = append(minorLocals, ml)
		minorTypes = append(minorTypes, mt)
	}

	scrutineeLocal := alloc.FreshLocal("scrutinee", dataApplied)
	concl := &term.App{
		Fun: term.NewVar(srcmap.Span{}, motiveLocal),
		Arg: term.NewVar(srcmap.Span{}, scrutineeLocal),
	}

	allLocals := append(append(append([]name.Name{}, dataLocals...), motiveLocal), minorLocals...)
	allLocals = append(allLocals, scrutineeLocal)
	allTypes := append(append(append([]term.Term{}, dataParamTypes...), motiveType), minorTypes...)
	allTypes = append(allTypes, dataApplied)

	recType = closeTelescope(allLocals, allTypes, concl)
	return recType, 1 + len(d.Ctors), nil
}

// minorPremiseType builds the minor premise type for constructor c: a
// Π-telescope over c's own fields, with an extra inductive-hypothesis
// parameter `motive field` inserted directly after any field whose type is
// (headed by) the datatype itself, concluding in
// `motive (c field0 field1 ...)`.
func minorPremiseType(d *decl.Data, c decl.Ctor, motiveLocal name.Name, alloc *name.Allocator) (term.Term, error) {
	fieldLocals, fieldTypes, ctorConcl := openTelescope(c.Type, alloc)
	if !isSelfReferencing(ctorConcl, d.Name) {
		return nil, diag.Wrap(diag.New(diag.RECBadTelescope, "recursor", fmt.Sprintf("constructor %s's type does not conclude in an application of %s", c.Name, d.Name)))
	}

	var stepLocals []name.Name
	var stepTypes []term.Term
	for i, fl := range fieldLocals {
		stepLocals = append(stepLocals, fl)
		stepTypes = append(stepTypes, fieldTypes[i])
		if isSelfReferencing(fieldTypes[i], d.Name) {
			ihType := &term.App{
				Fun: term.NewVar(srcmap.Span{}, motiveLocal),
				Arg: term.NewVar(srcmap.Span{}, fl),
			}
			ihLocal := alloc.FreshLocal("ih_"+fl.Hint(), ihType)
			stepLocals = append(stepLocals, ihLocal)
			stepTypes = append(stepTypes, ihType)
		}
	}

	ctorApplied := term.ApplyAll(term.NewVar(srcmap.Span{}, c.Name), varsOf(fieldLocals))
	concl := &term.App{
		Fun: term.NewVar(srcmap.Span{}, motiveLocal),
		Arg: ctorApplied,
	}

	return closeTelescope(stepLocals, stepTypes, concl), nil
}

// openTelescope opens every leading Forall of a closed Π-telescope type
// into a fresh Local, returning the locals (outermost first), their
// binder types (each possibly referencing earlier locals), and the
// terminal conclusion with every binder substituted by its Local.
func openTelescope(t term.Term, alloc *name.Allocator) (locals []name.Name, types []term.Term, concl term.Term) {
	cur := t
	for {
		f, ok := cur.(*term.Forall)
		if !ok {
			return locals, types, cur
		}
		local := alloc.FreshLocal(f.Hint, f.ArgType)
		locals = append(locals, local)
		types = append(types, f.ArgType)
		cur = term.Instantiate(f.BodyTy, term.NewVar(srcmap.Span{}, local))
	}
}

// closeTelescope rebuilds a Π-telescope from locals opened by
// openTelescope (or minted directly), re-abstracting each local — in
// reverse (innermost-first) order — out of both the accumulated result
// and every not-yet-closed binder type that mentions it.
func closeTelescope(locals []name.Name, types []term.Term, concl term.Term) term.Term {
	result := concl
	for i := len(locals) - 1; i >= 0; i-- {
		bodyTy := term.Abstr(result, locals[i])
		result = &term.Forall{Hint: locals[i].Hint(), ArgType: types[i], BodyTy: bodyTy}
	}
	return result
}

// varsOf wraps each local as a term.Var.
func varsOf(locals []name.Name) []term.Term {
	out := make([]term.Term, len(locals))
	for i, l := range locals {
		out[i] = term.NewVar(srcmap.Span{}, l)
	}
	return out
}

// isSelfReferencing reports whether a constructor field's type is (an
// application headed by) the datatype itself, i.e. whether this field
// needs an inserted inductive-hypothesis parameter in the minor premise.
func isSelfReferencing(fieldTy term.Term, dataName name.Name) bool {
	h := term.Head(fieldTy)
	v, ok := h.(*term.Var)
	if !ok {
		return false
	}
	return v.Name.Kind() == name.Qualified && v.Name.Equal(dataName)
}
