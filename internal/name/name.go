// Package name implements the identity of binders and globals (spec.md §3,
// §4.A): qualified globals, DeBruijn occurrences, checking-time locals, and
// unification-placeholder metas.
package name

import (
	"fmt"
	"strings"
)

// Kind distinguishes the four variants of Name.
type Kind int

const (
	Qualified Kind = iota
	DeBruijn
	Local
	Meta
)

func (k Kind) String() string {
	switch k {
	case Qualified:
		return "Qualified"
	case DeBruijn:
		return "DeBruijn"
	case Local:
		return "Local"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// Name is a polymorphic identifier. The zero value is not a valid Name;
// always construct one through the New* functions.
type Name struct {
	kind  Kind
	path  []string // Qualified
	index int      // DeBruijn
	hint  string   // DeBruijn, Local
	tag   uint64   // Local — unique within an Allocator's lifetime
	// ty is left as `any` holding a term.Term to avoid an import cycle
	// between name and term (term.Var wraps a Name, and a Local's type is
	// itself a term.Term). Callers read it through the term package's
	// term.LocalType helper instead of touching this field directly.
	ty any
}

// NewQualified builds a Qualified name from dotted path components, e.g.
// NewQualified([]string{"Nat", "succ"}) for "Nat.succ".
func NewQualified(path []string) Name {
	cp := make([]string, len(path))
	copy(cp, path)
	return Name{kind: Qualified, path: cp}
}

// NewQualifiedString splits a dotted string into a Qualified name.
func NewQualifiedString(s string) Name {
	return NewQualified(strings.Split(s, "."))
}

// NewDeBruijn builds a bound-variable occurrence: index is the binder
// depth (0 = innermost), hint is the printable name used only for display.
func NewDeBruijn(index int, hint string) Name {
	return Name{kind: DeBruijn, index: index, hint: hint}
}

// NewMeta builds a placeholder name. This core never unifies metas; they
// are treated as opaque constants by reduction (spec.md §3).
func NewMeta(hint string) Name {
	return Name{kind: Meta, hint: hint}
}

// newLocal is unexported: Locals may only be minted by an Allocator so the
// uniqueness tag is always fresh.
func newLocal(tag uint64, hint string, ty any) Name {
	return Name{kind: Local, tag: tag, hint: hint, ty: ty}
}

// Kind reports which variant n is.
func (n Name) Kind() Kind { return n.kind }

// Path returns the dotted components of a Qualified name.
func (n Name) Path() []string { return n.path }

// String renders n for display: a Qualified path with "." separators,
// DeBruijn as hint#index, Local as hint~tag, and Meta as ?hint.
func (n Name) String() string {
	switch n.kind {
	case Qualified:
		return strings.Join(n.path, ".")
	case DeBruijn:
		return fmt.Sprintf("%s#%d", n.hint, n.index)
	case Local:
		return fmt.Sprintf("%s~%d", n.hint, n.tag)
	case Meta:
		return fmt.Sprintf("?%s", n.hint)
	default:
		return "<invalid-name>"
	}
}

// Index returns the DeBruijn depth; only meaningful for Kind() == DeBruijn.
func (n Name) Index() int { return n.index }

// Hint returns the printable hint carried by DeBruijn and Local names.
func (n Name) Hint() string { return n.hint }

// Tag returns the unique allocation tag of a Local.
func (n Name) Tag() uint64 { return n.tag }

// LocalTypeAny returns the raw ascribed type of a Local as an `any`; the
// term package exposes a typed accessor (term.LocalType) that asserts this
// back to term.Term.
func (n Name) LocalTypeAny() any { return n.ty }

// ShiftDeBruijn returns a copy of n with its DeBruijn index adjusted by
// delta; only valid for Kind() == DeBruijn.
func (n Name) ShiftDeBruijn(delta int) Name {
	n.index += delta
	return n
}

// Equal is structural equality: two Locals are equal only if they carry the
// same tag (which makes them globally unique per Allocator); DeBruijn names
// compare by index only (hints are display metadata); Qualified names
// compare by path; Metas compare by hint.
func (n Name) Equal(o Name) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case Qualified:
		if len(n.path) != len(o.path) {
			return false
		}
		for i := range n.path {
			if n.path[i] != o.path[i] {
				return false
			}
		}
		return true
	case DeBruijn:
		return n.index == o.index
	case Local:
		return n.tag == o.tag
	case Meta:
		return n.hint == o.hint
	default:
		return false
	}
}

// Allocator is the monotone fresh-local counter of spec.md §9: rather than
// an interior-mutable cell, it is an explicit struct threaded through
// TyCtxt/LocalCx, which the design notes call out as an equivalent choice
// under the single-threaded model.
type Allocator struct {
	next uint64
}

// NewAllocator creates a counter starting at 0; tags are never reused.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Local allocates a fresh Local given a DeBruijn name to inherit the hint
// from, and the local's ascribed type (an `any` wrapping term.Term to avoid
// the import cycle — see Local's ty field). local(...) in spec.md §4.A
// requires the input to be a DeBruijn name; any other Kind is a programmer
// error and is reported rather than panicking (spec.md §7).
func (a *Allocator) Local(n Name, ty any) (Name, error) {
	if n.Kind() != DeBruijn {
		return Name{}, fmt.Errorf("name: Local() requires a DeBruijn name, got %s", n.Kind())
	}
	a.next++
	return newLocal(a.next, n.hint, ty), nil
}

// FreshLocal allocates a Local directly from a hint, bypassing the
// DeBruijn-input requirement — used where recursor synthesis or checking
// mints a local with no corresponding bound occurrence yet (e.g. opening a
// Forall).
func (a *Allocator) FreshLocal(hint string, ty any) Name {
	a.next++
	return newLocal(a.next, hint, ty)
}
