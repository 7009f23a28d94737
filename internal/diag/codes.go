// Package diag provides the structured error taxonomy for the hbc kernel.
// Every error the kernel raises is reportable: it carries a stable code, the
// phase that raised it, and (where relevant) a span and the normal forms
// involved, so a diagnostics layer can render "expected vs. actual" without
// re-deriving it.
package diag

// Error codes, grouped by phase. Mirrors the kernel's component letters
// (spec.md §4) rather than a surface compiler's phases, since lexing and
// parsing are ambient front-end concerns, not kernel errors.
const (
	// Scope errors (SCO###) — component C, §4.C / §7.
	SCOUnknownVariable = "SCO001" // lookup_global found neither a definition nor an axiom
	SCONameExists       = "SCO002" // merge/declare hit a name already present
	SCONoMain           = "SCO003" // get_main_body found no function named main

	// Type errors (TYP###) — components F/G, §4.F / §4.G / §7.
	TYPDefUnequal          = "TYP001" // def_eq found a structural mismatch between normal forms
	TYPApplicationMismatch = "TYP002" // application head did not reduce to a Forall
	TYPUnimplementedLit    = "TYP003" // Literal::Int inference (spec.md §9 — intentionally unimplemented)
	TYPDeBruijnLeak        = "TYP004" // a DeBruijn Var reached inference unopened — invariant violation

	// Recursor synthesis errors (REC###) — component D, §4.D.
	RECBadTelescope = "REC001" // a constructor's type did not end in an application of its datatype

	// Evaluator errors (EVL###) — component E, §4.E / §5.
	EVLStepBudget = "EVL001" // eval exceeded its configured step budget (spec.md §5 option (b))

	// Loader errors (LDR###) — §6's module-loader collaborator.
	LDRNotFound    = "LDR001" // no file found for a qualified module name
	LDRCycle       = "LDR002" // circular import detected via the load stack
	LDRParse       = "LDR003" // lexer/parser failure
	LDRElaborate   = "LDR004" // elaboration failure

	// Aggregate (AGG###).
	AGGMany = "AGG001" // Error::Many — batched errors from merge
)
