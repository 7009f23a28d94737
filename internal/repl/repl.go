// Package repl is an interactive read-eval-print loop over a single
// global TyCtxt: each line is parsed as a standalone expression,
// elaborated, type-inferred, and normalized, the way the teacher's REPL
// drove its evaluator, but over this module's checker and evaluator
// instead of a Hindley-Milner inference engine.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/hb-lang/hbc/internal/check"
	"github.com/hb-lang/hbc/internal/config"
	"github.com/hb-lang/hbc/internal/elaborate"
	"github.com/hb-lang/hbc/internal/kernel"
	"github.com/hb-lang/hbc/internal/loader"
	"github.com/hb-lang/hbc/internal/parser"
	"github.com/hb-lang/hbc/internal/term"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// REPL holds the session's global context, built up across `:load`
// commands and standalone expressions.
type REPL struct {
	Version string
	Workspace *config.Workspace
	ctx     *tyctxt.TyCtxt
	eval    *kernel.Evaluator
	el      *elaborate.Elaborator
	history []string
}

// New creates a REPL with an empty global context, rooted at ws for
// :load commands.
func New(version string, ws *config.Workspace) *REPL {
	if version == "" {
		version = "dev"
	}
	if ws == nil {
		ws = config.Default()
	}
	ctx := tyctxt.New()
	return &REPL{
		Version:   version,
		Workspace: ws,
		ctx:       ctx,
		eval:      kernel.New(ctx),
		el:        elaborate.New(),
	}
}

func (r *REPL) prompt() string { return "hb> " }

// Start runs the interactive loop, reading lines from the terminal through a
// liner.Liner and writing output to out, until EOF or a :quit command. in is
// not read from: liner always reads the process's own terminal input.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".hbc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(s string) (c []string) {
		if strings.HasPrefix(s, ":") {
			for _, cmd := range []string{":help", ":quit", ":load", ":type", ":reset"} {
				if strings.HasPrefix(cmd, s) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("hbc"), bold(r.Version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt(r.prompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.handleCommand(input, out)
			continue
		}
		r.evalLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handleCommand(input string, out io.Writer) {
	fields := strings.Fields(input)
	cmd := fields[0]
	switch cmd {
	case ":help":
		fmt.Fprintln(out, "commands:")
		fmt.Fprintln(out, "  :load <module>   load and check a qualified module")
		fmt.Fprintln(out, "  :type <expr>     infer and print an expression's type")
		fmt.Fprintln(out, "  :reset           discard the global context")
		fmt.Fprintln(out, "  :quit            exit")
	case ":reset":
		r.ctx = tyctxt.New()
		r.eval = kernel.New(r.ctx)
		fmt.Fprintln(out, dim("context reset"))
	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(out, red("error")+": usage: :load <module>")
			return
		}
		r.loadModule(fields[1], out)
	case ":type":
		rest := strings.TrimSpace(strings.TrimPrefix(input, ":type"))
		_, ty, err := r.elaborateAndInfer(rest)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			return
		}
		fmt.Fprintln(out, ty.String())
	default:
		fmt.Fprintf(out, "%s: unknown command %q\n", red("error"), cmd)
	}
}

func (r *REPL) loadModule(name string, out io.Writer) {
	ld := loader.New(r.Workspace)
	mod, err := ld.Load(name)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	newCtx, err := check.FromModule(mod)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	if err := r.ctx.Merge(newCtx); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s loaded %s\n", green("ok"), name)
}

// elaborateAndInfer parses input as a standalone expression against the
// REPL's current global context, elaborates it, and infers its type.
func (r *REPL) elaborateAndInfer(input string) (term.Term, term.Term, error) {
	expr, err := parser.ParseExprString("<repl>", input)
	if err != nil {
		return nil, nil, err
	}
	t, err := r.el.ElaborateExpr(expr)
	if err != nil {
		return nil, nil, err
	}
	cx := check.New(r.ctx)
	ty, err := cx.TypeInferTerm(t)
	if err != nil {
		return nil, nil, err
	}
	return t, ty, nil
}

func (r *REPL) evalLine(input string, out io.Writer) {
	t, ty, err := r.elaborateAndInfer(input)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	result, err := r.eval.Eval(t)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s : %s\n", result.String(), dim(ty.String()))
}
