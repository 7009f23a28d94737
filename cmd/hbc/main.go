// Command hbc is the command-line front end: check and evaluate source
// files, or drop into the interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hb-lang/hbc/internal/check"
	"github.com/hb-lang/hbc/internal/config"
	"github.com/hb-lang/hbc/internal/diag"
	"github.com/hb-lang/hbc/internal/kernel"
	"github.com/hb-lang/hbc/internal/loader"
	"github.com/hb-lang/hbc/internal/repl"
	"github.com/hb-lang/hbc/internal/tyctxt"
)

// version is set via -ldflags at release build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspacePath string

	root := &cobra.Command{
		Use:   "hbc",
		Short: "hbc is a small dependently-typed kernel: type checker, evaluator, and REPL",
	}
	root.PersistentFlags().StringVar(&workspacePath, "workspace", "", "path to hbc.yaml (defaults to the current directory)")

	loadWorkspace := func() *config.Workspace {
		if workspacePath == "" {
			return config.Default()
		}
		ws, err := config.Load(workspacePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hbc: reading workspace: %v\n", err)
			os.Exit(1)
		}
		return ws
	}

	root.AddCommand(newCheckCmd(loadWorkspace))
	root.AddCommand(newEvalCmd(loadWorkspace))
	root.AddCommand(newReplCmd(loadWorkspace))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the hbc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func newCheckCmd(loadWorkspace func() *config.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "check <module>",
		Short: "load a qualified module and type check every definition in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadAndCheck(loadWorkspace(), args[0]); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func newEvalCmd(loadWorkspace func() *config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <module>",
		Short: "load a qualified module, check it, and evaluate its main definition to normal form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadAndCheck(loadWorkspace(), args[0])
			if err != nil {
				return reportErr(cmd, err)
			}
			// The loader qualifies every declaration under the module's
			// name, so the module's main is stored as "<module>.main".
			body, err := ctx.GetMainBody()
			if def, ok := ctx.Definitions[loader.CanonicalID(args[0])+".main"]; err != nil && ok {
				body, err = def.Body, nil
			}
			if err != nil {
				return reportErr(cmd, err)
			}
			ev := kernel.New(ctx)
			result, err := ev.Eval(body)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
	return cmd
}

func newReplCmd(loadWorkspace func() *config.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := repl.New(version, loadWorkspace())
			r.Start(os.Stdin, os.Stdout)
			return nil
		},
	}
}

func loadAndCheck(ws *config.Workspace, qualified string) (*tyctxt.TyCtxt, error) {
	ld := loader.New(ws)
	mod, err := ld.Load(qualified)
	if err != nil {
		return nil, err
	}
	return check.FromModule(mod)
}

func reportErr(cmd *cobra.Command, err error) error {
	if rep, ok := diag.AsReport(err); ok {
		fmt.Fprintln(cmd.OutOrStderr(), rep.Message)
		return err
	}
	fmt.Fprintln(cmd.OutOrStderr(), err.Error())
	return err
}
