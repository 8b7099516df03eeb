package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cwbudde/minilang/internal/diagnostics"
	"github.com/cwbudde/minilang/internal/interp"
	"github.com/cwbudde/minilang/internal/parser"
	"github.com/cwbudde/minilang/internal/repl"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "minilang [file]",
	Short:   "A tree-walking interpreter for the Language",
	Long:    "minilang evaluates a source file, or starts an interactive REPL when given no arguments.",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI-colored diagnostics")
	rootCmd.SetVersionTemplate("minilang {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(c *cobra.Command, args []string) error {
	if len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout, repl.Options{Color: useColor()})
		return nil
	}
	return runFile(args[0])
}

func runFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read %s: %v\n", path, err)
		os.Exit(1)
	}
	source := string(data)

	program, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Format(err, path, source, useColor()))
		os.Exit(1)
	}

	ev := interp.New()
	result, err := ev.Eval(program)
	if err != nil {
		if exitErr, ok := err.(*interp.ExitError); ok {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, diagnostics.Format(err, path, source, useColor()))
		os.Exit(1)
	}

	if result.Type() != interp.VoidType {
		fmt.Fprintln(os.Stdout, result.String())
	}
	return nil
}

// useColor follows the platform default (ANSI on non-Windows, plain on
// Windows) unless the user explicitly opted out with --no-color.
func useColor() bool {
	if noColor {
		return false
	}
	return runtime.GOOS != "windows"
}
