package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/minilang/internal/diagnostics"
	"github.com/cwbudde/minilang/internal/parser"
)

var parseExprFlag string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed AST for a source file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseExprFlag, "expression", "e", "", "parse an inline expression instead of a file")
	rootCmd.AddCommand(parseCmd)
}

func runParse(c *cobra.Command, args []string) error {
	source, path, err := readSourceArg(args, parseExprFlag)
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Format(err, path, source, useColor()))
		os.Exit(1)
	}

	fmt.Print(program.String())
	return nil
}
