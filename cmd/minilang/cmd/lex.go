package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/minilang/internal/diagnostics"
	"github.com/cwbudde/minilang/internal/lexer"
)

var (
	lexShowPos  bool
	lexExprFlag string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream for a source file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "print each token's source position")
	lexCmd.Flags().StringVarP(&lexExprFlag, "expression", "e", "", "lex an inline expression instead of a file")
	rootCmd.AddCommand(lexCmd)
}

func runLex(c *cobra.Command, args []string) error {
	source, path, err := readSourceArg(args, lexExprFlag)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Format(err, path, source, useColor()))
		os.Exit(1)
	}

	for _, tok := range toks {
		if lexShowPos {
			fmt.Printf("%-12s %-20q @ %s\n", tok.Type, tok.Literal, tok.Start)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Literal)
		}
	}
	return nil
}

func readSourceArg(args []string, inlineExpr string) (source, path string, err error) {
	if inlineExpr != "" {
		return inlineExpr, "", nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("expected a file path or --expression")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("could not read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}
