// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/minilang/internal/diagnostics"
	"github.com/cwbudde/minilang/internal/interp"
	"github.com/cwbudde/minilang/internal/parser"
)

const prompt = ">> "

// Options configures a REPL session.
type Options struct {
	Color bool
}

// Start runs the read-eval-print loop: each line is run through the
// full lex/parse/eval pipeline against one persistent environment, and
// the result is printed in its type-tagged form. Errors print a
// diagnostic and the loop resumes with a cleared buffer.
func Start(in io.Reader, out io.Writer, opts Options) {
	scanner := bufio.NewScanner(in)
	ev := interp.New()
	ev.Env().Output = out

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		program, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintln(out, diagnostics.Format(err, "", line, opts.Color))
			continue
		}

		result, err := ev.Eval(program)
		if err != nil {
			if _, ok := err.(*interp.ExitError); ok {
				return
			}
			fmt.Fprintln(out, diagnostics.Format(err, "", line, opts.Color))
			continue
		}

		if result.Type() != interp.VoidType {
			fmt.Fprintln(out, result.Inspect())
		}
	}
}
