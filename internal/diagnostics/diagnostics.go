// Package diagnostics renders lexer/parser/evaluator errors for the CLI
// and the REPL.
//
// It is named diagnostics rather than errors (the name the teacher uses
// for the equivalent package) purely to avoid a same-file import
// collision with the standard library errors package in call sites that
// need both.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minilang/internal/token"
)

// positioned is implemented by lexer.Error and parser.Error.
type positioned interface {
	Position() token.Position
}

// Marker sentinels embedded in error message templates, substituted at
// render time. These are not invented for this implementation: they
// survive verbatim from the diagnostic templates of the system this was
// distilled from (e.g. "Object '&g&*%s&-&r' not found in current
// scope").
const (
	markerPathOpen  = "&_&c"
	markerGreenOpen = "&g&*"
	markerClose     = "&-&r"
	markerPath      = "{{path}}"
)

const (
	ansiReset    = "\033[0m"
	ansiBold     = "\033[1m"
	ansiGreen    = "\033[32m"
	ansiBoldRed  = "\033[1;31m"
	ansiBoldCyan = "\033[1;36m"
)

// Format renders err as a user-facing diagnostic. path is the source
// file name (empty for REPL input); source is the full source text, used
// to print the offending line with a caret. When color is false all
// ANSI escapes and their markers are stripped instead of substituted.
func Format(err error, path, source string, color bool) string {
	msg := substituteMarkers(err.Error(), path, color)

	pe, ok := err.(positioned)
	if !ok || !pe.Position().IsValid() {
		return msg
	}
	pos := pe.Position()

	line := sourceLine(source, pos.Line)
	if line == "" {
		return msg
	}

	var b strings.Builder
	header := fmt.Sprintf("%4d | ", pos.Line)
	b.WriteString(header)
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", len(header)+pos.Column))
	if color {
		b.WriteString(ansiBoldRed)
	}
	b.WriteString("^")
	if color {
		b.WriteString(ansiReset)
	}
	b.WriteString("\n")
	b.WriteString(msg)
	return b.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// substituteMarkers replaces the marker protocol with ANSI escapes (or
// strips it entirely when color is false).
func substituteMarkers(msg, path string, color bool) string {
	msg = strings.ReplaceAll(msg, markerPath, path)

	if !color {
		msg = strings.ReplaceAll(msg, markerPathOpen, "")
		msg = strings.ReplaceAll(msg, markerGreenOpen, "")
		msg = strings.ReplaceAll(msg, markerClose, "")
		return msg
	}

	msg = strings.ReplaceAll(msg, markerPathOpen, ansiBoldCyan)
	msg = strings.ReplaceAll(msg, markerGreenOpen, ansiGreen+ansiBold)
	msg = strings.ReplaceAll(msg, markerClose, ansiReset)
	return msg
}
