package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func runSession(lines ...string) string {
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	Start(in, &out, Options{Color: false})
	return out.String()
}

func TestReplEchoesInspectFormOfExpressions(t *testing.T) {
	transcript := runSession("1 + 2", `"hi"`, "3.5")
	snaps.MatchSnapshot(t, "arithmetic_and_literals", transcript)
}

func TestReplPersistsBindingsAcrossLines(t *testing.T) {
	transcript := runSession("x = 10", "x + 5")
	snaps.MatchSnapshot(t, "persisted_bindings", transcript)
}

func TestReplSuppressesVoidResults(t *testing.T) {
	transcript := runSession(`println("hello")`)
	snaps.MatchSnapshot(t, "void_result_suppressed", transcript)
}

func TestReplPrintsDiagnosticOnErrorAndKeepsRunning(t *testing.T) {
	transcript := runSession("missing_name", "1 + 1")
	snaps.MatchSnapshot(t, "error_then_recovery", transcript)
}

func TestReplExitStopsTheLoop(t *testing.T) {
	transcript := runSession("exit(0)", "1 + 1")
	if strings.Contains(transcript, "integer(2)") {
		t.Errorf("expected the loop to stop at exit(), but a later line was still evaluated: %q", transcript)
	}
}
