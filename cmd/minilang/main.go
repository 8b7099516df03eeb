// Command minilang is the Language's interpreter: given a file it
// evaluates it, given no arguments it starts an interactive REPL.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cwbudde/minilang/cmd/minilang/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("minilang: unexpected internal error: %v", r)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
