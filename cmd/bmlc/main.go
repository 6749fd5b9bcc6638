// Command bmlc is the BML front-end tool: it tokenizes, parses, formats
// and checks BML scripts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bml-lang/bml/cmd/bmlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrDiagnostics) {
			fmt.Fprintf(os.Stderr, "bmlc: %v\n", err)
		}
		os.Exit(1)
	}
}
