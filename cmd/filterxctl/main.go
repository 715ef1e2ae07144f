// Command filterxctl is a small driver for exercising the FilterX
// evaluator outside of a host daemon: it builds one of a handful of
// named demonstration expression trees (standing in for output a real
// external parser would hand the core, per spec.md §6) and evaluates it
// against a JSON message fixture.
package main

import (
	"fmt"
	"os"

	"github.com/streamforge/filterx/cmd/filterxctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
