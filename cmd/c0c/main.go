// Command c0c compiles C0 source files for a stack-based virtual
// machine, emitting either a textual assembly listing or the binary
// module format.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/c0c/cmd/c0c/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "c0c: %v\n", err)
		os.Exit(2)
	}
}
