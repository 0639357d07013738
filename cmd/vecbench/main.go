// Command vecbench benchmarks the Vec, SmallVec and EcoVec sequence
// containers and reports the results.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/vecbench/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
