// Command dotnetgate is the convention gate binary. It reads one edit event
// from stdin, prints diagnostics to stderr, and exits 0 to allow the edit or
// 2 to block it.
package main

import (
	"fmt"
	"os"

	"github.com/lextech/dotnetgate/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)
		// A block already rendered its report; only real failures need
		// the error printed.
		if code != cli.ExitBlock {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}
