// Command tml is the TML toolchain entry point: a thin wrapper around
// internal/cli so the exit code it returns is the one spec section 4.6
// describes, not go's default of 1 on any error.
package main

import (
	"os"

	"github.com/tml-lang/tmlc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
