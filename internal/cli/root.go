// Package cli implements the command dispatcher of spec section 4.6:
// one cobra.Command per subcommand, grounded on cmd/dwscript/cmd's
// root/subcommand layout (cobra root + one file per command). Unlike
// the teacher, most subcommands here do not do their own work
// in-process: they load the compiler-capability plugin (internal/plugin)
// and delegate to it, since the actual parse/typecheck/codegen pipeline
// is meant to live behind that plugin boundary. init, explain and
// version are the commands that run entirely locally, as do --help and
// --version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tml",
	Short: "TML compiler toolchain",
	Long: `tml is the command-line entry point for the TML compiler toolchain:
build, run, check, and test TML programs, format and lint source, and
inspect diagnostics.

Most subcommands load the compiler plugin (see internal/plugin) and
delegate to it; init, explain and version run entirely locally.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Errors are formatted and exit-coded by Execute itself, not by
	// cobra's default "Error: ..." + usage dump.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// Execute runs the root command and returns the process exit code
// spec section 4.6 specifies: 0 on success, 1 on a toolchain/plugin
// error, or a diagnostic-derived code when the failure carries one.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "tml: %v\n", err)
	return exitCodeFor(err)
}
