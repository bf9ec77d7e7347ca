package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Build and immediately execute a TML program",
	Long: `Build a TML source file to a temporary binary and run it, streaming
the program's stdout/stderr through.

Examples:
  tml run main.tml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerRun")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a run capability: %w", plugin.NameCompiler, err)
	}
	run, ok := sym.(func(sourcePath string, args []string, stdout, stderr *os.File) (exitCode int, err error))
	if !ok {
		return fmt.Errorf("tml: %s CompilerRun has the wrong signature", plugin.NameCompiler)
	}

	code, err := run(args[0], args[1:], os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
