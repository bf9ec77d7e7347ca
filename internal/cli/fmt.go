package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Format a TML source file",
	Long: `Reformat a TML source file to the canonical style. Prints the
result to stdout unless --write is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite the file in place instead of printing to stdout")
}

func runFmt(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerFormat")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a format capability: %w", plugin.NameCompiler, err)
	}
	format, ok := sym.(func(sourcePath string, write bool) (string, error))
	if !ok {
		return fmt.Errorf("tml: %s CompilerFormat has the wrong signature", plugin.NameCompiler)
	}

	out, err := format(args[0], fmtWrite)
	if err != nil {
		return err
	}
	if !fmtWrite {
		fmt.Print(out)
	}
	return nil
}
