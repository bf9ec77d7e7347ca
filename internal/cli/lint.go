package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/diag"
	"github.com/tml-lang/tmlc/internal/plugin"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Run lint checks over a TML source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerLint")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a lint capability: %w", plugin.NameCompiler, err)
	}
	lint, ok := sym.(func(sourcePath string) *diag.Bag)
	if !ok {
		return fmt.Errorf("tml: %s CompilerLint has the wrong signature", plugin.NameCompiler)
	}

	bag := lint(args[0])
	if bag == nil {
		return nil
	}
	fmt.Print(bag.Format(true))
	if bag.HasErrors() {
		return newDiagError(bag)
	}
	return nil
}
