package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/diag"
	"github.com/tml-lang/tmlc/internal/plugin"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and typecheck a TML program without producing a binary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerCheck")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a check capability: %w", plugin.NameCompiler, err)
	}
	check, ok := sym.(func(sourcePath string) *diag.Bag)
	if !ok {
		return fmt.Errorf("tml: %s CompilerCheck has the wrong signature", plugin.NameCompiler)
	}

	bag := check(args[0])
	if bag != nil && bag.HasErrors() {
		return newDiagError(bag)
	}
	return nil
}
