package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed AST of a TML source file",
	Long:  `Diagnostic command: parses a file and prints its AST, for debugging the parser plugin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerParse")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a parse capability: %w", plugin.NameCompiler, err)
	}
	parse, ok := sym.(func(sourcePath string) (string, error))
	if !ok {
		return fmt.Errorf("tml: %s CompilerParse has the wrong signature", plugin.NameCompiler)
	}

	dump, err := parse(args[0])
	if err != nil {
		return err
	}
	fmt.Println(dump)
	return nil
}
