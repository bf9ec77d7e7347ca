package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream produced by lexing a TML source file",
	Long:  `Diagnostic command: lexes a file and prints one line per token, for debugging the lexer plugin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerLex")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a lex capability: %w", plugin.NameCompiler, err)
	}
	lex, ok := sym.(func(sourcePath string) ([]string, error))
	if !ok {
		return fmt.Errorf("tml: %s CompilerLex has the wrong signature", plugin.NameCompiler)
	}

	tokens, err := lex(args[0])
	if err != nil {
		return err
	}
	for _, t := range tokens {
		fmt.Println(t)
	}
	return nil
}
