package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/diag"
)

var explainCmd = &cobra.Command{
	Use:   "explain <code>",
	Short: "Print the canonical explanation for a diagnostic code",
	Long: `Looks up a diagnostic code like T057 or C019 in the local catalog
and prints its explanation. Runs entirely locally: explain never
loads a plugin.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(_ *cobra.Command, args []string) error {
	fmt.Println(diag.Explain(args[0]))
	return nil
}
