package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var (
	testFilter  string
	testCover   bool
	testBenches bool
)

var testCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Run TML unit tests",
	Long: `Discover and run test functions in a TML package, optionally
filtering by name, collecting coverage, or running benchmarks instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVar(&testFilter, "filter", "", "only run tests whose name matches this substring")
	testCmd.Flags().BoolVar(&testCover, "cover", false, "collect coverage")
	testCmd.Flags().BoolVar(&testBenches, "bench", false, "run benchmarks instead of tests")
}

func runTest(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerTest")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a test capability: %w", plugin.NameCompiler, err)
	}
	test, ok := sym.(func(path, filter string, cover, bench bool) (passed, failed int, err error))
	if !ok {
		return fmt.Errorf("tml: %s CompilerTest has the wrong signature", plugin.NameCompiler)
	}

	passed, failed, err := test(path, testFilter, testCover, testBenches)
	if err != nil {
		return err
	}
	fmt.Printf("%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("tml: %d test(s) failed", failed)
	}
	return nil
}
