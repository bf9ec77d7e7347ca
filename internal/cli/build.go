package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var (
	buildOutput   string
	buildOptLevel int
	buildTarget   string
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a TML program to a native binary",
	Long: `Compile a TML source file through checking, monomorphization, IR
generation, and native codegen/linking into an executable.

Examples:
  tml build main.tml
  tml build main.tml -o out/main --opt 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output binary path (default: <input> without its extension, or <input>.out if it has none)")
	buildCmd.Flags().IntVar(&buildOptLevel, "opt", 0, "optimization level (0-3)")
	buildCmd.Flags().StringVar(&buildTarget, "target", "", "target triple (default: host)")
}

func runBuild(_ *cobra.Command, args []string) error {
	lp, err := loadCompilerPlugin()
	if err != nil {
		return err
	}

	sym, err := lp.Symbol("CompilerBuild")
	if err != nil {
		return fmt.Errorf("tml: %s does not export a build capability: %w", plugin.NameCompiler, err)
	}
	build, ok := sym.(func(sourcePath, outputPath, targetTriple string, optLevel int) error)
	if !ok {
		return fmt.Errorf("tml: %s CompilerBuild has the wrong signature", plugin.NameCompiler)
	}

	out := buildOutput
	if out == "" {
		out = defaultOutputPath(args[0])
	}
	return build(args[0], out, buildTarget, buildOptLevel)
}
