package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default tml.yaml in the current directory",
	Long: `Writes a default tml.yaml manifest. Unlike the other subcommands,
init never loads a plugin: it only needs internal/config.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing tml.yaml")
}

func runInit(_ *cobra.Command, _ []string) error {
	const path = "tml.yaml"

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("tml: %s already exists (use --force to overwrite)", path)
		}
	}

	m := config.DefaultManifest()
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("tml: marshal default manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("tml: write %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
