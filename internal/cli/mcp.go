package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tml-lang/tmlc/internal/plugin"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing the toolchain to editor agents",
	Long: `Start a Model Context Protocol server over stdio, backed by the
tml_mcp plugin, so editor-integrated assistants can drive build/check/test.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("tml: locate executable: %w", err)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "tml")

	loader := plugin.NewLoader(filepath.Dir(exe), cacheDir)
	lp, err := loader.Load(plugin.NameMCP, &plugin.HostContext{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("tml: load %s: %w", plugin.NameMCP, err)
	}
	defer loader.UnloadAll()

	sym, err := lp.Symbol("MCPServe")
	if err != nil {
		return fmt.Errorf("tml: %s does not export an MCP server capability: %w", plugin.NameMCP, err)
	}
	serve, ok := sym.(func(ctx context.Context, stdin *os.File, stdout *os.File) error)
	if !ok {
		return fmt.Errorf("tml: %s MCPServe has the wrong signature", plugin.NameMCP)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return serve(ctx, os.Stdin, os.Stdout)
}
