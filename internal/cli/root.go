// Package cli provides the command-line interface for color-mcp.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-tools-mcp/internal/version"
)

// NewRootCmd builds the command tree. Running the root command without a
// subcommand starts the stdio MCP server.
func NewRootCmd() *cobra.Command {
	opts := &serveOptions{}

	rootCmd := &cobra.Command{
		Use:   "color-mcp",
		Short: "Colour conversion and palette tools over MCP",
		Long: `color-mcp serves colour tools to MCP clients over stdin/stdout.

It converts between hex, RGB, HSL and CMYK, picks readable text colours,
samples and extracts colours from images, and keeps a workspace of projects
and palettes for the session.

Run without a subcommand to start the server. The convert and contrast
subcommands give the same answers at the terminal.`,
		Version:      version.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	opts.register(rootCmd)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newContrastCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
