package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/config"
	"github.com/leapstack-labs/sharplint/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin and stdout.

The server publishes diagnostics for open C# documents and offers their
fixes as code actions. Rules are configured by the sharplint.yaml at the
root of the workspace the editor opens. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := lsp.NewServerWithLogger(cmd.InOrStdin(), cmd.OutOrStdout(), config.GetLogger(cmd.Context()))
			srv.SetVersion(version)
			return srv.Run(cmd.Context())
		},
	}
}
