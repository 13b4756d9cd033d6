package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/pkg/format"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a file",
		Long:  `Parse a source file and print its syntax tree as an S-expression.`,
		Example: `  sharplint ast Program.cs
  sharplint ast --trivia Program.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := workspace.ReadDocument(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), format.Dump(doc.Tree.Root, trivia))
			return nil
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comments")

	return cmd
}
