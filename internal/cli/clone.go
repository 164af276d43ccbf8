package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/runtime"
)

// newCloneCmd creates the clone command
func newCloneCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "clone NAME URL",
		Short: "Clone a remote repository into a new project",
		Long: `Clone URL into a new project. The tracked branch is taken from the remote
when it exists there, otherwise it is created from the remote's default branch.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				name, url := args[0], args[1]
				if err := ctx.Workspace.Clone(cmd.Context(), name, url, branch); err != nil {
					return err
				}

				current, err := ctx.Workspace.CurrentBranch(name)
				if err != nil {
					return err
				}
				ctx.Splog.Info("Cloned %s into %s on %s.", url, output.ColorProjectName(name), output.ColorBranchName(current, true))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "branch to track (default from config)")
	return cmd
}
