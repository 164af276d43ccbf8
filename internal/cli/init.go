package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init NAME",
		Short: "Create a new project with its own repository",
		Long: `Create a new project directory with a fresh repository. The repository
starts with a placeholder commit and the tracked branch is created from it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				name := args[0]
				if err := ctx.Workspace.Create(name, branch); err != nil {
					return err
				}

				current, err := ctx.Workspace.CurrentBranch(name)
				if err != nil {
					return err
				}
				ctx.Splog.Info("Created project %s on %s.", output.ColorProjectName(name), output.ColorBranchName(current, true))
				ctx.Splog.Tip("Add a remote with `mocotch remote %s URL` to share it.", name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "branch to track (default from config)")
	return cmd
}
