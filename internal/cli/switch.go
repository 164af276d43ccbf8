package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/runtime"
)

// newSwitchCmd creates the switch command
func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch NAME BRANCH",
		Short: "Check out another branch in a project",
		Long: `Check out BRANCH, creating it from origin or from the current commit when it
does not exist locally. Projects with uncommitted changes are refused.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				name, branch := args[0], args[1]
				if err := ctx.Workspace.SwitchBranch(name, branch); err != nil {
					return err
				}
				ctx.Splog.Info("Switched %s to %s.", name, output.ColorBranchName(branch, true))
				return nil
			})
		},
	}
}

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "branch NAME",
		Short:             "Print the branch checked out in a project",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				branch, err := ctx.Workspace.CurrentBranch(args[0])
				if err != nil {
					return err
				}
				ctx.Splog.Info("%s", branch)
				return nil
			})
		},
	}
}
