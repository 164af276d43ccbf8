package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "sync NAME",
		Aliases:           []string{"pull"},
		Short:             "Fast-forward a project from origin",
		Long:              `Pull the checked out branch from origin. Diverged history is reported, never merged.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Workspace.Sync(cmd.Context(), args[0]); err != nil {
					return err
				}
				ctx.Splog.Info("Synced %s.", args[0])
				return nil
			})
		},
	}
}

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "push NAME",
		Short:             "Push the checked out branch to origin",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Workspace.Push(cmd.Context(), args[0]); err != nil {
					return err
				}
				ctx.Splog.Info("Pushed %s.", args[0])
				return nil
			})
		},
	}
}
