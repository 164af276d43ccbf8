package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/runtime"
)

// newRemoteCmd creates the remote command
func newRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remote NAME URL",
		Short:             "Configure origin for a project that has no remote",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Workspace.SetRemote(args[0], args[1]); err != nil {
					return err
				}
				ctx.Splog.Info("Set origin of %s to %s.", args[0], args[1])
				return nil
			})
		},
	}
}
