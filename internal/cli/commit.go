package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/runtime"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		message string
		noPush  bool
	)

	cmd := &cobra.Command{
		Use:   "commit NAME",
		Short: "Commit every change in a project and push it",
		Long: `Stage every change in the project, untracked files included, and commit it
under the anonymous identity. The commit is pushed to origin afterwards unless
--no-push is given or the project has no remote.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				name := args[0]
				if err := ctx.Workspace.CommitAndPush(cmd.Context(), name, message, !noPush); err != nil {
					return err
				}
				if noPush {
					ctx.Splog.Info("Committed %s.", name)
				} else {
					ctx.Splog.Info("Committed and pushed %s.", name)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "do not push after committing")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
