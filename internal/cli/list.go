package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/runtime"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all projects and their checked out branch",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				projects, err := ctx.Workspace.List()
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					ctx.Splog.Info("No projects in %s.", ctx.Workspace.Root())
					return nil
				}
				for _, p := range projects {
					remote := output.ColorDim("local only")
					if p.Remote != "" {
						remote = p.Remote
						if p.Upstream != "" {
							remote += output.ColorDim(" (tracking " + p.Upstream + ")")
						}
					}
					ctx.Splog.Info("%s %s %s", output.ColorProjectName(p.Name), output.ColorBranchName(p.Branch, false), remote)
				}
				return nil
			})
		},
	}
}
