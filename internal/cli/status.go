package cli

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/project"
	"mocotch.dev/mocotch/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:               "status [NAME]",
		Short:             "Show modified and untracked files",
		Long:              `Show the modified and untracked files of one project, or of every project when no name is given or --all is set.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if all || len(args) == 0 {
					statuses, err := ctx.Workspace.StatusAll()
					if err != nil {
						return err
					}
					if len(statuses) == 0 {
						ctx.Splog.Info("No projects in %s.", ctx.Workspace.Root())
					}
					for i, st := range statuses {
						if i > 0 {
							ctx.Splog.Newline()
						}
						if st.Err != nil {
							ctx.Splog.Warn("%s: %v", st.Name, st.Err)
							continue
						}
						printChanges(ctx, st.Name, st.Branch, st.Changes)
					}
					return nil
				}

				name := args[0]
				branch, err := ctx.Workspace.CurrentBranch(name)
				if err != nil {
					return err
				}
				changes, err := ctx.Workspace.Status(name)
				if err != nil {
					return err
				}
				printChanges(ctx, name, branch, changes)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "show every project")
	return cmd
}

func printChanges(ctx *runtime.Context, name, branch string, changes project.ChangeSet) {
	header := output.ColorProjectName(name) + " " + output.ColorBranchName(branch, false)
	if !changes.HasChanges() {
		ctx.Splog.Info("%s %s", header, output.ColorClean("clean"))
		return
	}
	ctx.Splog.Info("%s", header)
	for _, path := range changes.Modified {
		ctx.Splog.Info("  %s", output.ColorModified(path))
	}
	for _, path := range changes.Untracked {
		ctx.Splog.Info("  %s", output.ColorUntracked(path))
	}
}
