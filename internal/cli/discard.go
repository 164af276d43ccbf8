package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/runtime"
	"mocotch.dev/mocotch/internal/utils"
)

// newDiscardCmd creates the discard command
func newDiscardCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "discard NAME",
		Short: "Throw away every uncommitted change in a project",
		Long: `Revert modified files to their committed content and delete untracked files.
Ignored files are kept. This cannot be undone.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				name := args[0]
				changes, err := ctx.Workspace.Status(name)
				if err != nil {
					return err
				}
				if !changes.HasChanges() {
					ctx.Splog.Info("Nothing to discard in %s.", name)
					return nil
				}

				if !yes {
					if !utils.IsInteractive() {
						return errors.New("refusing to discard changes without confirmation, pass --yes")
					}
					confirmed := false
					prompt := &survey.Confirm{
						Message: fmt.Sprintf("Discard %d modified and %d untracked files in %s?",
							len(changes.Modified), len(changes.Untracked), name),
						Default: false,
					}
					if err := survey.AskOne(prompt, &confirmed); err != nil {
						return fmt.Errorf("canceled")
					}
					if !confirmed {
						ctx.Splog.Info("Nothing discarded.")
						return nil
					}
				}

				if err := ctx.Workspace.Discard(name); err != nil {
					return err
				}
				ctx.Splog.Info("Discarded all changes in %s.", name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
