// Package common provides shared helper functions for CLI commands.
package common

import (
	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	return fn(ctx)
}

// ProjectNames returns the names of every project in the workspace
func ProjectNames(ctx *runtime.Context) ([]string, error) {
	projects, err := ctx.Workspace.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names, nil
}
