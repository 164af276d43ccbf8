// Package cli implements the mocotch command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mocotch.dev/mocotch/internal/cli/common"
	"mocotch.dev/mocotch/internal/config"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mocotch",
		Short: "Manage versioned RPG projects, each in its own git repository",
		Long: `mocotch keeps every project in its own git repository below a projects
directory. Changes are recorded under an anonymous identity, synchronized
with an optional origin remote and can be discarded or moved to another branch.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(runtime.WithContext(cmd.Context(), rc))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if rc, err := runtime.GetContext(cmd.Context()); err == nil {
				return rc.Splog.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.config/mocotch/config.yaml)")
	flags.String("projects-dir", "", "directory holding all projects (default ./projects)")
	flags.String("log-file", "", fmt.Sprintf("write a rotating debug log to this file (e.g. %s)", output.DefaultLogFilePath()))
	flags.Bool("debug", false, "show debug output")
	flags.BoolP("quiet", "q", false, "suppress all output except errors")

	rootCmd.AddCommand(
		newInitCmd(),
		newCloneCmd(),
		newListCmd(),
		newStatusCmd(),
		newCommitCmd(),
		newSyncCmd(),
		newPushCmd(),
		newDiscardCmd(),
		newSwitchCmd(),
		newBranchCmd(),
		newRemoteCmd(),
	)

	return rootCmd
}

// loadRuntime reads configuration from the config file, MOCOTCH_* variables
// and the persistent flags, then builds the logger and workspace
func loadRuntime(cmd *cobra.Command) (*runtime.Context, error) {
	flags := cmd.Root().PersistentFlags()

	cfgFile, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	v := config.New(cfgFile)
	for key, flag := range map[string]string{
		"projects_dir": "projects-dir",
		"log.file":     "log-file",
		"log.debug":    "debug",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	if err := config.Read(v); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	splog, err := output.NewSplogWithOptions(output.Options{
		Writer:     cmd.OutOrStdout(),
		Debug:      cfg.Log.Debug,
		LogFile:    cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	splog.SetQuiet(quiet)

	return runtime.NewContext(cfg, splog), nil
}

// completeProjects completes the project name argument. Completion runs
// without the persistent pre-run hook, so the runtime is loaded here.
func completeProjects(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rc, err := runtime.GetContext(cmd.Context())
	if err != nil {
		if rc, err = loadRuntime(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer func() { _ = rc.Splog.Close() }()
	}
	names, err := common.ProjectNames(rc)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
