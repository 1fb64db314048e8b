package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bidscurator/internal/buildinfo"
	"github.com/dmitrijs2005/bidscurator/internal/common"
)

// NewRootCommand builds the command tree bound to a.
func (a *App) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Curate BIDS metadata on a neuroimaging data platform",
		Long: `bidscurator writes BIDS file names, folders and fieldmap intentions
into the file metadata of a data-management platform and attaches the
dataset level BIDS files (README, CHANGES, dataset_description.json,
participants/sessions/scans tables) to projects, subjects and sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/bidscurator/config.yaml)")
	pf.String("host", "", "platform host, e.g. fw.example.org")
	pf.String("api-key", "", "platform API key (host:key form also sets the host)")
	pf.Duration("timeout", 0, "per-request timeout, e.g. 30s")
	pf.String("log-format", "", "log format: text or json")
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "print debug logs")
	pf.BoolVar(&a.opts.dryRun, "dry-run", false, "read from the platform but do not write or upload")

	root.AddCommand(a.newMetaCommand(), a.newApplyCommand(), a.newSessionsCommand(), a.newVersionCommand())
	return root
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// needs neither configuration nor a platform connection
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(a.out)
		},
	}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts ...Option) int {
	a := NewApp(opts...)
	root := a.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.errOut, "%s: %v\n", common.AppName, err)
		return 1
	}
	return 0
}
