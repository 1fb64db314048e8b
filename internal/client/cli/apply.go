package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
)

type applyOptions struct {
	mapping      string
	subjectLabel string
	sessionLabel string
}

func (a *App) newApplyCommand() *cobra.Command {
	var o applyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Write BIDS records and fieldmap intentions from a naming mapping",
		Long: `apply reads a naming mapping (YAML or JSON) that pairs BIDS naming
templates with acquisition ids, writes info.BIDS on every nifti, bval and
bvec file of those acquisitions and then fills info.IntendedFor of the
fieldmaps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runApply(cmd, &o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.mapping, "mapping", "m", "", "naming mapping file")
	f.StringVar(&o.subjectLabel, "subject-label", "", "override the subject label")
	f.StringVar(&o.sessionLabel, "session-label", "", "override the session label")
	_ = cmd.MarkFlagRequired("mapping")
	return cmd
}

func (a *App) runApply(cmd *cobra.Command, o *applyOptions) error {
	ctx := cmd.Context()

	f, err := os.Open(o.mapping)
	if err != nil {
		return fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	m, err := bids.LoadMapping(f)
	if err != nil {
		return err
	}
	if o.subjectLabel != "" {
		m.Subject = o.subjectLabel
	}
	if o.sessionLabel != "" {
		m.Session = o.sessionLabel
	}

	failures, err := a.labelService.Apply(ctx, m)
	if err != nil {
		return err
	}
	return a.report(failures)
}
