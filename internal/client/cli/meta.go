package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
)

type metaOptions struct {
	project  string
	subjects []string
	sessions []string

	autogenParticipants bool
	participantsMeta    string
	autogenSessions     bool
	sessionsMeta        string

	scans              string
	datasetDescription string
	code               []string
	readme             string
	changes            string
}

func (a *App) newMetaCommand() *cobra.Command {
	var o metaOptions

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Attach BIDS dataset files to the project, subjects and sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMeta(cmd, &o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.project, "project", "", "project label")
	f.StringArrayVar(&o.subjects, "subject", nil, "subject labels to include (repeatable)")
	f.StringArrayVar(&o.sessions, "session", nil, "session labels to include (repeatable)")
	f.BoolVar(&o.autogenParticipants, "autogen-participants-meta", false, "generate participants.tsv")
	f.StringVar(&o.participantsMeta, "upload-participants-meta", "", "participants.tsv to attach to the project")
	f.BoolVar(&o.autogenSessions, "autogen-sessions-meta", false, "generate per-subject sessions.tsv")
	f.StringVar(&o.sessionsMeta, "upload-sessions-meta", "", "sessions.tsv to attach to each subject")
	f.StringVar(&o.scans, "scans", "", "scans.tsv to attach to each session")
	f.StringVar(&o.datasetDescription, "dataset-description", "", "dataset_description.json to attach to the project")
	f.StringArrayVar(&o.code, "code", nil, "code files to attach to the project (repeatable)")
	f.StringVar(&o.readme, "readme", "", "README to attach to the project")
	f.StringVar(&o.changes, "changes", "", "CHANGES to attach to the project")

	_ = cmd.MarkFlagRequired("project")
	cmd.MarkFlagsMutuallyExclusive("autogen-participants-meta", "upload-participants-meta")
	cmd.MarkFlagsMutuallyExclusive("autogen-sessions-meta", "upload-sessions-meta")
	return cmd
}

// projectFiles lists the project level attachments in upload order.
func (o *metaOptions) projectFiles() []string {
	var paths []string
	for _, p := range []string{o.readme, o.changes} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, o.code...)
	if o.datasetDescription != "" {
		paths = append(paths, o.datasetDescription)
	}
	if o.participantsMeta != "" {
		paths = append(paths, o.participantsMeta)
	}
	return paths
}

func (a *App) runMeta(cmd *cobra.Command, o *metaOptions) error {
	ctx := cmd.Context()

	sessions, err := a.sessionService.Initialize(ctx, o.project, o.subjects, o.sessions)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		a.log.Error(ctx, "No sessions found!", "project", o.project)
		return ErrNoSessions
	}

	var failures []bids.FailureRecord
	failures = append(failures, a.metaService.AttachProjectFiles(ctx, sessions, o.projectFiles())...)

	if o.autogenParticipants {
		a.metaService.AutogenParticipants(ctx, sessions)
	}

	if o.autogenSessions {
		a.metaService.AutogenSessions(ctx, sessions)
	} else if o.sessionsMeta != "" {
		failures = append(failures, a.metaService.AttachSubjectFiles(ctx, sessions, o.sessionsMeta)...)
	}

	if o.scans != "" {
		failures = append(failures, a.metaService.AttachSessionFiles(ctx, sessions, o.scans)...)
	}

	return a.report(failures)
}
