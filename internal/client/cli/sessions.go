package cli

import (
	"github.com/spf13/cobra"
)

type sessionsOptions struct {
	project  string
	subjects []string
	sessions []string
}

func (a *App) newSessionsCommand() *cobra.Command {
	var o sessionsOptions

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List the selected sessions with their BIDS labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSessions(cmd, &o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.project, "project", "", "project label")
	f.StringArrayVar(&o.subjects, "subject", nil, "subject labels to include (repeatable)")
	f.StringArrayVar(&o.sessions, "session", nil, "session labels to include (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func (a *App) runSessions(cmd *cobra.Command, o *sessionsOptions) error {
	ctx := cmd.Context()

	sessions, err := a.sessionService.Initialize(ctx, o.project, o.subjects, o.sessions)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		a.log.Error(ctx, "No sessions found!", "project", o.project)
		return ErrNoSessions
	}

	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		row := sessionRow{ID: s.ID, Subject: s.Subject.Label, Session: s.Label}
		if l, ok, err := a.sessionService.BIDSLabel(ctx, s, "sub"); err != nil {
			a.log.Warn(ctx, "cannot infer BIDS subject label", "session", s.Label, "err", err)
		} else if ok {
			row.BIDSSubject = l
		}
		if l, ok, err := a.sessionService.BIDSLabel(ctx, s, "ses"); err != nil {
			a.log.Warn(ctx, "cannot infer BIDS session label", "session", s.Label, "err", err)
		} else if ok {
			row.BIDSSession = l
		}
		rows = append(rows, row)
	}

	printSessions(a.out, rows)
	return nil
}
