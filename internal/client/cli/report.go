package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
)

type sessionRow struct {
	ID          string
	Subject     string
	Session     string
	BIDSSubject string
	BIDSSession string
}

// report prints failures and turns them into ErrFailures.
func (a *App) report(failures []bids.FailureRecord) error {
	if len(failures) == 0 {
		return nil
	}
	printFailures(a.out, failures)
	return ErrFailures
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	return t
}

func printFailures(w io.Writer, failures []bids.FailureRecord) {
	t := newTable(w, []string{"Subject", "Session", "Job", "Reason"})
	for _, f := range failures {
		reason := ""
		if f.Reason != nil {
			reason = f.Reason.Error()
		}
		t.Append([]string{f.Subject, f.Session, string(f.Job), reason})
	}
	t.Render()

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d operation(s) failed\n", len(failures))
}

func printSessions(w io.Writer, rows []sessionRow) {
	t := newTable(w, []string{"Subject", "Session", "BIDS subject", "BIDS session", "ID"})
	for _, r := range rows {
		t.Append([]string{r.Subject, r.Session, r.BIDSSubject, r.BIDSSession, r.ID})
	}
	t.Render()

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d session(s)\n", len(rows))
}
