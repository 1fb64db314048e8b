package bids

import "fmt"

// Job names the step a FailureRecord comes from.
type Job string

const (
	JobQueryFiles       Job = "query files"
	JobUpdateFile       Job = "update file"
	JobUpdateIntentions Job = "update intentions"
	JobFormatName       Job = "format name"
	JobAttachFile       Job = "attach file"
)

// FailureRecord is a non-fatal failure collected while processing a batch.
type FailureRecord struct {
	Subject string
	Session string
	Job     Job
	Reason  error
}

func (f FailureRecord) String() string {
	return fmt.Sprintf("%s/%s %s: %v", f.Subject, f.Session, f.Job, f.Reason)
}
