package services

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
	"github.com/dmitrijs2005/bidscurator/internal/client/client"
	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/logging"
)

// LabelService applies a naming mapping to the acquisitions of one session.
//
// Apply runs two passes. The naming pass writes info.BIDS for every nifti,
// bval and bvec file of the first acquisition of each entry. The intention
// pass then writes info.IntendedFor for fieldmap files whose record declares
// target folders, using the records written by the naming pass.
//
// Per-entry problems are returned as failure records. The returned error is
// non-nil only when the subject/session labels cannot be determined.
type LabelService interface {
	Apply(ctx context.Context, m *bids.Mapping) ([]bids.FailureRecord, error)
}

type labelService struct {
	client client.Client
	log    logging.Logger
}

func NewLabelService(c client.Client, log logging.Logger) LabelService {
	return &labelService{client: c, log: log}
}

// labelRun is the state of one Apply call. Acquisitions are fetched at most
// once and kept in first-touched order; the intention pass only sees them.
// A failed fetch is remembered and not retried.
type labelRun struct {
	client client.Client
	log    logging.Logger

	subject string
	session string

	acqs   map[string]*models.Acquisition
	failed map[string]error
	order  []string
	queued []bids.Entry
	seen   map[int]bool

	failures []bids.FailureRecord
}

func (l *labelService) Apply(ctx context.Context, m *bids.Mapping) ([]bids.FailureRecord, error) {
	run := &labelRun{
		client: l.client,
		log:    l.log,
		acqs:   make(map[string]*models.Acquisition),
		failed: make(map[string]error),
		seen:   make(map[int]bool),
	}

	if err := run.resolveLabels(ctx, m); err != nil {
		return nil, err
	}
	run.log = l.log.With("subject", run.subject, "session", run.session)

	run.log.Info(ctx, "updating BIDS info", "entries", len(m.Entries))
	for i, e := range m.Entries {
		run.name(ctx, i, e)
	}

	run.log.Info(ctx, "updating fieldmap intentions", "fieldmaps", len(run.queued))
	for _, e := range run.queued {
		run.intend(ctx, e)
	}

	return run.failures, nil
}

// resolveLabels takes the overrides of m, falling back to the labels of the
// parents of the first referenced acquisition that can be fetched. Fetch
// failures are cached and reported by the naming pass of their entry.
func (r *labelRun) resolveLabels(ctx context.Context, m *bids.Mapping) error {
	r.subject, r.session = m.Subject, m.Session
	if r.subject != "" && r.session != "" {
		return nil
	}

	var acq *models.Acquisition
	var lastErr error
	for _, e := range m.Entries {
		if len(e.Acquisitions) == 0 {
			continue
		}
		a, err := r.acquisition(ctx, e.Acquisitions[0])
		if err != nil {
			r.log.Warn(ctx, "cannot read labels from acquisition", "acquisition", e.Acquisitions[0], "err", err)
			lastErr = err
			continue
		}
		acq = a
		break
	}
	if acq == nil {
		if lastErr != nil {
			return fmt.Errorf("resolve labels: no referenced acquisition could be fetched: %w", lastErr)
		}
		return errors.New("mapping references no acquisitions and sets no subject/session labels")
	}

	if r.subject == "" {
		sub, err := r.client.GetSubject(ctx, acq.Parents.Subject)
		if err != nil {
			return fmt.Errorf("resolve subject label: %w", err)
		}
		r.subject = sub.Label
	}
	if r.session == "" {
		ses, err := r.client.GetSession(ctx, acq.Parents.Session)
		if err != nil {
			return fmt.Errorf("resolve session label: %w", err)
		}
		r.session = ses.Label
	}
	return nil
}

func (r *labelRun) acquisition(ctx context.Context, id string) (*models.Acquisition, error) {
	if a, ok := r.acqs[id]; ok {
		return a, nil
	}
	if err, ok := r.failed[id]; ok {
		return nil, err
	}
	a, err := r.client.GetAcquisition(ctx, id)
	if err != nil {
		r.failed[id] = err
		return nil, err
	}
	r.acqs[id] = a
	r.order = append(r.order, id)
	return a, nil
}

func (r *labelRun) fail(job bids.Job, err error) {
	r.failures = append(r.failures, bids.FailureRecord{
		Subject: r.subject,
		Session: r.session,
		Job:     job,
		Reason:  err,
	})
}

// name is the naming pass for entry i.
func (r *labelRun) name(ctx context.Context, i int, e bids.Entry) {
	if len(e.Acquisitions) == 0 {
		r.log.Debug(ctx, "skip entry without acquisitions", "template", e.Key.Template)
		return
	}

	comps, err := e.Key.Format(r.subject, r.session)
	if err != nil {
		r.log.Warn(ctx, "cannot format naming template", "template", e.Key.Template, "err", err)
		r.fail(bids.JobFormatName, err)
		return
	}

	acq, err := r.acquisition(ctx, e.Acquisitions[0])
	if err != nil {
		r.log.Error(ctx, "could not query acquisition", "acquisition", e.Acquisitions[0], "err", err)
		r.fail(bids.JobQueryFiles, fmt.Errorf("acquisition %s: %w", e.Acquisitions[0], err))
		return
	}

	for _, f := range acq.Files {
		if !bids.IsCuratedType(f.Type) {
			continue
		}

		rec, err := r.record(ctx, comps, e.Key, f)
		if err != nil {
			r.log.Error(ctx, "could not set BIDS data", "file", f.Name, "err", err)
			r.fail(bids.JobQueryFiles, fmt.Errorf("file %s: %w", f.Name, err))
			continue
		}
		if rec == nil {
			continue
		}

		patch := map[string]any{bids.InfoKey: rec.ToMap()}
		if err := r.client.UpdateFileInfo(ctx, acq.ID, f.Name, patch); err != nil {
			r.log.Error(ctx, "unable to update file", "file", f.Name, "err", err)
			r.fail(bids.JobUpdateFile, fmt.Errorf("file %s: %w", f.Name, err))
			continue
		}
		f.SetInfo(patch)
		r.log.Debug(ctx, "updated file", "file", f.Name, "filename", rec.Filename, "path", rec.Path)

		if len(rec.IntendedFor) > 0 && !r.seen[i] {
			r.seen[i] = true
			r.queued = append(r.queued, e)
		}
	}
}

// record builds the curated record of f. A nil record with a nil error
// means the file is marked not applicable and is left alone.
func (r *labelRun) record(ctx context.Context, comps bids.Components, key bids.NamingKey, f *models.File) (*bids.Record, error) {
	filename, ok := key.Filename(comps, f.Type, f.Name)
	if !ok {
		return nil, fmt.Errorf("no BIDS extension for file type %q", f.Type)
	}

	rec, state, err := bids.FromInfo(f.Info)
	if err != nil {
		return nil, err
	}

	switch state {
	case bids.StateNotApplicable:
		r.log.Debug(ctx, "skip file marked not applicable", "file", f.Name)
		return nil, nil
	case bids.StateAbsent:
		r.log.Warn(ctx, "populating empty BIDS record, curation has not been run", "file", f.Name)
		rec, err = bids.DefaultRecord(comps.Folder, comps.Name)
		if errors.Is(err, bids.ErrFieldmapWithoutFilename) {
			r.log.Warn(ctx, err.Error(), "file", f.Name)
		}
	}

	rec.Filename = filename
	rec.Folder = comps.Folder
	rec.Path = comps.Path()
	rec.ErrorMessage = ""
	rec.Valid = true

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// intend is the intention pass for a queued fieldmap entry.
func (r *labelRun) intend(ctx context.Context, e bids.Entry) {
	// cached copy: it holds the records the naming pass just wrote
	acq := r.acqs[e.Acquisitions[0]]

	comps, err := e.Key.Format(r.subject, r.session)
	if err != nil {
		r.fail(bids.JobFormatName, err)
		return
	}

	for _, f := range acq.Files {
		if !bids.IsCuratedType(f.Type) {
			continue
		}
		rec, state, err := bids.FromInfo(f.Info)
		if err != nil || state != bids.StatePresent || len(rec.IntendedFor) == 0 {
			continue
		}

		targets := r.targets(f, rec.IntendedFor, comps.Ses)
		r.log.Debug(ctx, "resolved intentions", "file", f.Name, "intent", rec.IntendedFor.Folders(), "targets", targets)

		patch := map[string]any{"IntendedFor": targets}
		if err := r.client.UpdateFileInfo(ctx, acq.ID, f.Name, patch); err != nil {
			r.log.Error(ctx, "unable to update intentions", "file", f.Name, "err", err)
			r.fail(bids.JobUpdateIntentions, fmt.Errorf("file %s: %w", f.Name, err))
			continue
		}
		f.SetInfo(patch)
	}
}

// targets lists the session-relative paths of the image files, other than
// self, whose folder is in intent. The result is never nil.
func (r *labelRun) targets(self *models.File, intent bids.Intent, sesDir string) []string {
	out := []string{}
	for _, id := range r.order {
		for _, g := range r.acqs[id].Files {
			if g == self || !bids.IsCuratedType(g.Type) {
				continue
			}
			rec, state, err := bids.FromInfo(g.Info)
			if err != nil || state != bids.StatePresent {
				continue
			}
			if intent.Has(rec.Folder) && rec.IsImage() {
				out = append(out, path.Join(sesDir, rec.Folder, rec.Filename))
			}
		}
	}
	return out
}
