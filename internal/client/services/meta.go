package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
	"github.com/dmitrijs2005/bidscurator/internal/client/client"
	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/common"
	"github.com/dmitrijs2005/bidscurator/internal/filex"
	"github.com/dmitrijs2005/bidscurator/internal/logging"
)

// MetaService attaches dataset sidecar files to the containers of a set of
// sessions.
//
// Contract:
//   - AttachProjectFiles: each path to the project of the first session.
//   - AttachSubjectFiles: path to every distinct subject of the sessions.
//   - AttachSessionFiles: path to every session.
//   - AutogenParticipants/AutogenSessions: table generation is not
//     implemented; each call logs an error and changes nothing.
//
// A missing local file or a failed upload yields an "attach file" failure
// and the remaining attachments are still tried.
type MetaService interface {
	AttachProjectFiles(ctx context.Context, sessions []*models.Session, paths []string) []bids.FailureRecord
	AttachSubjectFiles(ctx context.Context, sessions []*models.Session, path string) []bids.FailureRecord
	AttachSessionFiles(ctx context.Context, sessions []*models.Session, path string) []bids.FailureRecord
	AutogenParticipants(ctx context.Context, sessions []*models.Session)
	AutogenSessions(ctx context.Context, sessions []*models.Session)
}

type metaService struct {
	client client.Client
	log    logging.Logger
}

func NewMetaService(c client.Client, log logging.Logger) MetaService {
	return &metaService{client: c, log: log}
}

func (m *metaService) AttachProjectFiles(ctx context.Context, sessions []*models.Session, paths []string) []bids.FailureRecord {
	if len(sessions) == 0 || len(paths) == 0 {
		return nil
	}
	ref := models.ContainerRef{Kind: models.KindProject, ID: sessions[0].Project}

	var failures []bids.FailureRecord
	for _, p := range paths {
		m.log.Info(ctx, "attaching file to project", "file", p, "project", ref.ID)
		if err := m.attach(ctx, ref, p); err != nil {
			failures = append(failures, bids.FailureRecord{Job: bids.JobAttachFile, Reason: err})
		}
	}
	return failures
}

func (m *metaService) AttachSubjectFiles(ctx context.Context, sessions []*models.Session, path string) []bids.FailureRecord {
	var failures []bids.FailureRecord
	seen := make(map[string]bool)
	for _, ses := range sessions {
		sub := ses.Subject
		if seen[sub.ID] {
			continue
		}
		seen[sub.ID] = true

		m.log.Info(ctx, "attaching file to subject", "file", path, "subject", sub.Label)
		if err := m.attach(ctx, sub.Ref(), path); err != nil {
			failures = append(failures, bids.FailureRecord{Subject: sub.Label, Job: bids.JobAttachFile, Reason: err})
		}
	}
	return failures
}

func (m *metaService) AttachSessionFiles(ctx context.Context, sessions []*models.Session, path string) []bids.FailureRecord {
	var failures []bids.FailureRecord
	for _, ses := range sessions {
		m.log.Info(ctx, "attaching file to session", "file", path, "subject", ses.Subject.Label, "session", ses.Label)
		if err := m.attach(ctx, ses.Ref(), path); err != nil {
			failures = append(failures, bids.FailureRecord{
				Subject: ses.Subject.Label,
				Session: ses.Label,
				Job:     bids.JobAttachFile,
				Reason:  err,
			})
		}
	}
	return failures
}

func (m *metaService) AutogenParticipants(ctx context.Context, sessions []*models.Session) {
	m.log.Error(ctx, "cannot generate participants.tsv", "sessions", len(sessions), "err", common.ErrorNotImplemented)
}

func (m *metaService) AutogenSessions(ctx context.Context, sessions []*models.Session) {
	m.log.Error(ctx, "cannot generate sessions.tsv", "sessions", len(sessions), "err", common.ErrorNotImplemented)
}

func (m *metaService) attach(ctx context.Context, ref models.ContainerRef, path string) error {
	abs, err := filex.RegularFile(path)
	if err != nil {
		m.log.Error(ctx, "couldn't access file", "file", path, "err", err)
		return err
	}
	if err := m.client.UploadFile(ctx, ref, abs); err != nil {
		m.log.Error(ctx, "upload failed", "file", path, "container", string(ref.Kind), "id", ref.ID, "err", err)
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}
