package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/bidscurator/internal/bids"
	"github.com/dmitrijs2005/bidscurator/internal/client/client"
	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/logging"
)

// SessionService finds the sessions of a project.
//
// Contract:
//   - Initialize: look up the project by exact label and return its sessions,
//     filtered by subject labels and then by session labels when given. An
//     unknown project yields an error wrapping common.ErrorNotFound; no
//     matching session is not an error.
//   - BIDSLabel: the single label used for entity ("sub" or "ses") in the
//     BIDS filenames already written to the session's image files.
type SessionService interface {
	Initialize(ctx context.Context, project string, subjects, sessions []string) ([]*models.Session, error)
	BIDSLabel(ctx context.Context, session *models.Session, entity string) (string, bool, error)
}

type sessionService struct {
	client client.Client
	log    logging.Logger
}

func NewSessionService(c client.Client, log logging.Logger) SessionService {
	return &sessionService{client: c, log: log}
}

func (s *sessionService) Initialize(ctx context.Context, project string, subjects, sessions []string) ([]*models.Session, error) {
	p, err := s.client.FindProject(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	s.log.Debug(ctx, "found project", "project", p.Label, "id", p.ID)

	all, err := s.client.ProjectSessions(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of %q: %w", project, err)
	}

	subjectSet := toSet(subjects)
	sessionSet := toSet(sessions)

	var out []*models.Session
	for _, ses := range all {
		if subjectSet != nil && !subjectSet[ses.Subject.Label] {
			continue
		}
		if sessionSet != nil && !sessionSet[ses.Label] {
			continue
		}
		out = append(out, ses)
	}

	s.log.Debug(ctx, "selected sessions", "total", len(all), "selected", len(out))
	return out, nil
}

func (s *sessionService) BIDSLabel(ctx context.Context, session *models.Session, entity string) (string, bool, error) {
	acqs, err := s.client.SessionAcquisitions(ctx, session.ID)
	if err != nil {
		return "", false, fmt.Errorf("list acquisitions of session %q: %w", session.Label, err)
	}

	re := regexp.MustCompile(regexp.QuoteMeta(entity) + `-([a-zA-Z0-9]+)_`)
	labels := map[string]struct{}{}
	var last string
	for _, a := range acqs {
		for _, f := range a.Files {
			if f.Type != bids.FileTypeNifti {
				continue
			}
			rec, state, err := bids.FromInfo(f.Info)
			if err != nil || state != bids.StatePresent || rec.Filename == "" {
				continue
			}
			if m := re.FindStringSubmatch(rec.Filename); m != nil {
				labels[m[1]] = struct{}{}
				last = m[1]
			}
		}
	}

	if len(labels) != 1 {
		s.log.Debug(ctx, "no unique BIDS label", "session", session.Label, "entity", entity, "found", len(labels))
		return "", false, nil
	}
	return last, true, nil
}

// toSet returns nil for an empty list so that "no filter" and "filter
// matching nothing" stay distinguishable.
func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
