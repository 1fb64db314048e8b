package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/common"
)

// Op names a Client operation for failure injection in MemoryClient.
type Op string

const (
	OpFindProject         Op = "FindProject"
	OpProjectSessions     Op = "ProjectSessions"
	OpGetSession          Op = "GetSession"
	OpGetSubject          Op = "GetSubject"
	OpGetAcquisition      Op = "GetAcquisition"
	OpSessionAcquisitions Op = "SessionAcquisitions"
	OpUpdateFileInfo      Op = "UpdateFileInfo"
	OpUploadFile          Op = "UploadFile"
)

// Upload is a file received by MemoryClient.UploadFile.
type Upload struct {
	Ref     models.ContainerRef
	Name    string
	Content []byte
}

// InfoUpdate is a patch received by MemoryClient.UpdateFileInfo.
type InfoUpdate struct {
	AcquisitionID string
	FileName      string
	Patch         map[string]any
}

// MemoryClient is an in-process platform. Values handed out and stored are
// JSON round-tripped so callers observe the same shapes a server returns.
type MemoryClient struct {
	projects     []*models.Project
	subjects     map[string]*models.Subject
	sessions     []*models.Session
	acquisitions []*models.Acquisition

	failures map[string]error

	Uploads []Upload
	Updates []InfoUpdate
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		subjects: make(map[string]*models.Subject),
		failures: make(map[string]error),
	}
}

func (m *MemoryClient) AddProject(p *models.Project) {
	m.projects = append(m.projects, p)
}

func (m *MemoryClient) AddSubject(s *models.Subject) {
	m.subjects[s.ID] = s
}

func (m *MemoryClient) AddSession(s *models.Session) {
	m.sessions = append(m.sessions, s)
}

func (m *MemoryClient) AddAcquisition(a *models.Acquisition) {
	m.acquisitions = append(m.acquisitions, a)
}

// Acquisition returns the stored acquisition without copying, or nil.
func (m *MemoryClient) Acquisition(id string) *models.Acquisition {
	for _, a := range m.acquisitions {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// FailOn makes op fail with err for the given id. For UpdateFileInfo the id
// is "<acquisition>/<file>"; for FindProject it is the label.
func (m *MemoryClient) FailOn(op Op, id string, err error) {
	m.failures[string(op)+":"+id] = err
}

func (m *MemoryClient) fail(op Op, id string) error {
	return m.failures[string(op)+":"+id]
}

func (m *MemoryClient) FindProject(ctx context.Context, label string) (*models.Project, error) {
	if err := m.fail(OpFindProject, label); err != nil {
		return nil, err
	}
	for _, p := range m.projects {
		if p.Label == label {
			return clone(p)
		}
	}
	return nil, fmt.Errorf("project %q: %w", label, common.ErrorNotFound)
}

func (m *MemoryClient) ProjectSessions(ctx context.Context, projectID string) ([]*models.Session, error) {
	if err := m.fail(OpProjectSessions, projectID); err != nil {
		return nil, err
	}
	var out []*models.Session
	for _, s := range m.sessions {
		if s.Project == projectID || s.Parents.Project == projectID {
			c, err := clone(s)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryClient) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if err := m.fail(OpGetSession, id); err != nil {
		return nil, err
	}
	for _, s := range m.sessions {
		if s.ID == id {
			return clone(s)
		}
	}
	return nil, fmt.Errorf("session %q: %w", id, common.ErrorNotFound)
}

func (m *MemoryClient) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	if err := m.fail(OpGetSubject, id); err != nil {
		return nil, err
	}
	s, ok := m.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", id, common.ErrorNotFound)
	}
	return clone(s)
}

func (m *MemoryClient) GetAcquisition(ctx context.Context, id string) (*models.Acquisition, error) {
	if err := m.fail(OpGetAcquisition, id); err != nil {
		return nil, err
	}
	a := m.Acquisition(id)
	if a == nil {
		return nil, fmt.Errorf("acquisition %q: %w", id, common.ErrorNotFound)
	}
	return clone(a)
}

func (m *MemoryClient) SessionAcquisitions(ctx context.Context, sessionID string) ([]*models.Acquisition, error) {
	if err := m.fail(OpSessionAcquisitions, sessionID); err != nil {
		return nil, err
	}
	var out []*models.Acquisition
	for _, a := range m.acquisitions {
		if a.Parents.Session == sessionID {
			c, err := clone(a)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryClient) UpdateFileInfo(ctx context.Context, acquisitionID, fileName string, patch map[string]any) error {
	if err := m.fail(OpUpdateFileInfo, acquisitionID+"/"+fileName); err != nil {
		return err
	}
	a := m.Acquisition(acquisitionID)
	if a == nil {
		return fmt.Errorf("acquisition %q: %w", acquisitionID, common.ErrorNotFound)
	}
	f := a.File(fileName)
	if f == nil {
		return fmt.Errorf("file %q: %w", fileName, common.ErrorNotFound)
	}

	stored, err := cloneMap(patch)
	if err != nil {
		return err
	}
	f.SetInfo(stored)
	m.Updates = append(m.Updates, InfoUpdate{AcquisitionID: acquisitionID, FileName: fileName, Patch: stored})
	return nil
}

func (m *MemoryClient) UploadFile(ctx context.Context, ref models.ContainerRef, path string) error {
	if err := m.fail(OpUploadFile, ref.ID); err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m.Uploads = append(m.Uploads, Upload{Ref: ref, Name: filepath.Base(path), Content: b})
	return nil
}

func clone[T any](v *T) (*T, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func cloneMap(m map[string]any) (map[string]any, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
