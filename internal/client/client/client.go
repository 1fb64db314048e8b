package client

import (
	"context"

	"github.com/dmitrijs2005/bidscurator/internal/client/models"
)

// Client is the subset of the data-management platform API used by
// bidscurator.
type Client interface {
	// FindProject returns the project with exactly this label or an error
	// wrapping common.ErrorNotFound.
	FindProject(ctx context.Context, label string) (*models.Project, error)
	ProjectSessions(ctx context.Context, projectID string) ([]*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	GetAcquisition(ctx context.Context, id string) (*models.Acquisition, error)
	SessionAcquisitions(ctx context.Context, sessionID string) ([]*models.Acquisition, error)
	// UpdateFileInfo sets the keys of patch on the info mapping of a file of
	// an acquisition; keys not in patch are left untouched.
	UpdateFileInfo(ctx context.Context, acquisitionID, fileName string, patch map[string]any) error
	// UploadFile attaches a local file to a container under its base name.
	UploadFile(ctx context.Context, ref models.ContainerRef, path string) error
}
