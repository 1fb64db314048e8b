package client

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/logging"
)

// DryRunClient forwards reads to the wrapped Client and replaces every write
// with a log line.
type DryRunClient struct {
	Client
	log logging.Logger
}

func NewDryRunClient(inner Client, log logging.Logger) *DryRunClient {
	return &DryRunClient{Client: inner, log: log}
}

func (d *DryRunClient) UpdateFileInfo(ctx context.Context, acquisitionID, fileName string, patch map[string]any) error {
	d.log.Info(ctx, "dry run: skip file info update",
		"acquisition", acquisitionID, "file", fileName, "patch", patch)
	return nil
}

func (d *DryRunClient) UploadFile(ctx context.Context, ref models.ContainerRef, path string) error {
	d.log.Info(ctx, "dry run: skip upload",
		"container", string(ref.Kind), "id", ref.ID, "file", filepath.Base(path))
	return nil
}
