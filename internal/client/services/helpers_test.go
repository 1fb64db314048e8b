package services

import (
	"github.com/dmitrijs2005/bidscurator/internal/client/client"
	"github.com/dmitrijs2005/bidscurator/internal/client/models"
)

const (
	tplT1w    = "sub-{subject}/{session}/anat/sub-{subject}_{session}_T1w"
	tplDWI    = "sub-{subject}/{session}/dwi/sub-{subject}_{session}_dwi"
	tplBold   = "sub-{subject}/{session}/func/sub-{subject}_{session}_task-rest_bold"
	tplEpiMap = "sub-{subject}/{session}/fmap/sub-{subject}_{session}_acq-epi_fmap"
	tplPhase  = "sub-{subject}/{session}/fmap/sub-{subject}_{session}_magnitude"
)

// newPlatform returns a platform with project "Study", subject "01" and
// session "A" holding the given acquisitions.
func newPlatform(acqs ...*models.Acquisition) *client.MemoryClient {
	m := client.NewMemoryClient()
	m.AddProject(&models.Project{ID: "p1", Label: "Study"})
	m.AddSubject(&models.Subject{ID: "sub1", Label: "01", Parents: models.Parents{Project: "p1"}})
	m.AddSession(&models.Session{
		ID:      "ses1",
		Label:   "A",
		Project: "p1",
		Subject: models.Subject{ID: "sub1", Label: "01"},
		Parents: models.Parents{Project: "p1", Subject: "sub1"},
	})
	for _, a := range acqs {
		a.Parents = models.Parents{Project: "p1", Subject: "sub1", Session: "ses1"}
		m.AddAcquisition(a)
	}
	return m
}

func acquisition(id string, files ...*models.File) *models.Acquisition {
	return &models.Acquisition{ID: id, Label: id, Files: files}
}

func nifti(name string) *models.File {
	return &models.File{Name: name, Type: "nifti"}
}

func fileOf(m *client.MemoryClient, acqID, name string) *models.File {
	return m.Acquisition(acqID).File(name)
}
