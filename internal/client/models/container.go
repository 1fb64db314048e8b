// Package models defines the platform objects bidscurator reads and updates:
// projects, subjects, sessions, acquisitions and their files.
package models

// ContainerKind is the URL collection name of a container type.
type ContainerKind string

const (
	KindProject     ContainerKind = "projects"
	KindSubject     ContainerKind = "subjects"
	KindSession     ContainerKind = "sessions"
	KindAcquisition ContainerKind = "acquisitions"
)

// ContainerRef addresses a container that files can be attached to.
type ContainerRef struct {
	Kind ContainerKind
	ID   string
}

// Parents lists the ancestor container ids of a container.
type Parents struct {
	Group   string `json:"group,omitempty"`
	Project string `json:"project,omitempty"`
	Subject string `json:"subject,omitempty"`
	Session string `json:"session,omitempty"`
}

type Project struct {
	ID    string  `json:"_id"`
	Label string  `json:"label"`
	Group string  `json:"group,omitempty"`
	Files []*File `json:"files,omitempty"`
}

func (p *Project) Ref() ContainerRef {
	return ContainerRef{Kind: KindProject, ID: p.ID}
}

type Subject struct {
	ID      string  `json:"_id"`
	Label   string  `json:"label"`
	Code    string  `json:"code,omitempty"`
	Parents Parents `json:"parents"`
	Files   []*File `json:"files,omitempty"`
}

func (s *Subject) Ref() ContainerRef {
	return ContainerRef{Kind: KindSubject, ID: s.ID}
}

// Session carries an embedded summary of its subject.
type Session struct {
	ID      string  `json:"_id"`
	Label   string  `json:"label"`
	Project string  `json:"project"`
	Subject Subject `json:"subject"`
	Parents Parents `json:"parents"`
	Files   []*File `json:"files,omitempty"`
}

func (s *Session) Ref() ContainerRef {
	return ContainerRef{Kind: KindSession, ID: s.ID}
}

// Acquisition holds one imaging series and its files.
type Acquisition struct {
	ID      string  `json:"_id"`
	Label   string  `json:"label"`
	Parents Parents `json:"parents"`
	Files   []*File `json:"files"`
}

// File returns the named file or nil.
func (a *Acquisition) File(name string) *File {
	for _, f := range a.Files {
		if f.Name == name {
			return f
		}
	}
	return nil
}
