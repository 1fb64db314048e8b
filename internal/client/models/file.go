package models

// File is a file attached to a platform container.
type File struct {
	Name string `json:"name"`
	// Type is the platform-detected file type (nifti, bval, bvec, dicom, ...).
	Type string `json:"type"`
	// Info is the free-form metadata mapping; BIDS curation lives under
	// Info["BIDS"].
	Info map[string]any `json:"info"`
	Size int64          `json:"size,omitempty"`
}

// SetInfo merges patch into the file's info mapping, the way the platform
// applies a "set" update.
func (f *File) SetInfo(patch map[string]any) {
	if f.Info == nil {
		f.Info = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		f.Info[k] = v
	}
}
