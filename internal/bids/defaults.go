package bids

import (
	"errors"
	"strings"
)

// ErrFieldmapWithoutFilename is returned together with a fieldmap default
// record when no filename was available to pick its intent.
var ErrFieldmapWithoutFilename = errors.New("no filename given, can't set intentions for this fieldmap")

// DefaultRecord returns the record used for a file that carries no BIDS
// metadata yet. For a fieldmap, filenames containing "epi" intend dwi and
// any other filename intends func. An fmap folder without a filename yields
// the record with IntendedFor unset and ErrFieldmapWithoutFilename, which
// callers treat as a warning.
func DefaultRecord(folder, filename string) (*Record, error) {
	r := &Record{}

	switch ParseFolder(folder) {
	case FolderFmap:
		r.Folder = string(FolderFmap)
		r.Template = "fieldmap_file"
		switch {
		case filename == "":
			return r, ErrFieldmapWithoutFilename
		case strings.Contains(filename, "epi"):
			r.Modality = "epi"
			r.IntendedFor = IntentFor(string(FolderDWI))
		default:
			r.Modality = "fieldmap"
			r.IntendedFor = IntentFor(string(FolderFunc))
		}
	case FolderDWI:
		r.Modality = "dwi"
		r.Template = "diffusion_file"
	case FolderAnat:
		r.Folder = string(FolderAnat)
		r.Modality = "T1w"
		r.Template = "anat_file"
	}

	return r, nil
}
