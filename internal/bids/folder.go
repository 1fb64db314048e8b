package bids

import "strings"

// Folder is the BIDS datatype folder variant a record belongs to.
type Folder string

const (
	FolderFmap  Folder = "fmap"
	FolderDWI   Folder = "dwi"
	FolderFunc  Folder = "func"
	FolderAnat  Folder = "anat"
	FolderOther Folder = "other"
)

// ParseFolder maps a folder name onto its variant. Matching is by substring
// in the order fmap, dwi, func, anat; anything else is FolderOther.
func ParseFolder(name string) Folder {
	for _, f := range []Folder{FolderFmap, FolderDWI, FolderFunc, FolderAnat} {
		if strings.Contains(name, string(f)) {
			return f
		}
	}
	return FolderOther
}

func (f Folder) String() string {
	return string(f)
}
