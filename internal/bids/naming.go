package bids

import (
	"errors"
	"fmt"
	"strings"
)

// Platform file types curated by the labeler.
const (
	FileTypeNifti = "nifti"
	FileTypeBval  = "bval"
	FileTypeBvec  = "bvec"
)

// ImageExtension marks image series; IntendedFor only ever targets these.
const ImageExtension = ".nii.gz"

var fileExtensions = map[string]string{
	FileTypeNifti: ImageExtension,
	FileTypeBval:  ".bval",
	FileTypeBvec:  ".bvec",
}

var ErrMalformedTemplate = errors.New("naming template must format to sub/ses/folder/name")

// NamingKey identifies one logical BIDS file of a session as computed by the
// heuristic step.
type NamingKey struct {
	// Template accepts {subject}, {session}, {bids_subject_session_dir} and
	// {bids_subject_session_prefix}; {session} already carries the "ses-"
	// prefix.
	Template string `yaml:"template" json:"template"`
	// Extensions are the output types the heuristic declared.
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	// Suffix is inserted between the formatted name and the file extension.
	Suffix string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// Components are the parts of a formatted NamingKey.
type Components struct {
	Sub    string
	Ses    string
	Folder string
	Name   string
}

// Path is the directory of the file: sub/ses/folder.
func (c Components) Path() string {
	return strings.Join([]string{c.Sub, c.Ses, c.Folder}, "/")
}

// Format fills the template with the subject and session labels (without
// their sub-/ses- prefixes) and splits the result into components.
func (k NamingKey) Format(subject, session string) (Components, error) {
	ses := "ses-" + session
	r := strings.NewReplacer(
		"{subject}", subject,
		"{session}", ses,
		"{bids_subject_session_dir}", "sub-"+subject+"/"+ses,
		"{bids_subject_session_prefix}", "sub-"+subject+"_"+ses,
	)

	parts := strings.Split(r.Replace(k.Template), "/")
	if len(parts) != 4 {
		return Components{}, fmt.Errorf("%w: %q has %d parts", ErrMalformedTemplate, k.Template, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return Components{}, fmt.Errorf("%w: %q has an empty part", ErrMalformedTemplate, k.Template)
		}
	}

	return Components{Sub: parts[0], Ses: parts[1], Folder: parts[2], Name: parts[3]}, nil
}

// Filename is the BIDS filename of a platform file of the given type and
// name placed under these components.
func (k NamingKey) Filename(c Components, fileType, fileName string) (string, bool) {
	ext, ok := FileSuffix(fileType, fileName)
	if !ok {
		return "", false
	}
	return c.Name + k.Suffix + ext, true
}

// FileSuffix returns the extension for a curated file type. Multi-echo
// magnitude images (names containing e1.nii.gz or e2.nii.gz) get the echo
// number in front of the extension.
func FileSuffix(fileType, fileName string) (string, bool) {
	ext, ok := fileExtensions[fileType]
	if !ok {
		return "", false
	}

	switch {
	case strings.Contains(fileName, "e1.nii.gz"):
		return "1" + ext, true
	case strings.Contains(fileName, "e2.nii.gz"):
		return "2" + ext, true
	default:
		return ext, true
	}
}

// IsCuratedType reports whether files of this type are labeled.
func IsCuratedType(fileType string) bool {
	_, ok := fileExtensions[fileType]
	return ok
}

// HasBIDSExtension reports whether name ends in one of the curated extensions.
func HasBIDSExtension(name string) bool {
	for _, ext := range fileExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
