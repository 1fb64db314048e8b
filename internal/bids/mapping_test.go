package bids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mappingYAML = `
subject: "01"
session: A
entries:
  - template: "sub-{subject}/{session}/anat/sub-{subject}_{session}_T1w"
    extensions: [nii.gz, dicom]
    acquisitions: [acq-t1]
  - template: "sub-{subject}/{session}/fmap/sub-{subject}_{session}_acq-epi_dir-AP_epi"
    acquisitions: [acq-epi]
  - template: "sub-{subject}/{session}/dwi/sub-{subject}_{session}_dwi"
    acquisitions: []
`

func TestLoadMapping_KeepsOrder(t *testing.T) {
	m, err := LoadMapping(strings.NewReader(mappingYAML))
	require.NoError(t, err)

	assert.Equal(t, "01", m.Subject)
	assert.Equal(t, "A", m.Session)
	require.Len(t, m.Entries, 3)
	assert.Equal(t, []string{"acq-t1"}, m.Entries[0].Acquisitions)
	assert.Equal(t, []string{"nii.gz", "dicom"}, m.Entries[0].Key.Extensions)
	assert.Contains(t, m.Entries[1].Key.Template, "acq-epi")
	assert.Empty(t, m.Entries[2].Acquisitions)
}

func TestLoadMapping_JSON(t *testing.T) {
	in := `{"entries": [{"template": "sub-{subject}/{session}/func/sub-{subject}_{session}_task-rest_bold", "acquisitions": ["a1"]}]}`
	m, err := LoadMapping(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "a1", m.Entries[0].Acquisitions[0])
}

func TestLoadMapping_Errors(t *testing.T) {
	_, err := LoadMapping(strings.NewReader("entries:\n  - acquisitions: [a]\n"))
	require.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = LoadMapping(strings.NewReader("entries:\n  - template: x\n    unknown: 1\n"))
	require.Error(t, err)

	m, err := LoadMapping(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
}
