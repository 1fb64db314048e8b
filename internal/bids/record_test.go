package bids

import (
	"testing"

	"github.com/dmitrijs2005/bidscurator/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curatedInfo() map[string]any {
	return map[string]any{
		"Filename":      "sub-01_ses-A_acq-epi_dir-AP_epi.nii.gz",
		"Folder":        "fmap",
		"Path":          "sub-01/ses-A/fmap",
		"Acq":           "epi",
		"Ce":            "",
		"Dir":           "AP",
		"Echo":          "",
		"Mod":           "",
		"Modality":      "epi",
		"Rec":           "",
		"Run":           1,
		"Task":          "",
		"IntendedFor":   "[{'Folder': 'dwi'}]",
		"ignore":        "",
		"valid":         true,
		"error_message": "",
		"template":      "fieldmap_file",
		"rule_id":       "bids_fieldmap",
	}
}

func TestFromInfo_States(t *testing.T) {
	r, st, err := FromInfo(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, StateAbsent, st)
	assert.Nil(t, r)

	_, st, err = FromInfo(map[string]any{InfoKey: NotApplicable})
	require.NoError(t, err)
	assert.Equal(t, StateNotApplicable, st)

	_, _, err = FromInfo(map[string]any{InfoKey: 12})
	require.ErrorIs(t, err, ErrUnexpectedRecord)

	r, st, err = FromInfo(map[string]any{InfoKey: curatedInfo()})
	require.NoError(t, err)
	assert.Equal(t, StatePresent, st)
	assert.Equal(t, "fmap", r.Folder)
}

func TestDecodeRecord_WeakTypesAndExtras(t *testing.T) {
	r, err := DecodeRecord(curatedInfo())
	require.NoError(t, err)

	assert.Equal(t, "1", r.Run)
	assert.False(t, r.Ignore)
	assert.True(t, r.Valid)
	assert.Equal(t, IntentFor("dwi"), r.IntendedFor)
	assert.Equal(t, map[string]any{"rule_id": "bids_fieldmap"}, r.Extra)
}

func TestRecord_RoundTripKeepsFieldSet(t *testing.T) {
	r, err := DecodeRecord(curatedInfo())
	require.NoError(t, err)

	first := r.ToMap()

	again, err := DecodeRecord(first)
	require.NoError(t, err)

	if diff := cmp.Diff(first, again.ToMap()); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%s", diff)
	}

	for k := range curatedInfo() {
		assert.Contains(t, first, k)
	}
}

func TestRecord_Validate(t *testing.T) {
	ok := &Record{Filename: "sub-01_ses-A_T1w.nii.gz", Folder: "anat", Path: "sub-01/ses-A/anat"}
	require.NoError(t, ok.Validate())

	tests := []struct {
		name string
		r    Record
	}{
		{"missing filename", Record{Folder: "anat", Path: "sub-01/ses-A/anat"}},
		{"bad extension", Record{Filename: "sub-01_T1w.dcm", Folder: "anat", Path: "sub-01/ses-A/anat"}},
		{"missing folder", Record{Filename: "sub-01_T1w.nii.gz", Path: "sub-01/ses-A/anat"}},
		{"path does not end in folder", Record{Filename: "sub-01_T1w.nii.gz", Folder: "anat", Path: "sub-01/ses-A/func"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			require.ErrorIs(t, err, common.ErrorInvalidRecord)
		})
	}
}

func TestRecord_IsImage(t *testing.T) {
	assert.True(t, (&Record{Filename: "sub-01_dwi.nii.gz"}).IsImage())
	assert.False(t, (&Record{Filename: "sub-01_dwi.bval"}).IsImage())
	assert.False(t, (&Record{Filename: "sub-01_dwi.bvec"}).IsImage())
}
