package bids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent_Shapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Intent
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"single-quoted literal", "[{'Folder': 'dwi'}]", IntentFor("dwi")},
		{"json string", `[{"Folder":"func"},{"Folder":"dwi"}]`, IntentFor("func", "dwi")},
		{"native list", []any{map[string]any{"Folder": "func"}}, IntentFor("func")},
		{"typed list", []map[string]any{{"folder": "anat"}}, IntentFor("anat")},
		{"list of names", []any{"dwi", "func"}, IntentFor("dwi", "func")},
		{"empty list", []any{}, Intent{}},
		{"intent", IntentFor("dwi"), IntentFor("dwi")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntent(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntent_Invalid(t *testing.T) {
	for _, in := range []any{"not a list", 42, []any{42}, []any{map[string]any{"Path": "x"}}} {
		_, err := ParseIntent(in)
		require.ErrorIs(t, err, ErrInvalidIntent, "input %v", in)
	}
}

func TestIntent_ValueRoundTrip(t *testing.T) {
	in := IntentFor("dwi", "func")

	got, err := ParseIntent(in.Value())
	require.NoError(t, err)
	assert.Equal(t, in, got)

	empty, err := ParseIntent(Intent{}.Value())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var unset Intent
	assert.Equal(t, "", unset.Value())
}

func TestIntent_HasAndFolders(t *testing.T) {
	in := IntentFor("dwi", "func")
	assert.True(t, in.Has("dwi"))
	assert.False(t, in.Has("anat"))
	assert.Equal(t, []string{"dwi", "func"}, in.Folders())
}
