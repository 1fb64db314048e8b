package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/bidscurator/internal/common"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestRegularFile_ExistingFile(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "README")
	require.NoError(t, os.WriteFile(p, []byte("readme"), 0o600))

	got, err := RegularFile(p)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestRegularFile_RelativePathIsResolved(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("CHANGES", []byte("1.0.0"), 0o600))

	got, err := RegularFile("CHANGES")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
	require.Equal(t, "CHANGES", filepath.Base(got))
}

func TestRegularFile_Missing(t *testing.T) {
	_, err := RegularFile(filepath.Join(t.TempDir(), "nope.tsv"))
	require.ErrorIs(t, err, common.ErrorFileMissing)
}

func TestRegularFile_DirectoryIsRejected(t *testing.T) {
	_, err := RegularFile(t.TempDir())
	require.ErrorIs(t, err, common.ErrorFileMissing)
}
