package dirsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
}

func TestLoadFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ZETA_report.xlsx")
	touch(t, dir, "ALPHA_report.xlsm")
	touch(t, dir, "notes.txt")
	touch(t, dir, "~$ALPHA_report.xlsx")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0700))

	refs, err := New(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "ALPHA_report.xlsm", refs[0].Name)
	assert.Equal(t, "ALPHA", refs[0].InstituteID)
	assert.Equal(t, filepath.Join(dir, "ALPHA_report.xlsm"), refs[0].Path)
	assert.Equal(t, "ZETA_report.xlsx", refs[1].Name)
	assert.Equal(t, "ZETA", refs[1].InstituteID)
}

func TestLoadEmptyDirectory(t *testing.T) {
	refs, err := New(t.TempDir()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "gone")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "A_report.XLSX")

	refs, err := New(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "A_report.XLSX", refs[0].Name)
}
