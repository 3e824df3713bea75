package services

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestFileFingerprintDeterministic(t *testing.T) {
	f := NewFingerprinter()
	path := writeTempFile(t, []byte("identical bytes"))

	first, err := f.FileFingerprint(path)
	require.NoError(t, err)
	second, err := f.FileFingerprint(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Valid())
}

func TestFileFingerprintDiffersOnContent(t *testing.T) {
	f := NewFingerprinter()
	a := writeTempFile(t, []byte("content A"))
	b := writeTempFile(t, []byte("content B"))

	fpA, err := f.FileFingerprint(a)
	require.NoError(t, err)
	fpB, err := f.FileFingerprint(b)
	require.NoError(t, err)

	assert.NotEqual(t, fpA, fpB)
}

func TestFileFingerprintMissingFile(t *testing.T) {
	f := NewFingerprinter()

	_, err := f.FileFingerprint(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFingerprintStreamsLargeInput(t *testing.T) {
	f := NewFingerprinter()

	// Larger than the chunk size so multiple reads happen.
	data := make([]byte, 3*fingerprintChunkSize+17)
	_, err := rand.Read(data)
	require.NoError(t, err)

	streamed, err := f.Fingerprint(bytes.NewReader(data))
	require.NoError(t, err)

	path := writeTempFile(t, data)
	fromFile, err := f.FileFingerprint(path)
	require.NoError(t, err)

	assert.Equal(t, streamed, fromFile)
}
