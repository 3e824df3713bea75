package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// fingerprintChunkSize is the fixed read buffer used when hashing, so
// memory use is independent of file size.
const fingerprintChunkSize = 64 * 1024

// Fingerprinter computes content-addressing digests of document bytes.
type Fingerprinter struct{}

// NewFingerprinter creates a Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// FileFingerprint streams the file at path through SHA-256 and returns the
// hex digest. A missing file yields an error wrapping domain.ErrNotFound.
func (f *Fingerprinter) FileFingerprint(path string) (domain.Fingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	fp, err := f.Fingerprint(file)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	logging.L().Debugw("computed fingerprint", "path", path, "fingerprint", fp.Short())
	return fp, nil
}

// Fingerprint hashes an arbitrary byte stream in fixed-size chunks.
func (f *Fingerprinter) Fingerprint(r io.Reader) (domain.Fingerprint, error) {
	h := sha256.New()
	buf := make([]byte, fingerprintChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("reading stream: %w", err)
	}
	return domain.Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
