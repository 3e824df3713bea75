// Package dirsource sources documents from a local directory. Institute
// IDs are derived from file names, so a drop folder of downloaded reports
// can be processed without any extra metadata.
package dirsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// excelExtensions matches the reader's supported formats.
var excelExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xltx": {},
	".xltm": {},
}

// Source lists Excel documents in a single directory (non-recursive).
type Source struct {
	dir string
}

// New creates a directory source.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Load scans the directory and returns one reference per Excel file,
// sorted by name so batch order is reproducible. A missing directory
// yields domain.ErrNotFound.
func (s *Source) Load(_ context.Context) ([]domain.DocumentRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.dir)
		}
		return nil, fmt.Errorf("reading directory %s: %w", s.dir, err)
	}

	var refs []domain.DocumentRef
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue // Excel lock files
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := excelExtensions[ext]; !ok {
			continue
		}

		refs = append(refs, domain.DocumentRef{
			InstituteID: domain.InstituteFromName(name),
			Name:        name,
			Path:        filepath.Join(s.dir, name),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })

	logging.L().Infow("loaded documents from directory", "dir", s.dir, "count", len(refs))
	return refs, nil
}
