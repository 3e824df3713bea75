// Package memory provides an in-memory result store used by tests and
// dry-run processing.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.ResultSink  = (*Store)(nil)
	_ driven.ResultQuery = (*Store)(nil)
)

// Store is an in-memory append-only result log.
type Store struct {
	mu      sync.RWMutex
	results []domain.CheckResult
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// WriteResults appends results to the log.
func (s *Store) WriteResults(_ context.Context, results []domain.CheckResult) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, results...)
	return len(results), nil
}

// ExistingVersions derives the version log from stored results, one record
// per (institute, fingerprint) pair.
func (s *Store) ExistingVersions(_ context.Context) ([]domain.VersionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		institute   string
		fingerprint domain.Fingerprint
	}
	seen := make(map[key]struct{})

	var records []domain.VersionRecord
	for _, r := range s.results {
		k := key{r.InstituteID, r.Fingerprint}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		records = append(records, domain.VersionRecord{
			InstituteID: r.InstituteID,
			Fingerprint: r.Fingerprint,
			Version:     r.Version,
		})
	}
	return records, nil
}

// ResultsForInstitute returns stored results for one institute, optionally
// filtered to a single version (0 returns all versions).
func (s *Store) ResultsForInstitute(
	_ context.Context,
	instituteID string,
	version int,
) ([]domain.CheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.CheckResult
	for _, r := range s.results {
		if r.InstituteID != instituteID {
			continue
		}
		if version > 0 && r.Version != version {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// All returns every stored result. Test helper.
func (s *Store) All() []domain.CheckResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CheckResult, len(s.results))
	copy(out, s.results)
	return out
}
