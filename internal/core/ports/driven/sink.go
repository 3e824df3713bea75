package driven

import (
	"context"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

// ResultSink persists check results and exposes the version log used to
// rehydrate the version registry at startup. Both operations may fail;
// the processor treats write failures as document-level errors.
type ResultSink interface {
	// WriteResults appends a batch of results and returns the count written.
	WriteResults(ctx context.Context, results []domain.CheckResult) (int, error)

	// ExistingVersions returns the (institute, fingerprint, version) log
	// accumulated by all prior runs.
	ExistingVersions(ctx context.Context) ([]domain.VersionRecord, error)
}

// ResultQuery reads back persisted results for reporting.
type ResultQuery interface {
	// ResultsForInstitute returns results for one institute, optionally
	// filtered to a single version (0 returns all versions).
	ResultsForInstitute(ctx context.Context, instituteID string, version int) ([]domain.CheckResult, error)
}
