package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

// Processor is the driving port of the document pipeline, consumed by the
// CLI. One call to ProcessBatch fully fingerprints, checks and persists
// each document before moving on unless workers are configured.
type Processor interface {
	// ShouldProcess decides whether the document at path needs processing
	// for the given institute and returns the reason for the decision.
	ShouldProcess(ctx context.Context, instituteID, path string, force bool) (bool, string, error)

	// Process runs the full pipeline for one document: fingerprint, version
	// assignment, parsing, check execution and result persistence.
	Process(ctx context.Context, instituteID string, ref domain.DocumentRef) (domain.FileVersion, []domain.CheckResult, error)

	// ProcessBatch processes many documents, isolating per-document
	// failures, and returns aggregate counters. It never fails as a whole;
	// a document-level error only increments the Failed counter.
	ProcessBatch(ctx context.Context, refs []domain.DocumentRef, opts BatchOptions) BatchSummary

	// CacheStatus reports whether the document at path is already known
	// for the institute, with its fingerprint and assigned version.
	CacheStatus(ctx context.Context, instituteID, path string) (CacheStatus, error)

	// InvalidateCache drops cached version state for one institute, or for
	// all institutes when instituteID is empty. Manual cache-busting only;
	// never called during normal processing.
	InvalidateCache(instituteID string)
}

// BatchOptions controls one ProcessBatch run.
type BatchOptions struct {
	// Force reprocesses documents even when their content is cached.
	Force bool

	// Workers bounds concurrent document processing. Values below 2 keep
	// the baseline single-threaded behaviour.
	Workers int
}

// BatchSummary aggregates the counters of one batch run.
type BatchSummary struct {
	// RunID uniquely identifies the batch run in logs and reports.
	RunID string

	Processed int
	Skipped   int
	Failed    int

	ChecksRun    int
	ChecksPassed int
	ChecksFailed int

	// Institutes lists the distinct institute IDs seen, sorted.
	Institutes []string

	Duration time.Duration
}

// PassRate returns ChecksPassed / ChecksRun, or 0 when no checks ran.
func (s BatchSummary) PassRate() float64 {
	if s.ChecksRun == 0 {
		return 0
	}
	return float64(s.ChecksPassed) / float64(s.ChecksRun)
}

// CacheStatus describes the cache state of one (institute, document) pair.
type CacheStatus struct {
	Cached      bool
	Fingerprint domain.Fingerprint
	// Version is the assigned version number, 0 when not cached.
	Version int
}
