package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/orsaqc/internal/checks"
	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driving"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// Ensure DocumentProcessor implements the interface.
var _ driving.Processor = (*DocumentProcessor)(nil)

// DocumentProcessor orchestrates the pipeline for one document:
// fingerprint, cache decision, version assignment, parsing, check
// execution, result stamping and persistence. Batch runs isolate
// per-document failures so one broken document never stops the rest.
type DocumentProcessor struct {
	reader      driven.WorkbookReader
	sink        driven.ResultSink
	registry    *checks.Registry
	fingerprint *Fingerprinter
	versions    *VersionRegistry
}

// NewDocumentProcessor wires the processor and rehydrates the version
// registry from the sink's persisted version log.
func NewDocumentProcessor(
	ctx context.Context,
	reader driven.WorkbookReader,
	sink driven.ResultSink,
	registry *checks.Registry,
) (*DocumentProcessor, error) {
	p := &DocumentProcessor{
		reader:      reader,
		sink:        sink,
		registry:    registry,
		fingerprint: NewFingerprinter(),
		versions:    NewVersionRegistry(),
	}

	records, err := sink.ExistingVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing versions: %w", err)
	}
	p.versions.Load(records)

	return p, nil
}

// Versions exposes the version registry for cache inspection.
func (p *DocumentProcessor) Versions() *VersionRegistry {
	return p.versions
}

// ShouldProcess decides whether the document at path needs processing.
// Force always processes; otherwise the file is fingerprinted and skipped
// when its content is already cached for the institute.
func (p *DocumentProcessor) ShouldProcess(
	ctx context.Context,
	instituteID, path string,
	force bool,
) (bool, string, error) {
	if force {
		return true, "forced", nil
	}

	fp, err := p.fingerprint.FileFingerprint(path)
	if err != nil {
		return false, "", err
	}

	if p.versions.IsCached(instituteID, fp) {
		return false, "already processed", nil
	}
	return true, "new content", nil
}

// Process runs the full pipeline for one document and returns the version
// identity and the stamped results. Document-level failures surface as
// errors: domain.ErrNotFound for a missing file, domain.ErrFormat for an
// unparsable one, domain.ErrPersistence when the sink rejects the write.
func (p *DocumentProcessor) Process(
	ctx context.Context,
	instituteID string,
	ref domain.DocumentRef,
) (domain.FileVersion, []domain.CheckResult, error) {
	log := logging.L()
	log.Infow("processing document", "institute", instituteID, "file", ref.Name)

	fp, err := p.fingerprint.FileFingerprint(ref.Path)
	if err != nil {
		return domain.FileVersion{}, nil, err
	}

	version := domain.FileVersion{
		InstituteID: instituteID,
		FileName:    ref.Name,
		Fingerprint: fp,
		Version:     p.versions.LookupOrAssign(instituteID, fp),
	}

	wb, err := p.reader.Open(ctx, ref.Path)
	if err != nil {
		return domain.FileVersion{}, nil, fmt.Errorf("opening %s: %w", ref.Path, err)
	}
	defer wb.Close()

	// One shared timestamp for the whole result batch of this document.
	processedAt := time.Now().UTC()

	outcomes := checks.RunAll(p.registry, wb)
	results := make([]domain.CheckResult, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, domain.CheckResult{
			InstituteID:   instituteID,
			FileName:      version.FileName,
			Fingerprint:   version.Fingerprint,
			Version:       version.Version,
			CheckName:     o.Name,
			Description:   o.Outcome.Description,
			Passed:        o.Outcome.Passed,
			Value:         o.Outcome.Value,
			ProcessedAt:   processedAt,
			BusinessRef:   ref.BusinessRef,
			ReportingYear: ref.ReportingYear,
		})

		if o.Outcome.Passed {
			log.Debugw("check passed", "check", o.Name, "description", o.Outcome.Description)
		} else {
			log.Warnw("check failed", "check", o.Name, "description", o.Outcome.Description)
		}
	}

	if _, err := p.sink.WriteResults(ctx, results); err != nil {
		return domain.FileVersion{}, nil, fmt.Errorf("%w: writing results for %s: %v",
			domain.ErrPersistence, ref.Name, err)
	}

	log.Infow("document processed",
		"institute", instituteID,
		"file", ref.Name,
		"version", version.Version,
		"checks", len(results),
		"passed", countPassed(results))

	return version, results, nil
}

// ProcessBatch processes every document, isolating per-document failures.
// With opts.Workers > 1 documents run concurrently through a bounded
// worker pool; version assignment stays serialized inside the registry.
func (p *DocumentProcessor) ProcessBatch(
	ctx context.Context,
	refs []domain.DocumentRef,
	opts driving.BatchOptions,
) driving.BatchSummary {
	started := time.Now()
	summary := driving.BatchSummary{RunID: uuid.New().String()}
	institutes := make(map[string]struct{})

	log := logging.L()
	log.Infow("starting batch",
		"run_id", summary.RunID, "documents", len(refs), "force", opts.Force, "workers", opts.Workers)

	var mu sync.Mutex
	processOne := func(ref domain.DocumentRef) {
		instituteID := ref.InstituteID
		if instituteID == "" {
			instituteID = domain.InstituteFromName(ref.Name)
		}

		mu.Lock()
		institutes[instituteID] = struct{}{}
		mu.Unlock()

		ok, reason, err := p.ShouldProcess(ctx, instituteID, ref.Path, opts.Force)
		if err != nil {
			log.Errorw("cannot evaluate document", "file", ref.Name, "error", err)
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			return
		}
		if !ok {
			log.Infow("skipping document", "file", ref.Name, "reason", reason)
			mu.Lock()
			summary.Skipped++
			mu.Unlock()
			return
		}

		_, results, err := p.Process(ctx, instituteID, ref)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Errorw("failed to process document", "file", ref.Name, "error", err)
			summary.Failed++
			return
		}
		summary.Processed++
		summary.ChecksRun += len(results)
		passed := countPassed(results)
		summary.ChecksPassed += passed
		summary.ChecksFailed += len(results) - passed
	}

	if opts.Workers > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for _, ref := range refs {
			ref := ref
			g.Go(func() error {
				processOne(ref)
				return nil
			})
		}
		// Workers recover their own documents' failures; the group never errors.
		_ = g.Wait()
	} else {
		for _, ref := range refs {
			processOne(ref)
		}
	}

	summary.Institutes = sortedKeys(institutes)
	summary.Duration = time.Since(started)

	log.Infow("batch complete",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"checks_run", summary.ChecksRun,
		"pass_rate", summary.PassRate(),
		"duration", summary.Duration)

	return summary
}

// CacheStatus reports the cache state of one (institute, document) pair
// without processing it.
func (p *DocumentProcessor) CacheStatus(
	ctx context.Context,
	instituteID, path string,
) (driving.CacheStatus, error) {
	fp, err := p.fingerprint.FileFingerprint(path)
	if err != nil {
		return driving.CacheStatus{}, err
	}

	status := driving.CacheStatus{Fingerprint: fp}
	if version, ok := p.versions.Version(instituteID, fp); ok {
		status.Cached = true
		status.Version = version
	}
	return status, nil
}

// InvalidateCache drops cached version state for one institute, or for all
// when instituteID is empty.
func (p *DocumentProcessor) InvalidateCache(instituteID string) {
	p.versions.Invalidate(instituteID)
}

func countPassed(results []domain.CheckResult) int {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return passed
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
