package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

// VersionRegistry maps (institute, fingerprint) pairs to version numbers.
// It is the in-memory materialisation of the append-only version log and
// assigns new monotonic numbers for unseen fingerprints. A single mutex
// serialises assignment, so concurrent first-sightings of two fingerprints
// for the same institute can never race to the same version number.
type VersionRegistry struct {
	mu       sync.Mutex
	versions map[string]map[domain.Fingerprint]int
}

// NewVersionRegistry creates an empty registry.
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{
		versions: make(map[string]map[domain.Fingerprint]int),
	}
}

// Load replaces the registry state with the given records. Later records
// for the same (institute, fingerprint) key overwrite earlier ones; callers
// must supply a consistent record set.
func (r *VersionRegistry) Load(records []domain.VersionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions = make(map[string]map[domain.Fingerprint]int)
	for _, rec := range records {
		byHash, ok := r.versions[rec.InstituteID]
		if !ok {
			byHash = make(map[domain.Fingerprint]int)
			r.versions[rec.InstituteID] = byHash
		}
		byHash[rec.Fingerprint] = rec.Version
	}
	logging.L().Infow("loaded version records", "count", len(records))
}

// LookupOrAssign returns the version already assigned to the fingerprint
// for this institute, or assigns max(existing)+1 (1 for an unseen
// institute), stores it and returns it.
func (r *VersionRegistry) LookupOrAssign(instituteID string, fp domain.Fingerprint) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	byHash, ok := r.versions[instituteID]
	if !ok {
		byHash = make(map[domain.Fingerprint]int)
		r.versions[instituteID] = byHash
	}

	if v, ok := byHash[fp]; ok {
		return v
	}

	next := 1
	for _, v := range byHash {
		if v >= next {
			next = v + 1
		}
	}
	byHash[fp] = next
	logging.L().Debugw("assigned new version",
		"institute", instituteID, "fingerprint", fp.Short(), "version", next)
	return next
}

// IsCached reports whether the (institute, fingerprint) pair is known,
// i.e. that exact content has already been processed for that institute.
func (r *VersionRegistry) IsCached(instituteID string, fp domain.Fingerprint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	byHash, ok := r.versions[instituteID]
	if !ok {
		return false
	}
	_, ok = byHash[fp]
	return ok
}

// Version returns the assigned version for the pair, if any.
func (r *VersionRegistry) Version(instituteID string, fp domain.Fingerprint) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.versions[instituteID][fp]
	return v, ok
}

// LatestVersion returns the highest version assigned to an institute,
// false when the institute has no versions.
func (r *VersionRegistry) LatestVersion(instituteID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byHash := r.versions[instituteID]
	if len(byHash) == 0 {
		return 0, false
	}
	latest := 0
	for _, v := range byHash {
		if v > latest {
			latest = v
		}
	}
	return latest, true
}

// Invalidate drops cached state for one institute, or for all institutes
// when instituteID is empty. Used for manual cache-busting only.
func (r *VersionRegistry) Invalidate(instituteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if instituteID == "" {
		r.versions = make(map[string]map[domain.Fingerprint]int)
		logging.L().Infow("invalidated entire version cache")
		return
	}
	delete(r.versions, instituteID)
	logging.L().Infow("invalidated version cache", "institute", instituteID)
}

// Snapshot returns the registry contents as a record list, sorted by
// institute then version. Loading a snapshot into a fresh registry
// reproduces identical behaviour.
func (r *VersionRegistry) Snapshot() []domain.VersionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []domain.VersionRecord
	for institute, byHash := range r.versions {
		for fp, v := range byHash {
			records = append(records, domain.VersionRecord{
				InstituteID: institute,
				Fingerprint: fp,
				Version:     v,
			})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].InstituteID != records[j].InstituteID {
			return records[i].InstituteID < records[j].InstituteID
		}
		return records[i].Version < records[j].Version
	})
	return records
}
