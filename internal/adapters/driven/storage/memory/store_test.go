package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

func fingerprintOf(seed string) domain.Fingerprint {
	return domain.Fingerprint(seed + strings.Repeat("0", 64-len(seed)))
}

func result(institute string, fp domain.Fingerprint, version int, check string) domain.CheckResult {
	return domain.CheckResult{
		InstituteID: institute,
		Fingerprint: fp,
		Version:     version,
		CheckName:   check,
		Passed:      true,
	}
}

func TestWriteResultsAppends(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	n, err := store.WriteResults(ctx, []domain.CheckResult{
		result("A", fingerprintOf("aa"), 1, "has_sheets"),
		result("A", fingerprintOf("aa"), 1, "no_merged_cells"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, store.All(), 2)
}

func TestExistingVersionsDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	fpX := fingerprintOf("aa")
	fpY := fingerprintOf("bb")
	_, err := store.WriteResults(ctx, []domain.CheckResult{
		result("A", fpX, 1, "has_sheets"),
		result("A", fpX, 1, "no_merged_cells"),
		result("A", fpY, 2, "has_sheets"),
		result("B", fpX, 1, "has_sheets"),
	})
	require.NoError(t, err)

	records, err := store.ExistingVersions(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestResultsForInstituteFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.WriteResults(ctx, []domain.CheckResult{
		result("A", fingerprintOf("aa"), 1, "has_sheets"),
		result("A", fingerprintOf("bb"), 2, "has_sheets"),
		result("B", fingerprintOf("aa"), 1, "has_sheets"),
	})
	require.NoError(t, err)

	all, err := store.ResultsForInstitute(ctx, "A", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	v1, err := store.ResultsForInstitute(ctx, "A", 1)
	require.NoError(t, err)
	require.Len(t, v1, 1)
	assert.Equal(t, 1, v1[0].Version)

	none, err := store.ResultsForInstitute(ctx, "C", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
