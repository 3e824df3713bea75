package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orsaqc/internal/core/ports/driving"
)

func sampleSummary() driving.BatchSummary {
	return driving.BatchSummary{
		RunID:        "run-123",
		Processed:    3,
		Skipped:      1,
		Failed:       1,
		ChecksRun:    24,
		ChecksPassed: 18,
		ChecksFailed: 6,
		Institutes:   []string{"A", "B"},
		Duration:     1500 * time.Millisecond,
	}
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	WriteBanner(&buf, sampleSummary())

	out := buf.String()
	assert.Contains(t, out, "PROCESSING SUMMARY")
	assert.Contains(t, out, "Run ID:            run-123")
	assert.Contains(t, out, "Files processed:   3")
	assert.Contains(t, out, "Files skipped:     1")
	assert.Contains(t, out, "Files failed:      1")
	assert.Contains(t, out, "Pass rate:         75.0%")
	assert.Contains(t, out, "Institutes:        A, B")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "run-123", report["run_id"])
	assert.Equal(t, float64(3), report["files_processed"])
	assert.Equal(t, float64(24), report["checks_run"])
	assert.Equal(t, 0.75, report["pass_rate"])
	assert.Equal(t, float64(1500), report["duration_ms"])
	assert.NotEmpty(t, report["generated_at"])
}
