// Package reporting renders batch summaries for operators: a text banner
// for the terminal and a JSON report file for downstream tooling.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/orsaqc/internal/core/ports/driving"
)

// WriteBanner prints the human-readable processing summary.
func WriteBanner(w io.Writer, summary driving.BatchSummary) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "PROCESSING SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Run ID:            %s\n", summary.RunID)
	fmt.Fprintf(w, "Files processed:   %d\n", summary.Processed)
	fmt.Fprintf(w, "Files skipped:     %d\n", summary.Skipped)
	fmt.Fprintf(w, "Files failed:      %d\n", summary.Failed)
	fmt.Fprintf(w, "Checks executed:   %d\n", summary.ChecksRun)
	fmt.Fprintf(w, "Checks passed:     %d\n", summary.ChecksPassed)
	fmt.Fprintf(w, "Checks failed:     %d\n", summary.ChecksFailed)
	fmt.Fprintf(w, "Pass rate:         %.1f%%\n", summary.PassRate()*100)
	fmt.Fprintf(w, "Institutes:        %s\n", strings.Join(summary.Institutes, ", "))
	fmt.Fprintf(w, "Duration:          %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintln(w, line)
}

// jsonReport is the serialised form of a batch summary.
type jsonReport struct {
	RunID        string   `json:"run_id"`
	GeneratedAt  string   `json:"generated_at"`
	Processed    int      `json:"files_processed"`
	Skipped      int      `json:"files_skipped"`
	Failed       int      `json:"files_failed"`
	ChecksRun    int      `json:"checks_run"`
	ChecksPassed int      `json:"checks_passed"`
	ChecksFailed int      `json:"checks_failed"`
	PassRate     float64  `json:"pass_rate"`
	Institutes   []string `json:"institutes"`
	DurationMS   int64    `json:"duration_ms"`
}

// WriteJSON writes the summary as a JSON report file.
func WriteJSON(path string, summary driving.BatchSummary) error {
	report := jsonReport{
		RunID:        summary.RunID,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Processed:    summary.Processed,
		Skipped:      summary.Skipped,
		Failed:       summary.Failed,
		ChecksRun:    summary.ChecksRun,
		ChecksPassed: summary.ChecksPassed,
		ChecksFailed: summary.ChecksFailed,
		PassRate:     summary.PassRate(),
		Institutes:   summary.Institutes,
		DurationMS:   summary.Duration.Milliseconds(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
