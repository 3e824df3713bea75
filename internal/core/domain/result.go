package domain

import "time"

// Outcome is the tagged result of evaluating a single check against a
// workbook: a pass/fail flag, an optional scalar value and a human-readable
// description. Rule errors never surface as Go errors above the runner;
// they are converted into a failing Outcome.
type Outcome struct {
	Passed      bool
	Value       *float64
	Description string
}

// Scalar is a convenience constructor for optional outcome values.
func Scalar(v float64) *float64 {
	return &v
}

// CheckResult is one row of the quality-control output: a single check
// evaluated against a single document version. Immutable once produced;
// a new fingerprint always yields a new version and a disjoint result set.
type CheckResult struct {
	InstituteID   string
	FileName      string
	Fingerprint   Fingerprint
	Version       int
	CheckName     string
	Description   string
	Passed        bool
	Value         *float64
	ProcessedAt   time.Time
	BusinessRef   string
	ReportingYear int
}
