package domain

import (
	"path/filepath"
	"strings"
)

// DocumentRef describes one document handed to the processor.
// Only Name and Path are required; BusinessRef and ReportingYear are
// optional identifiers that pass through to result stamping unchanged.
type DocumentRef struct {
	// InstituteID is the regulated institute the document belongs to.
	// When empty, it is derived from Name via InstituteFromName.
	InstituteID string

	// Name is the document's file name.
	Name string

	// Path is the local filesystem location of the document.
	Path string

	// BusinessRef is an optional business case number.
	BusinessRef string

	// ReportingYear is the optional reporting year, 0 when unknown.
	ReportingYear int
}

// InstituteFromName derives an institute identifier from a file name:
// the base name up to the first underscore, dash or space.
func InstituteFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	for _, sep := range []string{"_", "-", " "} {
		if before, _, found := strings.Cut(base, sep); found {
			return before
		}
	}
	return base
}
