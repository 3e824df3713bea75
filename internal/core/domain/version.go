package domain

// VersionRecord is one row of the persisted version log: the version number
// assigned the first time a fingerprint was seen for an institute. Records
// are append-only; they are never deleted or rewritten.
type VersionRecord struct {
	InstituteID string
	Fingerprint Fingerprint
	Version     int
}

// FileVersion is the version identity stamped onto a processed document.
type FileVersion struct {
	InstituteID string
	FileName    string
	Fingerprint Fingerprint
	Version     int
}
