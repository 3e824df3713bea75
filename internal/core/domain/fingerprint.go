package domain

// Fingerprint is the lowercase hex SHA-256 digest of a document's exact
// byte content. Identical bytes always produce the same fingerprint, so
// it serves as the content address for caching and version assignment.
type Fingerprint string

// Short returns a truncated form suitable for log lines.
func (f Fingerprint) Short() string {
	if len(f) <= 8 {
		return string(f)
	}
	return string(f[:8])
}

// Valid reports whether the fingerprint has the expected SHA-256 hex length.
func (f Fingerprint) Valid() bool {
	if len(f) != 64 {
		return false
	}
	for _, c := range f {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
