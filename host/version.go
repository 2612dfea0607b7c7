package host

import "strings"

// Version is an RDFa language version tag. Versions compare lexically,
// which orders "1.0" before "1.1" and any later "1.x".
type Version string

const (
	Version10 Version = "1.0"
	Version11 Version = "1.1"

	// CurrentVersion is the version assumed when nothing in the
	// document or configuration says otherwise.
	CurrentVersion = Version11
)

// AtLeast reports whether v is the given version or later.
func (v Version) AtLeast(w Version) bool {
	return v >= w
}

// DetectVersion inspects a root @version attribute value and returns
// the version it declares, or fallback when the value names no known
// version. Values look like "XHTML+RDFa 1.0".
func DetectVersion(versionAttr string, fallback Version) Version {
	switch {
	case strings.Contains(versionAttr, "RDFa 1.0"):
		return Version10
	case strings.Contains(versionAttr, "RDFa 1.1"):
		return Version11
	default:
		return fallback
	}
}
