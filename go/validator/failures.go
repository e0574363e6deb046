package validator

import (
	"sort"
	"strings"
)

// FailureKind names one category of comparison failure.
type FailureKind string

const (
	// DimensionFailure means the image shapes differed beyond the pixel
	// tolerance.
	DimensionFailure FailureKind = "image dimensions"
	// DifferenceFailure means a difference-histogram bucket exceeded the
	// allowed count.
	DifferenceFailure FailureKind = "image differences"
)

// FailureSet accumulates the failure kinds observed for one file pair. A
// non-empty set fails the pair.
type FailureSet map[FailureKind]bool

// Add records a failure kind.
func (s FailureSet) Add(kind FailureKind) {
	s[kind] = true
}

// Empty returns true if no failures were recorded.
func (s FailureSet) Empty() bool {
	return len(s) == 0
}

// String returns the recorded kinds, sorted and comma-joined.
func (s FailureSet) String() string {
	kinds := make([]string, 0, len(s))
	for k := range s {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ", ")
}
