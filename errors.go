package clustermatch

import (
	"errors"
	"fmt"
)

var (
	// ErrCardinalityMismatch is returned when the number of distinct label
	// values differs from the number of clusters.
	ErrCardinalityMismatch = errors.New("clustermatch: label cardinality does not match cluster count")

	// ErrMalformedClusterRef is returned when an item's cluster reference
	// cannot be parsed or falls outside 0..K-1.
	ErrMalformedClusterRef = errors.New("clustermatch: malformed cluster reference")

	ErrNotSquare   = errors.New("clustermatch: matrix is not square")
	ErrEmptyMatrix = errors.New("clustermatch: matrix is empty")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("clustermatch: invalid config")
)

// CardinalityError reports how many distinct labels were seen against the
// expected cluster count.
type CardinalityError struct {
	Clusters int
	Labels   []string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("clustermatch: %d clusters but %d distinct label values %q",
		e.Clusters, len(e.Labels), e.Labels)
}

func (e *CardinalityError) Unwrap() error { return ErrCardinalityMismatch }

// ClusterRefError names the item and attribute holding a cluster reference
// that could not be resolved to a valid index.
type ClusterRefError struct {
	Attribute string
	ItemID    string
	Value     string
	Reason    string
}

func (e *ClusterRefError) Error() string {
	return fmt.Sprintf("clustermatch: attribute %q of item %q: cannot use %q as cluster: %s",
		e.Attribute, e.ItemID, e.Value, e.Reason)
}

func (e *ClusterRefError) Unwrap() error { return ErrMalformedClusterRef }

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
