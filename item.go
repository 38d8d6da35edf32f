package clustermatch

import (
	"strconv"
	"strings"
)

// ClusterAttribute is the attribute name reported in errors about an item's
// cluster reference.
const ClusterAttribute = "cluster"

const clusterNamePrefix = "cluster_"

// Item is a single labelled example flowing through the matcher.
type Item struct {
	ID string `json:"id" yaml:"id"`

	// Features is the numeric vector used by the centroid and hierarchical
	// clusterers. The matcher ignores it.
	Features []float64 `json:"features,omitempty" yaml:"features,omitempty"`

	// Label is the true nominal label.
	Label string `json:"label" yaml:"label"`

	// Cluster is the assigned cluster name, e.g. "cluster_3".
	Cluster string `json:"cluster" yaml:"cluster"`

	// Membership holds soft cluster memberships (length K) for fuzzy
	// clusterings. Nil for hard clusterings.
	Membership []float64 `json:"membership,omitempty" yaml:"membership,omitempty"`

	// Prediction and Confidence are written by WriteLabels and
	// WriteFuzzyLabels.
	Prediction string             `json:"prediction,omitempty" yaml:"prediction,omitempty"`
	Confidence map[string]float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// ClusterName returns the canonical name for cluster index i.
func ClusterName(i int) string {
	return clusterNamePrefix + strconv.Itoa(i)
}

// ParseClusterName parses a cluster name of the form "cluster_<index>". A
// bare index such as "3" is also accepted. Signs and any other prefix are
// rejected.
func ParseClusterName(name string) (int, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(name), clusterNamePrefix)
	if digits == "" {
		return 0, &ClusterRefError{Attribute: ClusterAttribute, Value: name, Reason: "missing index"}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, &ClusterRefError{Attribute: ClusterAttribute, Value: name, Reason: "want cluster_<index>"}
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &ClusterRefError{Attribute: ClusterAttribute, Value: name, Reason: err.Error()}
	}
	return idx, nil
}

// clusterIndex resolves item's cluster reference and checks it against k.
func clusterIndex(item *Item, k int) (int, error) {
	idx, err := ParseClusterName(item.Cluster)
	if err != nil {
		refErr := err.(*ClusterRefError)
		refErr.ItemID = item.ID
		return 0, refErr
	}
	if idx < 0 || idx >= k {
		return 0, &ClusterRefError{
			Attribute: ClusterAttribute,
			ItemID:    item.ID,
			Value:     item.Cluster,
			Reason:    "index " + strconv.Itoa(idx) + " outside 0.." + strconv.Itoa(k-1),
		}
	}
	return idx, nil
}
