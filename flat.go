package clustermatch

import "fmt"

// Cluster is one group of a flat clustering.
type Cluster struct {
	Index int
	Items []string
}

// FlatClustering is a hard partition of item IDs into K clusters.
// It is populated once and treated as read-only afterwards.
type FlatClustering struct {
	Clusters []Cluster

	// index maps an item ID to its cluster. Repeated IDs always land in
	// the cluster of their first occurrence.
	index map[string]int
}

// NewFlatClustering returns an empty clustering with k clusters.
func NewFlatClustering(k int) *FlatClustering {
	clusters := make([]Cluster, k)
	for i := range clusters {
		clusters[i].Index = i
	}
	return &FlatClustering{Clusters: clusters, index: make(map[string]int)}
}

// FromAssignments builds a clustering where ids[i] belongs to cluster
// assign[i]. K is one more than the largest index. Negative indices
// (noise) are skipped.
func FromAssignments(ids []string, assign []int) (*FlatClustering, error) {
	if len(ids) != len(assign) {
		return nil, fmt.Errorf("clustermatch: %d ids but %d assignments", len(ids), len(assign))
	}
	k := 0
	for _, a := range assign {
		if a+1 > k {
			k = a + 1
		}
	}
	fc := NewFlatClustering(k)
	for i, a := range assign {
		if a < 0 {
			continue
		}
		if err := fc.Add(a, ids[i]); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

// K returns the number of clusters.
func (fc *FlatClustering) K() int { return len(fc.Clusters) }

// Add places id into cluster index. An ID already present in a different
// cluster is rejected.
func (fc *FlatClustering) Add(index int, id string) error {
	if index < 0 || index >= len(fc.Clusters) {
		return fmt.Errorf("clustermatch: cluster index %d outside 0..%d", index, len(fc.Clusters)-1)
	}
	if prev, ok := fc.index[id]; ok && prev != index {
		return fmt.Errorf("clustermatch: item %q already in cluster %d, cannot add to %d", id, prev, index)
	}
	fc.index[id] = index
	fc.Clusters[index].Items = append(fc.Clusters[index].Items, id)
	return nil
}

// ClusterOf returns the cluster holding id.
func (fc *FlatClustering) ClusterOf(id string) (int, bool) {
	c, ok := fc.index[id]
	return c, ok
}

// Sizes returns the member count of every cluster.
func (fc *FlatClustering) Sizes() []int {
	sizes := make([]int, len(fc.Clusters))
	for i, c := range fc.Clusters {
		sizes[i] = len(c.Items)
	}
	return sizes
}

// Apply writes the cluster name of every item into items[i].Cluster.
func (fc *FlatClustering) Apply(items []Item) error {
	for i := range items {
		c, ok := fc.index[items[i].ID]
		if !ok {
			return &ClusterRefError{
				Attribute: ClusterAttribute,
				ItemID:    items[i].ID,
				Reason:    "item is not a member of any cluster",
			}
		}
		items[i].Cluster = ClusterName(c)
	}
	return nil
}
