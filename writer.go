package clustermatch

import "fmt"

// Mapping is the cluster-to-label bijection produced by one matcher run.
// It is read-only once built.
type Mapping struct {
	// Assignment[c] is the contingency column (label index) for cluster c.
	Assignment []int
	// Labels[c] is the label value mapped to cluster c.
	Labels []string
	Table  *ContingencyTable

	clusterOf map[string]int
}

func newMapping(table *ContingencyTable, assignment []int) *Mapping {
	m := &Mapping{
		Assignment: assignment,
		Labels:     make([]string, len(assignment)),
		Table:      table,
		clusterOf:  make(map[string]int, len(assignment)),
	}
	for c, l := range assignment {
		m.Labels[c] = table.Labels[l]
		m.clusterOf[table.Labels[l]] = c
	}
	return m
}

// K returns the number of clusters.
func (m *Mapping) K() int { return len(m.Labels) }

// Label returns the label value mapped to cluster c.
func (m *Mapping) Label(c int) string { return m.Labels[c] }

// ClusterFor returns the cluster mapped to label.
func (m *Mapping) ClusterFor(label string) (int, bool) {
	c, ok := m.clusterOf[label]
	return c, ok
}

// WriteLabels sets each item's Prediction to the label mapped to its
// cluster and gives that label confidence 1. Every other label gets 0.
// Every cluster reference is checked before any item is written.
func WriteLabels(items []Item, m *Mapping) error {
	clusters, err := resolveClusters(items, m.K())
	if err != nil {
		return err
	}
	for i, c := range clusters {
		conf := make(map[string]float64, m.K())
		for _, label := range m.Labels {
			conf[label] = 0
		}
		conf[m.Labels[c]] = 1
		items[i].Prediction = m.Labels[c]
		items[i].Confidence = conf
	}
	return nil
}

// WriteFuzzyLabels sets each item's Prediction like WriteLabels and sets
// the confidence of label L to the item's membership in the cluster mapped
// to L. Items are left untouched unless every one of them has a valid
// cluster reference and K memberships.
func WriteFuzzyLabels(items []Item, m *Mapping) error {
	k := m.K()
	clusters, err := resolveClusters(items, k)
	if err != nil {
		return err
	}
	for i := range items {
		if len(items[i].Membership) != k {
			return fmt.Errorf("clustermatch: item %q has %d memberships, want %d",
				items[i].ID, len(items[i].Membership), k)
		}
	}
	for i, c := range clusters {
		conf := make(map[string]float64, k)
		for cluster, label := range m.Labels {
			conf[label] = items[i].Membership[cluster]
		}
		items[i].Prediction = m.Labels[c]
		items[i].Confidence = conf
	}
	return nil
}

func resolveClusters(items []Item, k int) ([]int, error) {
	clusters := make([]int, len(items))
	for i := range items {
		c, err := clusterIndex(&items[i], k)
		if err != nil {
			return nil, err
		}
		clusters[i] = c
	}
	return clusters, nil
}
