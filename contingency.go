package clustermatch

// ContingencyTable cross-tabulates cluster index against true label.
// Counts[c][l] is the number of items in cluster c whose label is Labels[l].
type ContingencyTable struct {
	Counts [][]int
	Labels []string

	labelIndex map[string]int
}

// BuildContingency scans items once and counts (cluster, label) pairs.
// Label indices follow the order in which each distinct label is first seen.
// It fails with a *CardinalityError if the number of distinct labels is not
// k, and with a *ClusterRefError if an item's cluster cannot be resolved.
func BuildContingency(items []Item, k int) (*ContingencyTable, error) {
	if k < 1 {
		return nil, invalidConfig("cluster count must be >= 1, got %d", k)
	}

	clusters := make([]int, len(items))
	labelIndex := make(map[string]int, k)
	var labels []string
	for i := range items {
		c, err := clusterIndex(&items[i], k)
		if err != nil {
			return nil, err
		}
		clusters[i] = c
		if _, ok := labelIndex[items[i].Label]; !ok {
			labelIndex[items[i].Label] = len(labels)
			labels = append(labels, items[i].Label)
		}
	}

	if len(labels) != k {
		return nil, &CardinalityError{Clusters: k, Labels: labels}
	}

	counts := make([][]int, k)
	for c := range counts {
		counts[c] = make([]int, k)
	}
	for i := range items {
		counts[clusters[i]][labelIndex[items[i].Label]]++
	}

	return &ContingencyTable{Counts: counts, Labels: labels, labelIndex: labelIndex}, nil
}

// K returns the table dimension.
func (t *ContingencyTable) K() int { return len(t.Counts) }

// LabelIndex returns the column holding label.
func (t *ContingencyTable) LabelIndex(label string) (int, bool) {
	i, ok := t.labelIndex[label]
	return i, ok
}

// RowSums returns the number of items per cluster.
func (t *ContingencyTable) RowSums() []int {
	sums := make([]int, len(t.Counts))
	for i, row := range t.Counts {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}

// ColSums returns the number of items per label.
func (t *ContingencyTable) ColSums() []int {
	sums := make([]int, len(t.Labels))
	for _, row := range t.Counts {
		for j, v := range row {
			sums[j] += v
		}
	}
	return sums
}

// Total returns the number of items counted.
func (t *ContingencyTable) Total() int {
	total := 0
	for _, s := range t.RowSums() {
		total += s
	}
	return total
}
