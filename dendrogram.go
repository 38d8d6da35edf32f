package clustermatch

import "sort"

// Dendrogram converts MST edges into a single-linkage dendrogram in scipy
// linkage format. Each row is [left, right, distance, size]; the node
// created by row i has ID n+i.
func Dendrogram(mstEdges [][3]float64, n int) [][4]float64 {
	if len(mstEdges) == 0 {
		return nil
	}

	sorted := make([][3]float64, len(mstEdges))
	copy(sorted, mstEdges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][2] < sorted[j][2]
	})

	uf := NewUnionFind(n)
	rows := make([][4]float64, 0, len(sorted))
	for _, edge := range sorted {
		a := uf.Find(int(edge[0]))
		b := uf.Find(int(edge[1]))
		size := uf.Size(a) + uf.Size(b)
		rows = append(rows, [4]float64{float64(a), float64(b), edge[2], float64(size)})
		uf.Merge(a, b)
	}
	return rows
}
