package clustermatch

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// HierarchyConfig controls SingleLinkage.
type HierarchyConfig struct {
	// Metric measures distances between points. Default: EuclideanMetric.
	Metric DistanceMetric

	// Workers is the number of goroutines used for pairwise distances.
	// 0 means runtime.NumCPU().
	Workers int

	// Logger receives warnings about disconnected data. Default: zap.NewNop().
	Logger *zap.Logger
}

func (cfg *HierarchyConfig) applyDefaults() {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// HierarchicalNode is one node of a cluster tree. Leaves hold item IDs;
// inner nodes hold children and the distance at which they merged.
type HierarchicalNode struct {
	ID       int
	Distance float64
	Children []*HierarchicalNode
	Items    []string
}

// IsLeaf reports whether the node has no children.
func (n *HierarchicalNode) IsLeaf() bool { return len(n.Children) == 0 }

// AllItems returns the item IDs of every leaf under n, left to right.
func (n *HierarchicalNode) AllItems() []string {
	if n.IsLeaf() {
		return append([]string(nil), n.Items...)
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.AllItems()...)
	}
	return out
}

// HierarchicalClustering is a binary cluster tree over a set of items.
type HierarchicalClustering struct {
	Root *HierarchicalNode

	// Dendrogram holds the merges in scipy linkage format, ascending by
	// distance.
	Dendrogram [][4]float64

	// IDs[i] is the item at leaf i.
	IDs []string
}

// SingleLinkage builds a single-linkage cluster tree: pairwise distances,
// a minimum spanning tree, then one merge per tree edge in weight order.
// ids names each row; nil ids are replaced by the row index.
func SingleLinkage(data [][]float64, ids []string, cfg HierarchyConfig) (*HierarchicalClustering, error) {
	cfg.applyDefaults()
	ids, err := resolveIDs(ids, len(data))
	if err != nil {
		return nil, err
	}
	flat, dims, err := flatten(data)
	if err != nil {
		return nil, err
	}
	n := len(data)

	dist := ComputePairwiseDistancesParallel(flat, n, dims, cfg.Metric, cfg.Workers)
	edges := PrimMST(dist, n, cfg.Logger)
	return BuildHierarchy(Dendrogram(edges, n), ids)
}

// BuildHierarchy turns dendrogram rows into a node tree. Row i must merge
// two existing roots into node len(ids)+i.
func BuildHierarchy(dendrogram [][4]float64, ids []string) (*HierarchicalClustering, error) {
	n := len(ids)
	hc := &HierarchicalClustering{Dendrogram: dendrogram, IDs: ids}
	if n == 0 {
		return hc, nil
	}
	if len(dendrogram) != n-1 {
		return nil, fmt.Errorf("clustermatch: dendrogram has %d rows, want %d for %d items", len(dendrogram), n-1, n)
	}

	nodes := make([]*HierarchicalNode, 2*n-1)
	for i, id := range ids {
		nodes[i] = &HierarchicalNode{ID: i, Items: []string{id}}
	}
	for i, row := range dendrogram {
		id := n + i
		left, right := int(row[0]), int(row[1])
		if left < 0 || left >= id || right < 0 || right >= id || nodes[left] == nil || nodes[right] == nil {
			return nil, fmt.Errorf("clustermatch: dendrogram row %d references unknown node (%d, %d)", i, left, right)
		}
		nodes[id] = &HierarchicalNode{
			ID:       id,
			Distance: row[2],
			Children: []*HierarchicalNode{nodes[left], nodes[right]},
		}
		nodes[left], nodes[right] = nil, nil
	}
	hc.Root = nodes[2*n-2]
	return hc, nil
}

// Flatten cuts the tree into exactly k flat clusters by undoing the k-1
// highest merges. Cluster indices follow the first appearance of each
// cluster in item order.
func (hc *HierarchicalClustering) Flatten(k int) (*FlatClustering, error) {
	n := len(hc.IDs)
	if k < 1 || k > n {
		return nil, invalidConfig("k must be in 1..%d, got %d", n, k)
	}
	return hc.replay(n - k)
}

// FlattenDistance keeps every merge at or below threshold and returns the
// resulting flat clustering.
func (hc *HierarchicalClustering) FlattenDistance(threshold float64) (*FlatClustering, error) {
	merges := 0
	for merges < len(hc.Dendrogram) && hc.Dendrogram[merges][2] <= threshold {
		merges++
	}
	return hc.replay(merges)
}

func (hc *HierarchicalClustering) replay(merges int) (*FlatClustering, error) {
	n := len(hc.IDs)
	uf := NewUnionFind(n)
	for _, row := range hc.Dendrogram[:merges] {
		uf.Merge(int(row[0]), int(row[1]))
	}

	clusterOf := make(map[int]int)
	assign := make([]int, n)
	for i := 0; i < n; i++ {
		root := uf.Find(i)
		c, ok := clusterOf[root]
		if !ok {
			c = len(clusterOf)
			clusterOf[root] = c
		}
		assign[i] = c
	}
	return FromAssignments(hc.IDs, assign)
}
