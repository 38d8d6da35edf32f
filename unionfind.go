package clustermatch

// UnionFind is a disjoint-set forest with path compression. It holds
// 2*n - 1 slots so that dendrogram merges can be given fresh IDs n, n+1,
// ... as they happen.
type UnionFind struct {
	parent []int
	size   []int
	// next is the ID handed to the next Merge, starting at n.
	next int
}

// NewUnionFind creates a UnionFind for n singleton elements.
func NewUnionFind(n int) *UnionFind {
	total := max(2*n-1, 1)
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1 // root
	}
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size, next: n}
}

// Find returns the root of the set containing x, with path compression.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Merge joins the roots a and b under a new node and returns the new
// node's ID. a and b must be distinct roots.
func (uf *UnionFind) Merge(a, b int) int {
	id := uf.next
	uf.size[id] = uf.size[a] + uf.size[b]
	uf.parent[a] = id
	uf.parent[b] = id
	uf.next++
	return id
}

// Size returns the number of elements in the set rooted at root.
func (uf *UnionFind) Size(root int) int { return uf.size[root] }
