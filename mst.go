package clustermatch

import (
	"math"

	"go.uber.org/zap"
)

// PrimMST computes a minimum spanning tree with Prim's algorithm over a
// dense distance matrix (flat, n×n row-major). It returns n-1 edges
// [from, to, weight] in the order they were added, which is the chain
// format single-linkage labelling expects.
func PrimMST(dist []float64, n int, logger *zap.Logger) [][3]float64 {
	if n <= 1 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	inTree := make([]bool, n)
	best := make([]float64, n)

	inTree[0] = true
	current := 0
	best[0] = math.Inf(1)
	copy(best[1:], dist[1:n])

	edges := make([][3]float64, 0, n-1)
	disconnected := 0

	for len(edges) < n-1 {
		next, nextDist := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if !inTree[j] && best[j] < nextDist {
				next, nextDist = j, best[j]
			}
		}
		// Only +Inf edges remain: join the first stray node.
		if next == -1 {
			for j := 0; j < n; j++ {
				if !inTree[j] {
					next, nextDist = j, best[j]
					break
				}
			}
			disconnected++
		}

		edges = append(edges, [3]float64{float64(current), float64(next), nextDist})
		inTree[next] = true
		current = next

		for k := 0; k < n; k++ {
			if !inTree[k] && dist[next*n+k] < best[k] {
				best[k] = dist[next*n+k]
			}
		}
	}

	if disconnected > 0 {
		logger.Warn("spanning tree joins disconnected components with +Inf edges",
			zap.Int("components", disconnected+1))
	}
	return edges
}
