package clustermatch

import (
	"math"
	"math/rand"
	"strconv"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// KMeansConfig controls KMeans.
type KMeansConfig struct {
	// K is the number of clusters. Must be in 1..len(data).
	K int

	// MaxIterations bounds the number of assign/re-estimate rounds.
	// Default: 100.
	MaxIterations int

	// Metric assigns points to the nearest centroid. Default: EuclideanMetric.
	Metric DistanceMetric

	// Seed drives k-means++ initialisation. Equal seeds give equal results.
	Seed int64

	// Logger receives per-iteration debug output. Default: zap.NewNop().
	Logger *zap.Logger
}

// DefaultKMeansConfig returns a KMeansConfig for k clusters.
func DefaultKMeansConfig(k int) KMeansConfig {
	return KMeansConfig{K: k, MaxIterations: 100, Metric: EuclideanMetric{}, Logger: zap.NewNop()}
}

func (cfg *KMeansConfig) applyDefaults() {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 100
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

func (cfg *KMeansConfig) validate(n int) error {
	if cfg.K < 1 {
		return invalidConfig("K must be >= 1, got %d", cfg.K)
	}
	if cfg.K > n {
		return invalidConfig("K = %d exceeds number of points %d", cfg.K, n)
	}
	if cfg.MaxIterations < 1 {
		return invalidConfig("MaxIterations must be >= 1, got %d", cfg.MaxIterations)
	}
	return nil
}

// CentroidClustering is a flat clustering whose clusters are represented
// by centroids.
type CentroidClustering struct {
	*FlatClustering

	Centroids []*Centroid

	// Assignments[i] is the cluster of data point i.
	Assignments []int

	// Iterations is the number of rounds run; Converged reports whether the
	// last round left every centroid stable.
	Iterations int
	Converged  bool

	metric DistanceMetric
}

// KMeans clusters data with Lloyd's algorithm, seeded by k-means++.
// ids names each row; nil ids are replaced by the row index.
func KMeans(data [][]float64, ids []string, cfg KMeansConfig) (*CentroidClustering, error) {
	cfg.applyDefaults()
	if err := cfg.validate(len(data)); err != nil {
		return nil, err
	}
	ids, err := resolveIDs(ids, len(data))
	if err != nil {
		return nil, err
	}
	flat, dims, err := flatten(data)
	if err != nil {
		return nil, err
	}
	n := len(data)
	row := func(i int) []float64 { return flat[i*dims : (i+1)*dims] }

	rng := rand.New(rand.NewSource(cfg.Seed))
	centroids := seedPlusPlus(flat, n, dims, cfg.K, cfg.Metric, rng)

	assign := make([]int, n)
	cc := &CentroidClustering{Centroids: centroids, Assignments: assign, metric: cfg.Metric}
	for cc.Iterations < cfg.MaxIterations {
		cc.Iterations++
		for i := 0; i < n; i++ {
			assign[i] = nearestCentroid(row(i), centroids, cfg.Metric)
			centroids[assign[i]].Assign(row(i))
		}

		stable := true
		for _, c := range centroids {
			if !c.FinishAssign() {
				stable = false
			}
		}
		cfg.Logger.Debug("k-means iteration", zap.Int("iteration", cc.Iterations), zap.Bool("stable", stable))
		if stable {
			cc.Converged = true
			break
		}
	}
	if !cc.Converged {
		cfg.Logger.Warn("k-means did not converge", zap.Int("max_iterations", cfg.MaxIterations))
		// Align assignments with the means left by the last round.
		for i := 0; i < n; i++ {
			assign[i] = nearestCentroid(row(i), centroids, cfg.Metric)
		}
	}

	fc := NewFlatClustering(cfg.K)
	for i, a := range assign {
		if err := fc.Add(a, ids[i]); err != nil {
			return nil, err
		}
	}
	cc.FlatClustering = fc
	return cc, nil
}

// seedPlusPlus picks k initial centroids: the first uniformly, each next
// one with probability proportional to its squared distance from the
// nearest centroid chosen so far.
func seedPlusPlus(flat []float64, n, dims, k int, metric DistanceMetric, rng *rand.Rand) []*Centroid {
	row := func(i int) []float64 { return flat[i*dims : (i+1)*dims] }

	centroids := make([]*Centroid, 0, k)
	centroids = append(centroids, NewCentroidAt(row(rng.Intn(n))))

	nearest := make([]float64, n)
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	for len(centroids) < k {
		last := centroids[len(centroids)-1].Mean()
		total := 0.0
		for i := 0; i < n; i++ {
			d := metric.Distance(row(i), last)
			if d*d < nearest[i] {
				nearest[i] = d * d
			}
			total += nearest[i]
		}

		pick := n - 1
		if total > 0 {
			target := rng.Float64() * total
			for i, w := range nearest {
				target -= w
				if target < 0 {
					pick = i
					break
				}
			}
		} else {
			// Every point coincides with a centroid; take the next row.
			pick = len(centroids) % n
		}
		centroids = append(centroids, NewCentroidAt(row(pick)))
	}
	return centroids
}

// nearestCentroid returns the index of the closest centroid. Ties go to the
// lower index.
func nearestCentroid(point []float64, centroids []*Centroid, metric DistanceMetric) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := metric.Distance(point, centroid.Mean()); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Predict returns the cluster whose centroid is nearest to point.
func (cc *CentroidClustering) Predict(point []float64) int {
	return nearestCentroid(point, cc.Centroids, cc.metric)
}

// Memberships returns fuzzy c-means style soft memberships of every data
// point in every cluster, derived from centroid distances. fuzziness must
// be > 1; larger values spread membership more evenly. Each row sums to 1.
func (cc *CentroidClustering) Memberships(data [][]float64, fuzziness float64) ([][]float64, error) {
	if fuzziness <= 1 {
		return nil, invalidConfig("fuzziness must be > 1, got %f", fuzziness)
	}
	exp := 2 / (fuzziness - 1)
	k := len(cc.Centroids)

	out := make([][]float64, len(data))
	dist := make([]float64, k)
	for i, point := range data {
		u := make([]float64, k)
		zeros := 0
		for c, centroid := range cc.Centroids {
			dist[c] = cc.metric.Distance(point, centroid.Mean())
			if dist[c] == 0 {
				zeros++
			}
		}
		if zeros > 0 {
			for c := range u {
				if dist[c] == 0 {
					u[c] = 1 / float64(zeros)
				}
			}
			out[i] = u
			continue
		}
		for c := range u {
			sum := 0.0
			for j := range dist {
				sum += math.Pow(dist[c]/dist[j], exp)
			}
			u[c] = 1 / sum
		}
		out[i] = u
	}
	return out, nil
}

// MeanDistances returns, per cluster, the mean distance of its assigned
// points to the centroid. Empty clusters report 0.
func (cc *CentroidClustering) MeanDistances(data [][]float64) []float64 {
	per := make([][]float64, len(cc.Centroids))
	for i, point := range data {
		c := cc.Assignments[i]
		per[c] = append(per[c], cc.metric.Distance(point, cc.Centroids[c].Mean()))
	}
	out := make([]float64, len(per))
	for c, ds := range per {
		if len(ds) > 0 {
			out[c] = stat.Mean(ds, nil)
		}
	}
	return out
}

// Inertia returns the sum of squared distances from each point to its
// centroid.
func (cc *CentroidClustering) Inertia(data [][]float64) float64 {
	total := 0.0
	for i, point := range data {
		d := cc.metric.Distance(point, cc.Centroids[cc.Assignments[i]].Mean())
		total += d * d
	}
	return total
}

func resolveIDs(ids []string, n int) ([]string, error) {
	if ids == nil {
		ids = make([]string, n)
		for i := range ids {
			ids[i] = strconv.Itoa(i)
		}
		return ids, nil
	}
	if len(ids) != n {
		return nil, invalidConfig("%d ids for %d rows", len(ids), n)
	}
	return ids, nil
}
