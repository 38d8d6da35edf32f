package clustermatch

import "testing"

func TestComputePairwiseDistancesParallel_BitwiseIdentical(t *testing.T) {
	data := []float64{
		0, 0,
		3, 0,
		0, 4,
		1, 1,
		5, 5,
	}
	n, dims := 5, 2

	for _, metric := range []DistanceMetric{EuclideanMetric{}, ManhattanMetric{}, CosineMetric{}} {
		sequential := ComputePairwiseDistances(data, n, dims, metric)
		for _, workers := range []int{1, 2, 4, 16} {
			parallel := ComputePairwiseDistancesParallel(data, n, dims, metric, workers)
			if len(parallel) != len(sequential) {
				t.Fatalf("%T workers=%d: length mismatch %d != %d", metric, workers, len(parallel), len(sequential))
			}
			for i := range sequential {
				if parallel[i] != sequential[i] {
					t.Errorf("%T workers=%d: result[%d] = %v, expected %v",
						metric, workers, i, parallel[i], sequential[i])
				}
			}
		}
	}
}

func TestComputePairwiseDistancesParallel_SinglePoint(t *testing.T) {
	result := ComputePairwiseDistancesParallel([]float64{1, 2}, 1, 2, EuclideanMetric{}, 4)
	if len(result) != 1 || result[0] != 0 {
		t.Errorf("expected [0], got %v", result)
	}
}
