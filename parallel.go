package clustermatch

import "sync"

// ComputePairwiseDistancesParallel computes the same n×n matrix as
// ComputePairwiseDistances, splitting source rows across workers.
// With workers <= 1 it runs single-threaded.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, workers int) []float64 {
	if workers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	result := make([]float64, n*n)
	rowsPerWorker := (n + workers - 1) / workers

	// Each worker owns rows [start, end) and writes cells (i, j) and (j, i)
	// for j > i. No two workers touch the same cell.
	var wg sync.WaitGroup
	for start := 0; start < n; start += rowsPerWorker {
		end := min(start+rowsPerWorker, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				a := data[i*dims : (i+1)*dims]
				for j := i + 1; j < n; j++ {
					d := metric.Distance(a, data[j*dims:(j+1)*dims])
					result[i*n+j] = d
					result[j*n+i] = d
				}
			}
		}(start, end)
	}

	wg.Wait()
	return result
}
