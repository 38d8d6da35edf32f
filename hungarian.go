package clustermatch

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SolverOption configures Solve and SolveCost.
type SolverOption func(*solver)

// WithLogger routes solver debug output to logger.
func WithLogger(logger *zap.Logger) SolverOption {
	return func(s *solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Solve finds the permutation assignment[row] = column that maximizes the
// sum of counts[row][assignment[row]]. counts must be square and
// non-negative.
//
// The counts are turned into costs (globalMax - count) and handed to
// SolveCost.
func Solve(counts [][]int, opts ...SolverOption) ([]int, error) {
	k := len(counts)
	if k == 0 {
		return nil, ErrEmptyMatrix
	}
	data := make([]float64, 0, k*k)
	for i, row := range counts {
		if len(row) != k {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), k)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("clustermatch: negative count %d at [%d][%d]", v, i, j)
			}
			data = append(data, float64(v))
		}
	}

	profit := mat.NewDense(k, k, data)
	globalMax := mat.Max(profit)
	var cost mat.Dense
	cost.Apply(func(_, _ int, v float64) float64 { return globalMax - v }, profit)

	return SolveCost(&cost, opts...)
}

// SolveCost finds the minimum-cost perfect matching of a square cost
// matrix using the Hungarian method. The returned slice maps each row to
// its column. cost is not modified.
//
// Ties between equal zeros are broken in row-major scan order, so the
// result is deterministic for a given matrix.
func SolveCost(cost mat.Matrix, opts ...SolverOption) ([]int, error) {
	r, c := cost.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := cost.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("clustermatch: non-finite cost %v at [%d][%d]", v, i, j)
			}
		}
	}

	s := newSolver(mat.DenseCopyOf(cost), opts)
	return s.solve(), nil
}

// Agreement returns the sum of the cells selected by assignment.
func Agreement(counts [][]int, assignment []int) int {
	total := 0
	for row, col := range assignment {
		total += counts[row][col]
	}
	return total
}

// solver holds the working state of one Hungarian run. It is never reused.
type solver struct {
	cost *mat.Dense
	k    int

	// starInRow[i] is the column of the starred zero in row i, or -1.
	starInRow []int
	// starInCol[j] is the row of the starred zero in column j, or -1.
	starInCol []int
	// primeInRow[i] is the column of the primed zero in row i, or -1.
	primeInRow []int

	rowCovered []bool
	colCovered []bool

	rounds int
	logger *zap.Logger
}

func newSolver(cost *mat.Dense, opts []SolverOption) *solver {
	k, _ := cost.Dims()
	s := &solver{
		cost:       cost,
		k:          k,
		starInRow:  filled(k, -1),
		starInCol:  filled(k, -1),
		primeInRow: filled(k, -1),
		rowCovered: make([]bool, k),
		colCovered: make([]bool, k),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func (s *solver) solve() []int {
	s.reduceRows()
	s.reduceCols()
	s.starZeros()

	for covered := s.coverStarredColumns(); covered < s.k; covered = s.coverStarredColumns() {
		s.logger.Debug("assignment incomplete",
			zap.Int("covered", covered), zap.Int("k", s.k), zap.Int("rounds", s.rounds))
		s.augment()
	}

	s.logger.Debug("assignment complete", zap.Int("k", s.k), zap.Int("rounds", s.rounds))
	return append([]int(nil), s.starInRow...)
}

// reduceRows subtracts each row's minimum from the row.
func (s *solver) reduceRows() {
	for i := 0; i < s.k; i++ {
		row := s.cost.RawRowView(i)
		floats.AddConst(-floats.Min(row), row)
	}
}

// reduceCols subtracts each column's minimum from the column.
func (s *solver) reduceCols() {
	col := make([]float64, s.k)
	for j := 0; j < s.k; j++ {
		mat.Col(col, j, s.cost)
		m := floats.Min(col)
		if m == 0 {
			continue
		}
		for i := 0; i < s.k; i++ {
			s.cost.Set(i, j, s.cost.At(i, j)-m)
		}
	}
}

// starZeros is the greedy pass: in scan order, star every zero whose row
// and column hold no star yet. Later zeros in a starred row or column are
// skipped.
func (s *solver) starZeros() {
	for i := 0; i < s.k; i++ {
		for j := 0; j < s.k; j++ {
			if s.cost.At(i, j) == 0 && s.starInRow[i] < 0 && s.starInCol[j] < 0 {
				s.starInRow[i] = j
				s.starInCol[j] = i
			}
		}
	}
}

// coverStarredColumns covers every column holding a star and returns how
// many were covered.
func (s *solver) coverStarredColumns() int {
	n := 0
	for j := range s.colCovered {
		s.colCovered[j] = s.starInCol[j] >= 0
		if s.colCovered[j] {
			n++
		}
	}
	return n
}

// augment primes uncovered zeros until one with no star in its row is
// found, then flips the alternating path starting there. This grows the
// set of stars by exactly one.
func (s *solver) augment() {
	for {
		i, j, ok := s.findUncoveredZero()
		if !ok {
			s.adjust()
			continue
		}
		s.primeInRow[i] = j
		if c := s.starInRow[i]; c >= 0 {
			s.rowCovered[i] = true
			s.colCovered[c] = false
			continue
		}
		s.flipPath(i, j)
		s.clearCovers()
		return
	}
}

func (s *solver) findUncoveredZero() (int, int, bool) {
	for i := 0; i < s.k; i++ {
		if s.rowCovered[i] {
			continue
		}
		for j := 0; j < s.k; j++ {
			if !s.colCovered[j] && s.cost.At(i, j) == 0 {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// flipPath walks the alternating path prime -> star in same column ->
// prime in same row -> ... and swaps stars for primes along it.
func (s *solver) flipPath(row, col int) {
	for {
		next := s.starInCol[col]
		s.starInRow[row] = col
		s.starInCol[col] = row
		if next < 0 {
			return
		}
		row, col = next, s.primeInRow[next]
	}
}

// adjust subtracts the smallest uncovered value from every uncovered cell
// and adds it to every cell covered twice, creating at least one new
// uncovered zero without disturbing starred or primed zeros.
func (s *solver) adjust() {
	m := math.Inf(1)
	for i := 0; i < s.k; i++ {
		if s.rowCovered[i] {
			continue
		}
		for j := 0; j < s.k; j++ {
			if !s.colCovered[j] {
				m = math.Min(m, s.cost.At(i, j))
			}
		}
	}

	for i := 0; i < s.k; i++ {
		for j := 0; j < s.k; j++ {
			switch {
			case !s.rowCovered[i] && !s.colCovered[j]:
				s.cost.Set(i, j, s.cost.At(i, j)-m)
			case s.rowCovered[i] && s.colCovered[j]:
				s.cost.Set(i, j, s.cost.At(i, j)+m)
			}
		}
	}

	s.rounds++
	s.logger.Debug("cost matrix adjusted", zap.Float64("min_uncovered", m), zap.Int("round", s.rounds))
}

func (s *solver) clearCovers() {
	for i := range s.rowCovered {
		s.rowCovered[i] = false
		s.colCovered[i] = false
		s.primeInRow[i] = -1
	}
}
