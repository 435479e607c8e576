package rmsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MatchStrategy selects how row clusters are paired with column clusters.
type MatchStrategy int

const (
	// MatchGreedy pairs every row cluster with its nearest column cluster
	// independently, ties going to the earlier column in canonical order.
	// Two rows may share a partner; clusters do not always have a unique
	// counterpart across clusterings, and greedy matching reports that
	// honestly.
	MatchGreedy MatchStrategy = iota

	// MatchOptimal computes the one-to-one assignment minimizing total
	// RMSD (Hungarian algorithm). When there are more rows than columns,
	// the leftover rows go unreported.
	MatchOptimal
)

func (s MatchStrategy) String() string {
	switch s {
	case MatchGreedy:
		return "greedy"
	case MatchOptimal:
		return "optimal"
	}
	return fmt.Sprintf("MatchStrategy(%d)", int(s))
}

// MatchResult pairs one row cluster with a column cluster at the given RMSD.
type MatchResult struct {
	Cluster string
	Match   string
	RMSD    float64
}

// Match resolves a distance matrix into a best-match report, one entry per
// row cluster (fewer under MatchOptimal with more rows than columns). Results
// keep row canonical order.
func Match(dm *DistanceMatrix, strategy MatchStrategy) ([]MatchResult, error) {
	rows, cols := len(dm.RowClusters), len(dm.ColClusters)
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %d row clusters, %d column clusters", ErrEmptyInput, rows, cols)
	}

	switch strategy {
	case MatchGreedy:
		out := make([]MatchResult, 0, rows)
		for r, cluster := range dm.RowClusters {
			best := 0
			for c := 1; c < cols; c++ {
				if dm.D.At(r, c) < dm.D.At(r, best) {
					best = c
				}
			}
			out = append(out, MatchResult{
				Cluster: cluster,
				Match:   dm.ColClusters[best],
				RMSD:    dm.D.At(r, best),
			})
		}
		return out, nil

	case MatchOptimal:
		assign := minCostAssignment(dm.D)
		out := make([]MatchResult, 0, rows)
		for r, cluster := range dm.RowClusters {
			if assign[r] >= cols {
				continue // padded column: this row found no real partner
			}
			out = append(out, MatchResult{
				Cluster: cluster,
				Match:   dm.ColClusters[assign[r]],
				RMSD:    dm.D.At(r, assign[r]),
			})
		}
		return out, nil
	}

	return nil, fmt.Errorf("rmsd: unsupported match strategy %v", strategy)
}

// minCostAssignment solves the minimum-cost assignment over a rectangular
// cost matrix via the Hungarian algorithm with potentials, padding to square
// with zero-cost dummies. Returns, per row, the assigned column index (which
// may point past the real columns for padded assignments).
func minCostAssignment(cost mat.Matrix) []int {
	rows, cols := cost.Dims()
	n := rows
	if cols > n {
		n = cols
	}
	at := func(i, j int) float64 {
		if i < rows && j < cols {
			return cost.At(i, j)
		}
		return 0
	}

	// Shortest augmenting paths with dual potentials, 1-based with column 0
	// as the virtual source.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	match := make([]int, n+1) // match[j]: row assigned to column j
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0, delta, j1 := match[j0], math.Inf(1), 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := at(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	assign := make([]int, rows)
	for j := 1; j <= n; j++ {
		if r := match[j]; r >= 1 && r <= rows {
			assign[r-1] = j - 1
		}
	}
	return assign
}
