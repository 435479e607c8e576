package rmsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/guregu/null.v3"
)

// DistanceMatrix holds pairwise RMSD values between the clusters of two
// aligned score tables. D is row-major over (RowClusters, ColClusters); it is
// square only when both tables carry the same number of clusters, and
// symmetric only when a table is compared against itself.
type DistanceMatrix struct {
	RowClusters []string
	ColClusters []string
	D           *mat.Dense
}

// At returns the distance between one row cluster and one column cluster.
func (dm *DistanceMatrix) At(rowCluster, colCluster string) (float64, bool) {
	r, c := -1, -1
	for i, name := range dm.RowClusters {
		if name == rowCluster {
			r = i
			break
		}
	}
	for j, name := range dm.ColClusters {
		if name == colCluster {
			c = j
			break
		}
	}
	if r < 0 || c < 0 {
		return 0, false
	}
	return dm.D.At(r, c), true
}

// Distances computes the full cross-table distance matrix between aligned
// tables i and j.
func (a *Aligned) Distances(i, j int) (*DistanceMatrix, error) {
	if i < 0 || i >= len(a.Tables) || j < 0 || j >= len(a.Tables) {
		return nil, fmt.Errorf("rmsd: table index out of range: %d, %d of %d", i, j, len(a.Tables))
	}
	x, y := a.Tables[i], a.Tables[j]

	dm := &DistanceMatrix{
		RowClusters: x.Clusters,
		ColClusters: y.Clusters,
		D:           mat.NewDense(len(x.Clusters), len(y.Clusters), nil),
	}
	for r, rc := range x.Clusters {
		for c, cc := range y.Clusters {
			d, err := RMSD(x.Rows[rc], y.Rows[cc])
			if err != nil {
				return nil, fmt.Errorf("clusters %q vs %q: %w", rc, cc, err)
			}
			dm.D.Set(r, c, d)
		}
	}
	return dm, nil
}

// RMSD is the root-mean-square deviation between two aligned score vectors.
// Null entries (markers one side never scored) are skipped pairwise; the mean
// runs over the markers both sides carry. The result is 0 iff the vectors
// agree on every shared marker, and lives on the same scale as the scores.
func RMSD(a, b []null.Float) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d markers", ErrDimensionMismatch, len(a), len(b))
	}

	var sum float64
	var n int
	for i := range a {
		if !a[i].Valid || !b[i].Valid {
			continue
		}
		d := a[i].Float64 - b[i].Float64
		sum += d * d
		n++
	}
	if n == 0 {
		return 0, ErrNoCommonFeatures
	}
	return math.Sqrt(sum / float64(n)), nil
}
