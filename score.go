package mem

import (
	"fmt"
	"math"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// iqrEpsilon floors degenerate IQRs. A reference whose values are all equal
// has IQR 0; treating that as an error would reject perfectly valid control
// populations, so the spread term saturates instead.
const iqrEpsilon = 1e-6

// ScoreTable holds one enrichment score per (cluster, marker) pair. Markers
// and Clusters fix the orderings; Scores[cluster][i] is the score for
// Markers[i]. Tables are deterministic: the same matrix, grouping, and config
// always produce the same table.
type ScoreTable struct {
	Markers  []string
	Clusters []string
	Scores   map[string][]float64
}

// At returns the score for one (cluster, marker) pair.
func (t *ScoreTable) At(cluster, marker string) (float64, bool) {
	row, ok := t.Scores[cluster]
	if !ok {
		return 0, false
	}
	for i, name := range t.Markers {
		if name == marker {
			return row[i], true
		}
	}
	return 0, false
}

// Score runs Marker Enrichment Modeling over the matrix. markers selects the
// columns to score (nil means all), cfg fixes the reference policy and
// scaling. The score for cluster g and marker f is
//
//	sign(medIn-medRef) * (|medIn-medRef| + IQRref/IQRin - 1)
//
// clamped to [-ScaleCap, +ScaleCap] and rounded to RoundTo, where the "in"
// statistics are over g's cells and the "ref" statistics over the cells the
// reference policy selects for g.
//
// Clusters are scored concurrently; the matrix is only read.
func Score(m *Matrix, markers []string, cfg Config) (*ScoreTable, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if markers == nil {
		markers = m.Markers()
	}
	columns := make([][]float64, len(markers))
	seen := make(map[string]bool, len(markers))
	for i, name := range markers {
		if seen[name] {
			return nil, fmt.Errorf("mem: duplicate marker %q", name)
		}
		seen[name] = true
		col, err := m.Column(name)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	order, byCluster := m.clusterRows()
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no clusters", ErrEmptyInput)
	}

	refRows, err := referenceRows(order, byCluster, m.NCells(), cfg.Reference)
	if err != nil {
		return nil, err
	}

	// Validate every cluster before scoring any: a failed run emits nothing.
	for _, c := range order {
		if n := len(byCluster[c]); n < 2 {
			return nil, fmt.Errorf("%w: cluster %q has %d cells", ErrInsufficientSamples, c, n)
		}
		if cfg.Reference.Mode != FixedZero {
			if n := len(refRows[c]); n < 2 {
				return nil, fmt.Errorf("%w: reference for cluster %q has %d cells", ErrInsufficientSamples, c, n)
			}
		}
	}

	results := make([][]float64, len(order))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for ci, cluster := range order {
		ci, cluster := ci, cluster
		g.Go(func() error {
			row := make([]float64, len(markers))
			for mi := range markers {
				in := gather(columns[mi], byCluster[cluster])
				var ref []float64
				if cfg.Reference.Mode != FixedZero {
					ref = gather(columns[mi], refRows[cluster])
				}
				score, err := enrichment(in, ref, cfg)
				if err != nil {
					return fmt.Errorf("cluster %q marker %q: %w", cluster, markers[mi], err)
				}
				row[mi] = score
			}
			results[ci] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := &ScoreTable{
		Markers:  markers,
		Clusters: order,
		Scores:   make(map[string][]float64, len(order)),
	}
	for ci, cluster := range order {
		table.Scores[cluster] = results[ci]
	}
	return table, nil
}

// referenceRows resolves the reference policy into a per-cluster set of row
// indices. FixedZero needs no rows and returns an empty map.
func referenceRows(order []string, byCluster map[string][]int, nCells int, policy ReferencePolicy) (map[string][]int, error) {
	out := make(map[string][]int, len(order))

	switch policy.Mode {
	case FixedZero:
		return out, nil

	case DesignatedCluster:
		ref, ok := byCluster[policy.Cluster]
		if !ok {
			return nil, fmt.Errorf("%w: designated reference cluster %q has no cells", ErrInsufficientSamples, policy.Cluster)
		}
		for _, c := range order {
			out[c] = ref
		}
		return out, nil

	case PooledOthers:
		for _, c := range order {
			member := make([]bool, nCells)
			for _, i := range byCluster[c] {
				member[i] = true
			}
			others := make([]int, 0, nCells-len(byCluster[c]))
			for i := 0; i < nCells; i++ {
				if !member[i] {
					others = append(others, i)
				}
			}
			out[c] = others
		}
		return out, nil
	}

	return nil, fmt.Errorf("mem: unsupported reference mode %v", policy.Mode)
}

func gather(column []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = column[r]
	}
	return out
}

// enrichment computes one clamped, rounded MEM score. ref is ignored under
// FixedZero, which substitutes median 0 and IQR 1.
func enrichment(in, ref []float64, cfg Config) (float64, error) {
	medianIn, err := stats.Median(in)
	if err != nil {
		return 0, err
	}
	iqrIn, err := stats.InterQuartileRange(in)
	if err != nil {
		return 0, err
	}

	medianRef, iqrRef := 0.0, 1.0
	if cfg.Reference.Mode != FixedZero {
		if medianRef, err = stats.Median(ref); err != nil {
			return 0, err
		}
		if iqrRef, err = stats.InterQuartileRange(ref); err != nil {
			return 0, err
		}
	}

	if iqrIn < iqrEpsilon {
		iqrIn = iqrEpsilon
	}
	if iqrRef < iqrEpsilon {
		iqrRef = iqrEpsilon
	}

	diff := medianIn - medianRef
	var raw float64
	if diff != 0 {
		raw = math.Abs(diff) + iqrRef/iqrIn - 1
		if diff < 0 {
			raw = -raw
		}
	}

	// Saturate, round, then saturate again so rounding can never push a
	// score past the cap.
	score := math.Max(-cfg.ScaleCap, math.Min(cfg.ScaleCap, raw))
	score = math.Round(score/cfg.RoundTo) * cfg.RoundTo
	score = math.Max(-cfg.ScaleCap, math.Min(cfg.ScaleCap, score))
	if score == 0 {
		score = 0 // normalize -0
	}
	return score, nil
}
