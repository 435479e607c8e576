package rmsd

import (
	"fmt"

	"gopkg.in/guregu/null.v3"

	"github.com/cytolab/mem"
)

// AlignMode selects the common marker axis when tables were scored over
// different marker subsets.
type AlignMode int

const (
	// Intersection keeps only markers present in every table.
	Intersection AlignMode = iota

	// Union keeps every marker any table scored; a table that never scored
	// a marker carries a null there, and distance computations skip it
	// pairwise.
	Union
)

func (m AlignMode) String() string {
	switch m {
	case Intersection:
		return "intersection"
	case Union:
		return "union"
	}
	return fmt.Sprintf("AlignMode(%d)", int(m))
}

// Table is one score table re-expressed over the aligned marker axis.
// Rows[cluster][i] is the (possibly null) score for the i-th aligned marker.
type Table struct {
	Clusters []string
	Rows     map[string][]null.Float
}

// Aligned is a set of score tables on one canonical marker axis, ready for
// distance computation. Tables keep the order they were passed to Align.
type Aligned struct {
	Markers []string
	Tables  []Table
}

// Align re-expresses two or more score tables over a common marker axis. The
// canonical ordering is fixed by the first table's marker order, with
// union-mode extras following in first-appearance order across the remaining
// tables. Distances between unaligned axes are meaningless, so this is a
// mandatory step before Distances.
//
// Align fails with ErrNoCommonFeatures when the tables share no marker at
// all — in union mode too, since every cross-table distance would then be
// undefined — and with ErrEmptyInput when a table has no clusters.
func Align(mode AlignMode, tables ...*mem.ScoreTable) (*Aligned, error) {
	if len(tables) < 2 {
		return nil, fmt.Errorf("rmsd: need at least two tables to align, got %d", len(tables))
	}

	indexes := make([]map[string]int, len(tables))
	for ti, t := range tables {
		if len(t.Clusters) == 0 {
			return nil, fmt.Errorf("%w: table %d has no clusters", ErrEmptyInput, ti)
		}
		idx := make(map[string]int, len(t.Markers))
		for i, name := range t.Markers {
			idx[name] = i
		}
		indexes[ti] = idx
	}

	shared := 0
	axis := make([]string, 0, len(tables[0].Markers))
	for _, name := range tables[0].Markers {
		inAll := true
		for _, idx := range indexes[1:] {
			if _, ok := idx[name]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			shared++
		}
		if mode == Union || inAll {
			axis = append(axis, name)
		}
	}
	if shared == 0 {
		return nil, fmt.Errorf("%w: across %d tables", ErrNoCommonFeatures, len(tables))
	}
	if mode == Union {
		seen := make(map[string]bool, len(axis))
		for _, name := range axis {
			seen[name] = true
		}
		for _, t := range tables[1:] {
			for _, name := range t.Markers {
				if !seen[name] {
					seen[name] = true
					axis = append(axis, name)
				}
			}
		}
	}

	out := &Aligned{Markers: axis, Tables: make([]Table, len(tables))}
	for ti, t := range tables {
		rows := make(map[string][]null.Float, len(t.Clusters))
		for _, cluster := range t.Clusters {
			scores := t.Scores[cluster]
			row := make([]null.Float, len(axis))
			for i, name := range axis {
				if col, ok := indexes[ti][name]; ok {
					row[i] = null.FloatFrom(scores[col])
				}
			}
			rows[cluster] = row
		}
		out.Tables[ti] = Table{Clusters: t.Clusters, Rows: rows}
	}
	return out, nil
}
