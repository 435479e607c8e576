package mem

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// LabelEntry is one marker's contribution to a cluster's enrichment label.
type LabelEntry struct {
	Marker string
	Score  float64
}

// LabelTable is the human-readable view of a ScoreTable: per cluster, the
// markers whose |score| exceeds the display threshold, strongest first. It is
// derived, read-only, and carries no state of its own.
type LabelTable struct {
	Clusters []string
	Entries  map[string][]LabelEntry
}

// Labels derives the enrichment labels from the table. Markers with
// |score| <= threshold are omitted; the rest sort by descending |score|, ties
// keeping marker input order.
func (t *ScoreTable) Labels(threshold float64) *LabelTable {
	out := &LabelTable{
		Clusters: t.Clusters,
		Entries:  make(map[string][]LabelEntry, len(t.Clusters)),
	}

	for _, cluster := range t.Clusters {
		row := t.Scores[cluster]
		entries := make([]LabelEntry, 0, len(row))
		for i, score := range row {
			if math.Abs(score) > threshold {
				entries = append(entries, LabelEntry{Marker: t.Markers[i], Score: score})
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return math.Abs(entries[i].Score) > math.Abs(entries[j].Score)
		})
		out.Entries[cluster] = entries
	}

	return out
}

// Signature formats one cluster's label in the conventional MEM style, e.g.
// "CD4+6 CD8-7.5 CD45RA+2.5". An empty string means no marker cleared the
// display threshold.
func (l *LabelTable) Signature(cluster string) string {
	entries := l.Entries[cluster]
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s%+g", e.Marker, e.Score)
	}
	return strings.Join(parts, " ")
}
