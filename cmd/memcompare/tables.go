package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/cytolab/mem"
)

// ScoreRow mirrors the long format memscore writes.
type ScoreRow struct {
	Cluster string  `csv:"cluster"`
	Marker  string  `csv:"marker"`
	Score   float64 `csv:"score"`
}

type DistanceRow struct {
	TableA   string  `csv:"table_a"`
	ClusterA string  `csv:"cluster_a"`
	TableB   string  `csv:"table_b"`
	ClusterB string  `csv:"cluster_b"`
	RMSD     float64 `csv:"rmsd"`
}

type MatchRow struct {
	TableA  string  `csv:"table_a"`
	Cluster string  `csv:"cluster"`
	TableB  string  `csv:"table_b"`
	Match   string  `csv:"match"`
	RMSD    float64 `csv:"rmsd"`
}

// loadScoreTable reconstructs a score table from its long-format CSV. Marker
// and cluster orderings follow first appearance in the file, which for
// memscore output reproduces the original table's orderings. Every cluster
// must carry a score for every marker.
func loadScoreTable(path string) (*mem.ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ScoreRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no score rows", path)
	}

	table := &mem.ScoreTable{Scores: make(map[string][]float64)}
	markerIdx := make(map[string]int)
	cells := make(map[string]map[string]float64)

	for _, row := range rows {
		if _, ok := markerIdx[row.Marker]; !ok {
			markerIdx[row.Marker] = len(table.Markers)
			table.Markers = append(table.Markers, row.Marker)
		}
		byMarker, ok := cells[row.Cluster]
		if !ok {
			byMarker = make(map[string]float64)
			cells[row.Cluster] = byMarker
			table.Clusters = append(table.Clusters, row.Cluster)
		}
		if _, dup := byMarker[row.Marker]; dup {
			return nil, fmt.Errorf("%s: duplicate entry for cluster %q marker %q", path, row.Cluster, row.Marker)
		}
		byMarker[row.Marker] = row.Score
	}

	for _, cluster := range table.Clusters {
		scores := make([]float64, len(table.Markers))
		for i, marker := range table.Markers {
			v, ok := cells[cluster][marker]
			if !ok {
				return nil, fmt.Errorf("%s: cluster %q has no score for marker %q", path, cluster, marker)
			}
			scores[i] = v
		}
		table.Scores[cluster] = scores
	}
	return table, nil
}

func marshalCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(rows, f)
}
