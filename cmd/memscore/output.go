package main

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/cytolab/mem"
)

// ScoreRow is the long-format score table representation consumed by
// memcompare.
type ScoreRow struct {
	Cluster string  `csv:"cluster"`
	Marker  string  `csv:"marker"`
	Score   float64 `csv:"score"`
}

type LabelRow struct {
	Cluster   string `csv:"cluster"`
	Signature string `csv:"signature"`
}

func writeScores(path string, table *mem.ScoreTable) error {
	rows := make([]ScoreRow, 0, len(table.Clusters)*len(table.Markers))
	for _, cluster := range table.Clusters {
		for i, marker := range table.Markers {
			rows = append(rows, ScoreRow{Cluster: cluster, Marker: marker, Score: table.Scores[cluster][i]})
		}
	}
	return marshalCSV(path, &rows)
}

func writeLabels(path string, table *mem.ScoreTable, threshold float64) error {
	labels := table.Labels(threshold)
	rows := make([]LabelRow, 0, len(labels.Clusters))
	for _, cluster := range labels.Clusters {
		rows = append(rows, LabelRow{Cluster: cluster, Signature: labels.Signature(cluster)})
	}
	return marshalCSV(path, &rows)
}

func marshalCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(rows, f)
}
