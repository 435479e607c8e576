package main

import (
	"fmt"
	"strconv"

	"github.com/cytolab/mem"
	"github.com/cytolab/mem/eventio"
)

// loadMatrix reads a delimited event matrix (CSV or TSV, possibly
// compressed). The header row names the columns; clusterCol holds the
// cluster assignment. markers selects which columns to keep (nil keeps every
// column except the cluster column, all of which must then be numeric).
func loadMatrix(path, clusterCol string, markers []string) (*mem.Matrix, error) {
	rdr, closer, err := eventio.Open(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	entries, err := rdr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one cell", path)
	}

	header := make(map[string]int, len(entries[0]))
	for i, col := range entries[0] {
		header[col] = i
	}

	clusterIdx, ok := header[clusterCol]
	if !ok {
		return nil, fmt.Errorf("%s: no cluster column %q", path, clusterCol)
	}

	if markers == nil {
		for _, col := range entries[0] {
			if col != clusterCol {
				markers = append(markers, col)
			}
		}
	}
	cols := make([]int, len(markers))
	for i, name := range markers {
		idx, ok := header[name]
		if !ok {
			return nil, fmt.Errorf("%s: no marker column %q", path, name)
		}
		cols[i] = idx
	}

	rows := make([][]float64, 0, len(entries)-1)
	clusters := make([]string, 0, len(entries)-1)
	for line, entry := range entries[1:] {
		row := make([]float64, len(cols))
		for i, c := range cols {
			v, err := strconv.ParseFloat(entry[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d, column %q: %v", path, line+2, markers[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
		clusters = append(clusters, entry[clusterIdx])
	}

	return mem.NewMatrix(markers, rows, clusters)
}
