// memscore runs Marker Enrichment Modeling over a CSV event matrix: one row
// per cell, one column per marker, plus a column holding the cluster (or
// gate) each cell was assigned. It writes a long-format score table and a
// label table keyed by cluster.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/cytolab/mem"
	"github.com/cytolab/mem/buildinfo"
	"github.com/cytolab/mem/transform"
)

func main() {
	var input, clusterCol, markerList, reference, output string
	var scaleCap, roundTo, threshold, arcsinhCofactor, iqrThresh float64

	flag.StringVar(&input, "input", "", "CSV event matrix with a header row")
	flag.StringVar(&clusterCol, "cluster-col", "cluster", "Name of the column holding cluster assignments")
	flag.StringVar(&markerList, "markers", "", "Comma-separated markers to score. If empty, every column except the cluster column is scored.")
	flag.StringVar(&reference, "reference", "pooled", "Reference policy: pooled, zero, or cluster=<id>")
	flag.Float64Var(&scaleCap, "scale-cap", 10, "Scores saturate at +- this value")
	flag.Float64Var(&roundTo, "round-to", 0.1, "Score rounding granularity")
	flag.Float64Var(&threshold, "threshold", 2, "Minimum |score| for a marker to enter the enrichment label")
	flag.Float64Var(&arcsinhCofactor, "arcsinh", 0, "Arcsinh cofactor applied to marker columns before scoring (0 disables; 5 for mass, 150 for fluorescence)")
	flag.Float64Var(&iqrThresh, "iqr-thresh", -1, "Drop markers whose pooled IQR is at or below this before scoring (negative disables)")
	flag.StringVar(&output, "output", "mem", "Output prefix; writes <prefix>.scores.csv and <prefix>.labels.csv")
	flag.Parse()
	buildinfo.Print()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(input, clusterCol, markerList, reference, output, scaleCap, roundTo, threshold, arcsinhCofactor, iqrThresh); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func run(input, clusterCol, markerList, reference, output string, scaleCap, roundTo, threshold, arcsinhCofactor, iqrThresh float64) error {
	matrix, err := loadMatrix(input, clusterCol, commaSplit(markerList))
	if err != nil {
		return err
	}
	log.Printf("Loaded %d cells x %d markers from %s\n", matrix.NCells(), len(matrix.Markers()), input)

	if arcsinhCofactor != 0 {
		fn, err := transform.Arcsinh(arcsinhCofactor)
		if err != nil {
			return err
		}
		if matrix, err = matrix.Apply(nil, fn); err != nil {
			return err
		}
	}

	markers := matrix.Markers()
	if iqrThresh >= 0 {
		if markers, err = mem.FilterIQR(matrix, iqrThresh); err != nil {
			return err
		}
		log.Printf("IQR filter kept %d of %d markers\n", len(markers), len(matrix.Markers()))
	}

	cfg := mem.DefaultConfig()
	cfg.ScaleCap = scaleCap
	cfg.RoundTo = roundTo
	cfg.DisplayThreshold = threshold
	if cfg.Reference, err = parseReference(reference); err != nil {
		return err
	}

	table, err := mem.Score(matrix, markers, cfg)
	if err != nil {
		return err
	}

	if err := writeScores(output+".scores.csv", table); err != nil {
		return err
	}
	if err := writeLabels(output+".labels.csv", table, cfg.DisplayThreshold); err != nil {
		return err
	}

	labels := table.Labels(cfg.DisplayThreshold)
	for _, cluster := range labels.Clusters {
		log.Printf("%s: %s\n", cluster, labels.Signature(cluster))
	}
	return nil
}

func parseReference(v string) (mem.ReferencePolicy, error) {
	switch {
	case v == "pooled":
		return mem.ReferencePolicy{Mode: mem.PooledOthers}, nil
	case v == "zero":
		return mem.ReferencePolicy{Mode: mem.FixedZero}, nil
	case strings.HasPrefix(v, "cluster="):
		return mem.ReferencePolicy{Mode: mem.DesignatedCluster, Cluster: strings.TrimPrefix(v, "cluster=")}, nil
	}
	return mem.ReferencePolicy{}, fmt.Errorf("unrecognized reference %q: want pooled, zero, or cluster=<id>", v)
}

func commaSplit(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
