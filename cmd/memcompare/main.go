// memcompare quantifies how well the populations of two or more clusterings
// correspond. It consumes long-format score tables as written by memscore,
// aligns them onto a common marker axis, and reports the RMSD between every
// cross-table cluster pair, optionally resolving a best-match assignment.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/cytolab/mem"
	"github.com/cytolab/mem/buildinfo"
	"github.com/cytolab/mem/rmsd"
)

func main() {
	var tableList, alignment, match, output string

	flag.StringVar(&tableList, "tables", "", "Comma-separated paths of two or more score tables (memscore long format)")
	flag.StringVar(&alignment, "alignment", "intersection", "Marker alignment: intersection or union")
	flag.StringVar(&match, "match", "none", "Best-match report: none, greedy, or optimal")
	flag.StringVar(&output, "output", "memcompare", "Output prefix; writes <prefix>.rmsd.csv and, with matching, <prefix>.matches.csv")
	flag.Parse()
	buildinfo.Print()

	paths := commaSplit(tableList)
	if len(paths) < 2 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(paths, alignment, match, output); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func run(paths []string, alignment, match, output string) error {
	names := make([]string, len(paths))
	tables := make([]*mem.ScoreTable, len(paths))
	for i, path := range paths {
		names[i] = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t, err := loadScoreTable(path)
		if err != nil {
			return err
		}
		tables[i] = t
		log.Printf("Loaded %s: %d clusters x %d markers\n", names[i], len(t.Clusters), len(t.Markers))
	}

	mode, err := parseAlignment(alignment)
	if err != nil {
		return err
	}
	strategy, matching, err := parseMatch(match)
	if err != nil {
		return err
	}

	aligned, err := rmsd.Align(mode, tables...)
	if err != nil {
		return err
	}
	log.Printf("Aligned %d tables over %d markers (%s)\n", len(tables), len(aligned.Markers), mode)

	var distRows []DistanceRow
	var matchRows []MatchRow
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			dm, err := aligned.Distances(i, j)
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", names[i], names[j], err)
			}
			for r, rc := range dm.RowClusters {
				for c, cc := range dm.ColClusters {
					distRows = append(distRows, DistanceRow{
						TableA: names[i], ClusterA: rc,
						TableB: names[j], ClusterB: cc,
						RMSD: dm.D.At(r, c),
					})
				}
			}

			if matching {
				results, err := rmsd.Match(dm, strategy)
				if err != nil {
					return fmt.Errorf("%s vs %s: %w", names[i], names[j], err)
				}
				for _, m := range results {
					matchRows = append(matchRows, MatchRow{
						TableA: names[i], Cluster: m.Cluster,
						TableB: names[j], Match: m.Match,
						RMSD: m.RMSD,
					})
				}
			}
		}
	}

	if err := marshalCSV(output+".rmsd.csv", &distRows); err != nil {
		return err
	}
	if matching {
		if err := marshalCSV(output+".matches.csv", &matchRows); err != nil {
			return err
		}
	}
	return nil
}

func parseAlignment(v string) (rmsd.AlignMode, error) {
	switch v {
	case "intersection":
		return rmsd.Intersection, nil
	case "union":
		return rmsd.Union, nil
	}
	return 0, fmt.Errorf("unrecognized alignment %q: want intersection or union", v)
}

func parseMatch(v string) (rmsd.MatchStrategy, bool, error) {
	switch v {
	case "none":
		return 0, false, nil
	case "greedy":
		return rmsd.MatchGreedy, true, nil
	case "optimal":
		return rmsd.MatchOptimal, true, nil
	}
	return 0, false, fmt.Errorf("unrecognized match strategy %q: want none, greedy, or optimal", v)
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
