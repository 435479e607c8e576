package mem

import "github.com/montanaflynn/stats"

// FilterIQR returns the markers whose pooled interquartile range exceeds
// thresh, preserving column order. It is the optional pre-scoring truncation
// step: markers that barely vary across all cells carry no enrichment signal
// and only dilute downstream comparisons. A thresh of 0 drops exactly the
// constant columns.
func FilterIQR(m *Matrix, thresh float64) ([]string, error) {
	kept := make([]string, 0, len(m.Markers()))
	for _, marker := range m.Markers() {
		col, err := m.Column(marker)
		if err != nil {
			return nil, err
		}
		iqr, err := stats.InterQuartileRange(col)
		if err != nil {
			return nil, err
		}
		if iqr > thresh {
			kept = append(kept, marker)
		}
	}
	return kept, nil
}
