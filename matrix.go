package mem

import "fmt"

// Matrix is an immutable population matrix: one row of marker measurements
// per cell, plus the cluster label the cell was assigned by whatever produced
// the grouping (a manual gate, a SOM node, a graph community, ...). Build it
// with NewMatrix and do not mutate it afterwards; the scoring engine shares it
// across goroutines.
type Matrix struct {
	markers  []string
	rows     [][]float64
	clusters []string

	index map[string]int // marker name -> column
}

// NewMatrix validates and assembles a population matrix. Every row must carry
// one value per marker, and rows and clusters must line up one to one. Marker
// names must be unique. The inputs are retained, not copied.
func NewMatrix(markers []string, rows [][]float64, clusters []string) (*Matrix, error) {
	if len(markers) == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("%w: %d markers, %d cells", ErrEmptyInput, len(markers), len(rows))
	}
	if len(rows) != len(clusters) {
		return nil, fmt.Errorf("mem: %d rows but %d cluster labels", len(rows), len(clusters))
	}

	index := make(map[string]int, len(markers))
	for i, name := range markers {
		if _, seen := index[name]; seen {
			return nil, fmt.Errorf("mem: duplicate marker %q", name)
		}
		index[name] = i
	}

	for i, row := range rows {
		if len(row) != len(markers) {
			return nil, fmt.Errorf("mem: row %d has %d values, want %d", i, len(row), len(markers))
		}
	}

	return &Matrix{markers: markers, rows: rows, clusters: clusters, index: index}, nil
}

// Markers returns the marker names in column order.
func (m *Matrix) Markers() []string { return m.markers }

// NCells returns the number of rows (cells) in the matrix.
func (m *Matrix) NCells() int { return len(m.rows) }

// Clusters returns the distinct cluster labels in order of first appearance.
// This ordering is the canonical cluster ordering for every derived table.
func (m *Matrix) Clusters() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, c := range m.clusters {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Column returns all values of one marker, in row order.
func (m *Matrix) Column(marker string) ([]float64, error) {
	col, ok := m.index[marker]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, marker)
	}
	out := make([]float64, len(m.rows))
	for i, row := range m.rows {
		out[i] = row[col]
	}
	return out, nil
}

// Apply returns a new matrix with fn mapped over the named marker columns
// (all columns when markers is nil). The receiver is left untouched. This is
// the hook for pre-scoring transforms such as transform.Arcsinh.
func (m *Matrix) Apply(markers []string, fn func(float64) float64) (*Matrix, error) {
	cols, err := m.columnSet(markers)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(m.rows))
	for i, row := range m.rows {
		next := make([]float64, len(row))
		copy(next, row)
		for c := range cols {
			next[c] = fn(next[c])
		}
		rows[i] = next
	}

	return NewMatrix(m.markers, rows, m.clusters)
}

// columnSet resolves marker names to column indices, failing fast on any
// marker the matrix does not carry. nil means every column.
func (m *Matrix) columnSet(markers []string) (map[int]bool, error) {
	cols := make(map[int]bool, len(m.markers))
	if markers == nil {
		for i := range m.markers {
			cols[i] = true
		}
		return cols, nil
	}
	for _, name := range markers {
		c, ok := m.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
		cols[c] = true
	}
	return cols, nil
}

// clusterRows groups row indices by cluster label, preserving first-appearance
// order of the labels.
func (m *Matrix) clusterRows() ([]string, map[string][]int) {
	order := m.Clusters()
	byCluster := make(map[string][]int, len(order))
	for i, c := range m.clusters {
		byCluster[c] = append(byCluster[c], i)
	}
	return order, byCluster
}
