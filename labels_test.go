package mem

import (
	"reflect"
	"testing"
)

func TestLabels(t *testing.T) {
	table := &ScoreTable{
		Markers:  []string{"CD4", "CD8", "CD45RA", "CD19"},
		Clusters: []string{"t", "b"},
		Scores: map[string][]float64{
			"t": {6, -7.5, 2.5, 0.3},
			"b": {-1, -2, 0, 9},
		},
	}

	labels := table.Labels(2)

	// |score| > 2, descending magnitude; CD45RA at 2.5 stays, CD19 at 0.3
	// drops out.
	want := []LabelEntry{
		{Marker: "CD8", Score: -7.5},
		{Marker: "CD4", Score: 6},
		{Marker: "CD45RA", Score: 2.5},
	}
	if got := labels.Entries["t"]; !reflect.DeepEqual(got, want) {
		t.Errorf("t entries = %v, want %v", got, want)
	}

	// -2 does not exceed the threshold (strict inequality).
	if got := labels.Entries["b"]; !reflect.DeepEqual(got, []LabelEntry{{Marker: "CD19", Score: 9}}) {
		t.Errorf("b entries = %v", got)
	}

	if got, want := labels.Signature("t"), "CD8-7.5 CD4+6 CD45RA+2.5"; got != want {
		t.Errorf("Signature(t) = %q, want %q", got, want)
	}
}

func TestLabelsTieBreak(t *testing.T) {
	table := &ScoreTable{
		Markers:  []string{"CD8", "CD4"},
		Clusters: []string{"x"},
		Scores:   map[string][]float64{"x": {-3, 3}},
	}

	// Equal magnitudes keep marker input order.
	want := []LabelEntry{{Marker: "CD8", Score: -3}, {Marker: "CD4", Score: 3}}
	if got := table.Labels(2).Entries["x"]; !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestLabelsEmptySignature(t *testing.T) {
	table := &ScoreTable{
		Markers:  []string{"CD4"},
		Clusters: []string{"x"},
		Scores:   map[string][]float64{"x": {0.5}},
	}
	if got := table.Labels(2).Signature("x"); got != "" {
		t.Errorf("Signature = %q, want empty", got)
	}
}
