package main

import (
	"testing"

	"github.com/cytolab/mem"
)

func TestParseReference(t *testing.T) {
	for _, v := range []struct {
		in   string
		want mem.ReferencePolicy
	}{
		{"pooled", mem.ReferencePolicy{Mode: mem.PooledOthers}},
		{"zero", mem.ReferencePolicy{Mode: mem.FixedZero}},
		{"cluster=CD4 T cells", mem.ReferencePolicy{Mode: mem.DesignatedCluster, Cluster: "CD4 T cells"}},
	} {
		got, err := parseReference(v.in)
		if err != nil {
			t.Fatalf("%s: %v", v.in, err)
		}
		if got != v.want {
			t.Errorf("parseReference(%q) = %+v, want %+v", v.in, got, v.want)
		}
	}

	if _, err := parseReference("median"); err == nil {
		t.Error("expected an error for an unknown reference policy")
	}
}
