package mem

import "fmt"

// ReferenceMode selects which cells a cluster's statistics are compared
// against.
type ReferenceMode int

const (
	// PooledOthers compares each cluster against all cells outside it. This
	// is the standard MEM reference.
	PooledOthers ReferenceMode = iota

	// DesignatedCluster compares every cluster against one fixed cluster,
	// e.g. an unstained or naive control population.
	DesignatedCluster

	// FixedZero compares against a synthetic baseline with median 0 and
	// IQR 1, for data already centered by an upstream transform.
	FixedZero
)

func (m ReferenceMode) String() string {
	switch m {
	case PooledOthers:
		return "pooled-others"
	case DesignatedCluster:
		return "designated-reference"
	case FixedZero:
		return "fixed-zero"
	}
	return fmt.Sprintf("ReferenceMode(%d)", int(m))
}

// ReferencePolicy is the reference selection rule for one scoring run. It is
// fixed for the duration of the run. Cluster is only consulted when Mode is
// DesignatedCluster.
type ReferencePolicy struct {
	Mode    ReferenceMode
	Cluster string
}

// Config carries the tunables of one scoring run. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// Reference selects the comparison cells per cluster.
	Reference ReferencePolicy

	// ScaleCap bounds scores to [-ScaleCap, +ScaleCap]. Raw values beyond
	// the cap saturate rather than fail: enrichment past the cap is not
	// meaningfully distinguishable.
	ScaleCap float64

	// RoundTo is the rounding granularity of reported scores.
	RoundTo float64

	// DisplayThreshold is the minimum |score| for a marker to appear in a
	// cluster's enrichment label.
	DisplayThreshold float64
}

// DefaultConfig returns the conventional MEM configuration: pooled-others
// reference, scores in [-10, +10] rounded to 0.1, labels showing |score| > 2.
func DefaultConfig() Config {
	return Config{
		Reference:        ReferencePolicy{Mode: PooledOthers},
		ScaleCap:         10,
		RoundTo:          0.1,
		DisplayThreshold: 2,
	}
}

func (c Config) validate() error {
	if c.ScaleCap <= 0 {
		return fmt.Errorf("mem: ScaleCap must be > 0, got %g", c.ScaleCap)
	}
	if c.RoundTo <= 0 {
		return fmt.Errorf("mem: RoundTo must be > 0, got %g", c.RoundTo)
	}
	if c.DisplayThreshold < 0 {
		return fmt.Errorf("mem: DisplayThreshold must be >= 0, got %g", c.DisplayThreshold)
	}
	return nil
}
