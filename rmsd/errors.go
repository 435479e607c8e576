package rmsd

import "errors"

var (
	// ErrNoCommonFeatures indicates that two score tables, or two aligned
	// score vectors, share no marker over which a distance could be defined.
	ErrNoCommonFeatures = errors.New("rmsd: no common features")

	// ErrDimensionMismatch indicates score vectors of different lengths,
	// i.e. tables that were never aligned onto a common marker axis.
	ErrDimensionMismatch = errors.New("rmsd: dimension mismatch")

	// ErrEmptyInput indicates a score table or distance matrix with no
	// clusters.
	ErrEmptyInput = errors.New("rmsd: empty input")
)
