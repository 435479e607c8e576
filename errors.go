package mem

import "errors"

// Scoring failures are validation errors: the input cannot produce a defined
// result, and retrying without changing the input cannot succeed. Callers can
// distinguish them with errors.Is.
var (
	// ErrInsufficientSamples indicates that a cluster, or the reference set
	// selected for it, holds fewer than two cells, so its median and IQR are
	// undefined. No partial score table is produced.
	ErrInsufficientSamples = errors.New("mem: insufficient samples")

	// ErrUnknownFeature indicates that a requested marker does not exist in
	// the matrix.
	ErrUnknownFeature = errors.New("mem: unknown feature")

	// ErrEmptyInput indicates a matrix with no cells or no clusters.
	ErrEmptyInput = errors.New("mem: empty input")
)
