// Package rmsd compares MEM score tables produced under different cluster
// assignments of the same underlying cells. Tables are first aligned onto a
// common marker axis, then every cross-table cluster pair is scored by the
// root-mean-square deviation of its aligned enrichment vectors. An RMSD near
// 0 means two clusters carry statistically indistinguishable enrichment
// signatures; values range up to twice the scoring cap.
//
// The optional best-match report pairs each cluster of one table with its
// nearest cluster in another, either greedily (independent nearest neighbor)
// or as a global minimum-cost one-to-one assignment.
package rmsd
