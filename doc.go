// Package mem implements Marker Enrichment Modeling (MEM) for cytometry
// populations. Given a matrix of per-cell marker measurements and a cluster
// assignment for each cell, it produces a signed, bounded enrichment score for
// every (cluster, marker) pair and a compact enrichment label per cluster.
//
// A score near +10 means the marker is specifically and consistently high in
// that cluster relative to its reference; a score near -10 means specifically
// low. Scores are comparable across clusterings of the same underlying cells,
// which is what the companion rmsd package exploits to compare, for example,
// expert manual gates against unsupervised clusters.
package mem
