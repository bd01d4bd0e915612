// Package tadbit keeps chromosome conformation capture (Hi-C) contact maps in
// memory and prepares them for topologically associating domain (TAD) calling.
//
// What is in the box?
//
//	• Sectioned sparse matrices: N×N counts keyed by row·N+col, hierarchical
//	  per-bin labels (genome → chromosome → bin), per-bin physical size
//	• Views: dense windows, sections by label, samples by index range,
//	  rebinning to a coarser resolution that never merges two chromosomes
//	• Balancing: iterative correction producing a per-bin bias vector
//	• Ingest: an auto-detecting text reader (bare, header, row-label layouts),
//	  in-memory arrays, gonum matrices and binary snapshots
//	• Output: dense text, triplets and a checksummed binary snapshot, each
//	  optionally compressed with gzip, zstd or xz
//	• TADs: segmentation input preparation, breakpoint folding, domain tables
//
// Packages:
//
//	hicmatrix/          Matrix, Scale, Label, Dense, section/sample/rescale, writers
//	normalize/          Iterative, Balance
//	parsers/            AutoRead, ReadMatrix and the Source variants
//	tads/               Segmenter boundary, PrepareInput, Find, Fold, tables
//	stream/             transparent (de)compression
//	config/             YAML settings mapped onto functional options
//	internal/logging/   shared slog logger
//
// Quick ASCII example:
//
//	            chrI        chrII
//	         1   2   3    1   2   3
//	chrI 1 [ 12   5   1 │  0   0   0 ]
//	     2 [  5  15   6 │  1   0   0 ]
//	     3 [  1   6  11 │  1   0   1 ]
//	       ─────────────┼────────────
//	chrII 1[  0   1   1 │ 20   7   2 ]
//	     ...
//
//	GetSection("chrI") returns the upper-left block; GetScaled(2·binSize)
//	rebins each chromosome on its own.
//
// See examples/hic_pipeline.go for the whole flow.
//
//	go get github.com/julenmendieta/tadbit
package tadbit
