// Package hicmatrix stores pairwise interaction counts between genomic bins.
//
// The hicmatrix package provides:
//
//   - Matrix: a sparse N×N map keyed by row·N + col, symmetric by default,
//     with per-row hierarchical labels (organism, chromosome, bin), a
//     physical scale per row, and an optional bias vector.
//   - Section and window extraction (GetSection, GetSample) and resolution
//     reduction (GetScaled) that never merges bins of different sections.
//   - Dense views (ToDense) for plotting and linear algebra, exported to
//     gonum through Dense.Mat.
//   - Writers for dense text, triplet text and a checksummed binary snapshot,
//     optionally compressed (gzip, zstd, xz).
//
// A Matrix is immutable in shape once built; only its bias can be replaced.
// Every derived matrix owns fresh storage.
package hicmatrix
