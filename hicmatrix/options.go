// SPDX-License-Identifier: MIT

// Package hicmatrix: functional configuration for matrix construction.
//
// Design goals (shared with the rest of the module):
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: WithX constructors panic only on nonsensical values
//     (programmer error); data problems surface as sentinel errors from New.
//   - Options fields are unexported; public entry points consume ...Option.
package hicmatrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance used when floating-point bin positions
	// are floored or ceiled during rebinning (0.1·3/0.1 must land on 3, not 2).
	DefaultEpsilon = 1e-9

	// DefaultSymmetric mirrors the Hi-C convention: (i,j) and (j,i) are one cell.
	DefaultSymmetric = true

	// DefaultSectionCacheSize bounds the per-matrix memo of resolved section spans.
	DefaultSectionCacheSize = 64
)

const (
	panicEpsilonInvalid   = "hicmatrix: WithEpsilon: eps must be finite, non-negative"
	panicCacheSizeInvalid = "hicmatrix: WithSectionCache: size must be > 0"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective construction settings after applying Option setters.
type Options struct {
	eps           float64
	symmetric     bool
	sections      []Label
	scale         Scale
	name          string
	bias          []float64
	normalization string
	cacheSize     int
}

// WithSymmetric selects symmetric (true, default) or asymmetric storage.
func WithSymmetric(symmetric bool) Option {
	return func(o *Options) { o.symmetric = symmetric }
}

// WithSections attaches one hierarchical label per row. The labels are copied.
// Rows sharing a label are expected to be contiguous; New does not enforce it,
// section accessors do.
func WithSections(sections []Label) Option {
	cp := cloneLabels(sections)
	return func(o *Options) { o.sections = cp }
}

// WithScale sets the physical extent of each row (default uniform 1).
func WithScale(s Scale) Option {
	return func(o *Options) { o.scale = s }
}

// WithName sets the free-text identity of the matrix.
func WithName(name string) Option {
	return func(o *Options) { o.name = name }
}

// WithBias attaches a precomputed per-row bias and its provenance.
// The slice is copied; New checks its length.
func WithBias(bias []float64, provenance string) Option {
	cp := append([]float64(nil), bias...)
	return func(o *Options) {
		o.bias = cp
		o.normalization = provenance
	}
}

// WithSectionCache sets the capacity of the section-span memo.
// Panics if size <= 0.
func WithSectionCache(size int) Option {
	if size <= 0 {
		panic(panicCacheSizeInvalid)
	}
	return func(o *Options) { o.cacheSize = size }
}

// WithEpsilon sets the rebinning tolerance. Panics on NaN, Inf or negative eps.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// gatherOptions applies setters over the documented defaults (last writer wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:       DefaultEpsilon,
		symmetric: DefaultSymmetric,
		cacheSize: DefaultSectionCacheSize,
	}
	for _, set := range user {
		set(&o)
	}
	return o
}
