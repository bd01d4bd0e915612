// SPDX-License-Identifier: MIT

// Package normalize estimates per-bin bias vectors for interaction matrices
// by iterative matrix balancing.
//
// Each pass divides every kept row by its sum relative to the mean row sum,
// applying the same factor to the matching column, until (after enough
// passes) all kept rows sum to one common value. The bias of a bin is the
// product of its factors, rescaled by sqrt(mean row sum) at the end so that
// count/(bias[i]·bias[j]) keeps the magnitude of the raw counts.
//
// Complexity:
//
//	– Time:  O(N² + passes·nnz) where nnz counts kept nonzero cells
//	– Space: O(nnz + N)
//
// Options:
//
//	– Iterations: passes beyond the first (default 1, so 2 passes).
//	– Remove:     bins excluded from balancing; their bias is 1.
//	              Default: bins with a zero self-interaction.
//	– Logger:     per-pass debug logging.
//
// The procedure is fixed-iteration. It does not test for convergence;
// callers choose precision through Iterations.
//
// Errors (sentinel):
//
//	– ErrNegativeIterations if Iterations < 0.
//	– ErrRemoveLength       if the Remove mask length differs from Size().
//
// Example usage:
//
//	bias, err := normalize.Iterative(m, normalize.WithIterations(50))
//	if err != nil {
//	    log.Fatal(err)
//	}
package normalize

import (
	"errors"
	"log/slog"
)

// Sentinel errors returned by the balancer.
var (
	// ErrNegativeIterations indicates a negative pass count.
	ErrNegativeIterations = errors.New("normalize: iterations must be non-negative")

	// ErrRemoveLength indicates a remove mask whose length differs from the matrix size.
	ErrRemoveLength = errors.New("normalize: remove mask length differs from matrix size")
)

// DefaultIterations is the number of passes run after the first one.
const DefaultIterations = 1

// Counts is the read surface the balancer needs. *hicmatrix.Matrix satisfies it.
type Counts interface {
	Size() int
	Get(row, col int) (float64, error)
}

// Options configures Iterative.
//
// Iterations – passes beyond the first; must be ≥ 0.
// Remove     – bins excluded from balancing, or nil for the zero-diagonal default.
// Logger     – nil selects the package logger.
type Options struct {
	Iterations int
	Remove     []bool
	Logger     *slog.Logger
}

// Option represents a functional option for configuring Iterative.
type Option func(*Options)

// WithIterations sets the number of passes run after the first one.
func WithIterations(n int) Option {
	return func(o *Options) { o.Iterations = n }
}

// WithRemove sets the bins excluded from balancing. The mask is copied.
func WithRemove(remove []bool) Option {
	cp := append([]bool(nil), remove...)
	return func(o *Options) { o.Remove = cp }
}

// WithLogger routes per-pass debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations}
}
