// SPDX-License-Identifier: MIT

// Package tads is the boundary between interaction matrices and a
// topologically-associated-domain (TAD) segmentation routine.
//
// The segmentation statistic itself lives behind the Segmenter interface.
// This package prepares its input (raw counts, a remove mask, bias-product
// weights), folds the breakpoints it returns into domains, and reads and
// writes the plain-text domain table.
//
// Errors (sentinel):
//
//	– ErrNoMatrices     if no matrix is given.
//	– ErrSizeMismatch   if replicate matrices differ in size.
//	– ErrInvalidBreaks  if breakpoints are out of range or not increasing.
//	– ErrBadTable       if a domain table line cannot be parsed.
package tads

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/julenmendieta/tadbit/normalize"
)

var (
	// ErrNoMatrices indicates an empty replicate list.
	ErrNoMatrices = errors.New("tads: no matrices")

	// ErrSizeMismatch indicates replicates of different sizes.
	ErrSizeMismatch = errors.New("tads: matrices differ in size")

	// ErrInvalidBreaks indicates breakpoints outside [0, size) or not strictly increasing.
	ErrInvalidBreaks = errors.New("tads: invalid breakpoints")

	// ErrBadTable indicates a malformed domain table line.
	ErrBadTable = errors.New("tads: malformed domain table")
)

// Input is what a Segmenter consumes. Counts and Weights hold one row-major
// N² slice per replicate; Weights[k][i·N+j] = bias[i]·bias[j].
type Input struct {
	Size       int
	Counts     [][]float64
	Remove     []bool
	Weights    [][]float64
	MaxTADSize int
}

// Breaks is what a Segmenter returns: the last bin of every domain but the
// final one, and the score of each break.
type Breaks struct {
	Positions []int
	Scores    []float64
}

// Segmenter finds domain breakpoints.
type Segmenter interface {
	Segment(ctx context.Context, in Input) (Breaks, error)
}

// Domain is a run of bins [Start, End], 0-based and inclusive.
// Score is NaN when the domain has no closing breakpoint score.
type Domain struct {
	Start, End int
	Score      float64
}

// HasScore reports whether Score is set.
func (d Domain) HasScore() bool { return !math.IsNaN(d.Score) }

// Len returns the number of bins in the domain.
func (d Domain) Len() int { return d.End - d.Start + 1 }

const panicMaxTADSize = "tads: WithMaxTADSize: size must be > 0"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective input-preparation settings.
type Options struct {
	remove     []bool
	maxTADSize int
	balance    []normalize.Option
	logger     *slog.Logger
}

// WithRemove overrides the default remove mask (zero diagonal of the first matrix).
func WithRemove(remove []bool) Option {
	cp := append([]bool(nil), remove...)
	return func(o *Options) { o.remove = cp }
}

// WithMaxTADSize caps the domain length, in bins (default N). Panics if n <= 0.
func WithMaxTADSize(n int) Option {
	if n <= 0 {
		panic(panicMaxTADSize)
	}
	return func(o *Options) { o.maxTADSize = n }
}

// WithBalanceOptions configures the balancer run for matrices without bias.
func WithBalanceOptions(opts ...normalize.Option) Option {
	cp := append([]normalize.Option(nil), opts...)
	return func(o *Options) { o.balance = cp }
}

// WithLogger routes progress records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(user ...Option) Options {
	var o Options
	for _, set := range user {
		set(&o)
	}
	return o
}
