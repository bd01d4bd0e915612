// SPDX-License-Identifier: MIT

// Package parsers reads interaction matrices from text, binary snapshots and
// in-memory values.
//
// AutoRead recognizes four text layouts without being told which one it gets:
//
//	bare            N lines × N numbers
//	header+corner   a header line, then N lines of label(s) + N numbers,
//	                where the line count equals the field count
//	row labels      N lines of label(s) + N numbers, no header
//	header+rows     a header line, then N lines of label(s) + N numbers
//
// Count data is coerced to integers: plain integers first, then floats
// rounded to the nearest integer, then "na"/"nan" tokens as zero. The last
// two steps emit recoverable warnings. An asymmetric table is symmetrized by
// summing mirrored cells, also with a warning.
//
// ReadMatrix adapts a closed set of input variants (Path, Stream, Lines,
// Text, Rows, FlatSquare, Shaped, Existing) into *hicmatrix.Matrix values.
//
// Errors (sentinel):
//
//	– ErrNoData              no data line after comments.
//	– ErrInconsistentColumns data lines with different field counts.
//	– ErrNonSquareMatrix     the numeric block is not N×N.
//	– ErrNonNumericData      a value that no coercion step accepts.
//	– ErrLabelMismatch       a label a pattern cannot parse.
//	– ErrInvalidPattern      a label pattern that does not compile.
//	– ErrUnsupportedInput    ragged, empty, non-square or unknown inputs.
package parsers

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/internal/logging"
)

var (
	// ErrNoData indicates an input holding nothing but comments or blank lines.
	ErrNoData = errors.New("parsers: no data")

	// ErrInconsistentColumns indicates data lines with different field counts.
	ErrInconsistentColumns = errors.New("parsers: unequal column number")

	// ErrNonSquareMatrix indicates a numeric block whose width differs from its height.
	ErrNonSquareMatrix = errors.New("parsers: non square matrix")

	// ErrNonNumericData indicates a value that cannot be read as a number.
	ErrNonNumericData = errors.New("parsers: non numeric values")

	// ErrLabelMismatch indicates a label that does not match its pattern.
	ErrLabelMismatch = errors.New("parsers: label does not match pattern")

	// ErrInvalidPattern indicates a label pattern that is not a valid regexp.
	ErrInvalidPattern = errors.New("parsers: invalid label pattern")

	// ErrUnsupportedInput indicates an input variant or shape that cannot become a matrix.
	ErrUnsupportedInput = errors.New("parsers: unsupported input")
)

// Shape is the text layout AutoRead detected.
type Shape int

const (
	// ShapeBare has neither header nor row labels.
	ShapeBare Shape = iota
	// ShapeHeaderCorner has a header line and row labels; the line count equals the field count.
	ShapeHeaderCorner
	// ShapeRowLabels has row labels and no header line.
	ShapeRowLabels
	// ShapeHeaderRowLabels has a header line and row labels; the counts differ.
	ShapeHeaderRowLabels
)

// String returns a short layout name.
func (s Shape) String() string {
	switch s {
	case ShapeBare:
		return "bare"
	case ShapeHeaderCorner:
		return "header+corner"
	case ShapeRowLabels:
		return "row-labels"
	case ShapeHeaderRowLabels:
		return "header+row-labels"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// HasHeader reports whether the layout starts with a header line.
func (s Shape) HasHeader() bool { return s == ShapeHeaderCorner || s == ShapeHeaderRowLabels }

// HasRowLabels reports whether data lines start with label columns.
func (s Shape) HasRowLabels() bool { return s != ShapeBare }

// WarningKind classifies recoverable parse problems.
type WarningKind int

const (
	// WarnNonInteger: count data held decimals and was rounded.
	WarnNonInteger WarningKind = iota
	// WarnNaN: "na"/"nan" tokens were read as zero.
	WarnNaN
	// WarnAsymmetric: mirrored cells differed and were summed.
	WarnAsymmetric
)

func (k WarningKind) String() string {
	switch k {
	case WarnNonInteger:
		return "non-integer"
	case WarnNaN:
		return "nan"
	case WarnAsymmetric:
		return "asymmetric"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a recoverable problem met while reading.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Kind.String() + ": " + w.Message }

// Table is the result of AutoRead.
type Table struct {
	Values    []float64 // row-major, Size·Size
	Size      int
	RowLabels []hicmatrix.Label // nil for ShapeBare
	ColLabels []hicmatrix.Label // nil for ShapeBare
	Shape     Shape
	Symmetric bool // false only when asymmetric input was kept as is
	Warnings  []Warning
}

// HasHeader reports whether the source carried a header line.
func (t *Table) HasHeader() bool { return t.Shape.HasHeader() }

// HasRowLabels reports whether the source carried row labels.
func (t *Table) HasRowLabels() bool { return t.Shape.HasRowLabels() }

const panicResolutionInvalid = "parsers: WithResolution: resolution must be finite and > 0"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective reader settings.
type Options struct {
	patterns       []string
	countData      bool
	resolution     float64
	keepAsymmetric bool
	logger         *slog.Logger
	onWarning      func(Warning)
}

// WithLabelPatterns sets one regular expression per label column. Capture
// groups become label parts; a pattern without groups yields the whole match.
// Header tokens use the first pattern that matches them.
func WithLabelPatterns(patterns ...string) Option {
	cp := append([]string(nil), patterns...)
	return func(o *Options) { o.patterns = cp }
}

// WithCountData declares integer count data (true, default) or real values.
func WithCountData(on bool) Option {
	return func(o *Options) { o.countData = on }
}

// WithResolution sets the physical bin size attached to ingested matrices.
// Panics on NaN, Inf or non-positive values.
func WithResolution(res float64) Option {
	if math.IsNaN(res) || math.IsInf(res, 0) || res <= 0 {
		panic(panicResolutionInvalid)
	}
	return func(o *Options) { o.resolution = res }
}

// KeepAsymmetric disables symmetrization; asymmetric input becomes an
// asymmetric matrix.
func KeepAsymmetric() Option {
	return func(o *Options) { o.keepAsymmetric = true }
}

// WithLogger routes warnings and debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithWarningHandler receives every warning as it is raised.
func WithWarningHandler(f func(Warning)) Option {
	return func(o *Options) { o.onWarning = f }
}

func gatherOptions(user ...Option) Options {
	o := Options{countData: true}
	for _, set := range user {
		set(&o)
	}
	return o
}

func (o *Options) log() *slog.Logger { return logging.Or(o.logger) }

// warn records w on t, logs it and forwards it to the handler.
func (o *Options) warn(t *Table, kind WarningKind, msg string) {
	w := Warning{Kind: kind, Message: msg}
	t.Warnings = append(t.Warnings, w)
	o.log().Warn(msg, "kind", kind.String())
	if o.onWarning != nil {
		o.onWarning(w)
	}
}
