// SPDX-License-Identifier: MIT

// Package hicmatrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Materialize windows of a sparse Matrix into a cache-friendly row-major
//     buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Hand the buffer to gonum (Mat) without exposing the internal slice.
//
// AI-Hints:
//   - Dense values are plain copies; mutating a Dense never touches the Matrix
//     it was read from.
//   - Normalized or diagonal-masked views are produced by Matrix.ToDense, not here.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone, Slices, Mat: O(r*c).

package hicmatrix

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
	ctxRow = "Row"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and call-site indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidSize.
//   - Stage 2: allocate zero-filled buffer.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidSize)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the row count.
func (d *Dense) Rows() int { return d.r }

// Cols returns the column count.
func (d *Dense) Cols() int { return d.c }

// Shape packs Rows() and Cols() into a single call.
func (d *Dense) Shape() (rows, cols int) { return d.r, d.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with coordinates and method name.
func (d *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= d.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= d.c {
		return 0, ErrOutOfRange
	}
	return row*d.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (d *Dense) At(row, col int) (float64, error) {
	off, err := d.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}
	return d.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (d *Dense) Set(row, col int, v float64) error {
	off, err := d.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	d.data[off] = v
	return nil
}

// Row returns a copy of row i.
func (d *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= d.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, d.c)
	copy(out, d.data[i*d.c:(i+1)*d.c])
	return out, nil
}

// Slices returns the matrix as independent row slices.
func (d *Dense) Slices() [][]float64 {
	out := make([][]float64, d.r)
	for i := 0; i < d.r; i++ {
		out[i] = make([]float64, d.c)
		copy(out[i], d.data[i*d.c:(i+1)*d.c])
	}
	return out
}

// Total returns the sum of every element.
func (d *Dense) Total() float64 {
	var sum float64
	for _, v := range d.data {
		sum += v
	}
	return sum
}

// RowSums returns r where r[i] = sum_j d[i,j].
// Complexity: O(r*c).
func (d *Dense) RowSums() []float64 {
	out := make([]float64, d.r)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out[i] += d.data[base+j]
		}
	}
	return out
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// It stops early when f returns false.
func (d *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			if !f(i, j, d.data[base+j]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	cp := make([]float64, len(d.data))
	copy(cp, d.data)
	return &Dense{r: d.r, c: d.c, data: cp}
}

// Mat returns a gonum copy of the matrix for linear-algebra consumers.
func (d *Dense) Mat() *mat.Dense {
	cp := make([]float64, len(d.data))
	copy(cp, d.data)
	return mat.NewDense(d.r, d.c, cp)
}

// String renders rows as lines with comma-separated values; intended for
// debugging, not for hot paths.
func (d *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < d.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * d.c
		for j = 0; j < d.c; j++ {
			b.WriteString(strconv.FormatFloat(d.data[base+j], 'g', -1, 64))
			if j+1 < d.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}
	return b.String()
}
