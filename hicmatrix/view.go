// SPDX-License-Identifier: MIT

package hicmatrix

import "fmt"

// DenseOption configures ToDense.
type DenseOption func(*denseOptions)

type denseOptions struct {
	focused    bool
	start, end int // 1-based inclusive start, inclusive end
	noDiagonal bool
	normalized bool
}

// DenseFocus restricts ToDense to rows/columns start..end, counted from 1 and
// inclusive at both ends (DenseFocus(1, N) is the whole matrix).
func DenseFocus(start, end int) DenseOption {
	return func(o *denseOptions) {
		o.focused = true
		o.start, o.end = start, end
	}
}

// WithoutDiagonal replaces each diagonal cell with 1 when nonzero and 0 otherwise.
// This is a display convenience, not a mathematical operation.
func WithoutDiagonal() DenseOption {
	return func(o *denseOptions) { o.noDiagonal = true }
}

// AsNormalized divides every cell (i,j) by bias[i]·bias[j].
func AsNormalized() DenseOption {
	return func(o *denseOptions) { o.normalized = true }
}

// ToDense materializes the matrix (or a focus window of it) into a Dense.
// Implementation:
//   - Stage 1: resolve the window; 1-based start converts to 0-based.
//   - Stage 2: read every (i,j) of the window, mirrored reads for symmetric storage.
//   - Stage 3: optional bias division, then optional diagonal masking.
//
// Errors:
//   - ErrNotNormalized when AsNormalized is requested without a bias.
//   - ErrFocusOutOfBounds when the window is empty or leaves [1, N].
//
// Complexity:
//   - Time O(w²), Space O(w²) for a window of width w.
func (m *Matrix) ToDense(opts ...DenseOption) (*Dense, error) {
	var o denseOptions
	for _, set := range opts {
		set(&o)
	}
	if o.normalized && m.bias == nil {
		return nil, matrixErrorf("ToDense", ErrNotNormalized)
	}

	start, end := 0, m.size
	if o.focused {
		if o.start < 1 || o.end < o.start || o.end > m.size {
			return nil, fmt.Errorf("ToDense: focus (%d,%d) on size %d: %w", o.start, o.end, m.size, ErrFocusOutOfBounds)
		}
		start, end = o.start-1, o.end
	}

	w := end - start
	d, err := NewDense(w, w)
	if err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	var i, j int
	var v float64
	for i = start; i < end; i++ {
		base := (i - start) * w
		for j = start; j < end; j++ {
			v = m.at(i, j)
			if o.normalized && v != 0 {
				v = v / m.bias[i] / m.bias[j]
			}
			d.data[base+j-start] = v
		}
	}

	if o.noDiagonal {
		for i = 0; i < w; i++ {
			if d.data[i*w+i] != 0 {
				d.data[i*w+i] = 1
			}
		}
	}
	return d, nil
}
