// SPDX-License-Identifier: MIT

package hicmatrix

import "math"

// Scale is the physical extent (e.g. nucleotides) covered by each row.
// It is either one value broadcast to every row or an explicit per-row vector.
// The zero value is a uniform scale of 1.
type Scale struct {
	uniform float64   // broadcast value; 0 means 1
	rows    []float64 // per-row values; nil for uniform scales
}

// UniformScale returns a Scale that reports v for every row.
func UniformScale(v float64) Scale { return Scale{uniform: v} }

// RowScale returns a per-row Scale. The slice is copied.
func RowScale(v []float64) Scale {
	cp := make([]float64, len(v))
	copy(cp, v)
	return Scale{rows: cp}
}

// IsUniform reports whether every row shares one value.
func (s Scale) IsUniform() bool { return s.rows == nil }

// At returns the extent of row i. Uniform scales ignore i.
func (s Scale) At(i int) float64 {
	if s.rows != nil {
		return s.rows[i]
	}
	if s.uniform == 0 {
		return 1
	}
	return s.uniform
}

// Total returns the summed extent of the first n rows.
func (s Scale) Total(n int) float64 {
	if s.rows == nil {
		return float64(n) * s.At(0)
	}
	var sum float64
	for i := 0; i < n && i < len(s.rows); i++ {
		sum += s.rows[i]
	}
	return sum
}

// slice returns the scale restricted to rows [start,end).
func (s Scale) slice(start, end int) Scale {
	if s.rows == nil {
		return s
	}
	return RowScale(s.rows[start:end])
}

// validate checks finiteness, positivity and (for per-row scales) length n.
func (s Scale) validate(n int) error {
	if s.rows == nil {
		if !validExtent(s.At(0)) {
			return ErrInvalidScale
		}
		return nil
	}
	if len(s.rows) != n {
		return ErrDimensionMismatch
	}
	for _, v := range s.rows {
		if !validExtent(v) {
			return ErrInvalidScale
		}
	}
	return nil
}

func validExtent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
