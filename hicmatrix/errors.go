// SPDX-License-Identifier: MIT
// Package hicmatrix: sentinel error set.
// Every exported operation returns one of these sentinels, wrapped with the
// call-site context (operation, indices, labels). Callers match with errors.Is.
// No operation panics on user-triggered error conditions; panics are reserved
// for nonsensical option values (programmer error).

package hicmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a matrix is requested with size <= 0.
	ErrInvalidSize = errors.New("hicmatrix: size must be > 0")

	// ErrOutOfRange indicates a row, column, linear index or sample window
	// outside the matrix bounds.
	ErrOutOfRange = errors.New("hicmatrix: index out of range")

	// ErrDimensionMismatch indicates a per-row vector (sections, scale, bias)
	// whose length differs from the matrix size.
	ErrDimensionMismatch = errors.New("hicmatrix: dimension mismatch")

	// ErrAsymmetry signals that a symmetric matrix was given two different
	// values for (i,j) and (j,i).
	ErrAsymmetry = errors.New("hicmatrix: mirrored cells differ in symmetric matrix")

	// ErrInvalidScale signals a non-finite or non-positive physical bin size.
	ErrInvalidScale = errors.New("hicmatrix: scale must be finite and > 0")

	// ErrSectionNotFound indicates that no row carries the requested label(s).
	ErrSectionNotFound = errors.New("hicmatrix: section not found")

	// ErrSectionInvariant indicates that rows sharing a label are not contiguous.
	ErrSectionInvariant = errors.New("hicmatrix: section rows are not contiguous")

	// ErrNotNormalized is returned by normalized reads on a matrix without bias.
	ErrNotNormalized = errors.New("hicmatrix: matrix not normalized")

	// ErrUnsupportedFormat is returned by Write for unknown format names.
	ErrUnsupportedFormat = errors.New("hicmatrix: unsupported format")

	// ErrFocusOutOfBounds indicates a focus window outside [0, size].
	ErrFocusOutOfBounds = errors.New("hicmatrix: focus out of bounds")

	// ErrCorruptSnapshot indicates a binary snapshot with a bad header,
	// digest or payload.
	ErrCorruptSnapshot = errors.New("hicmatrix: corrupt binary snapshot")
)

// matrixErrorf wraps err with the operation tag, e.g. "GetSection(chrT): ...".
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
