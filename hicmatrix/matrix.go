// SPDX-License-Identifier: MIT

// Package hicmatrix - sectioned sparse interaction matrix.
//
// Purpose:
//   - Store an N×N interaction matrix as a sparse map from linear index
//     (row·N + col) to value; absent cells are implicit zeros.
//   - Collapse (i,j) and (j,i) into one canonical cell (row ≤ col) when symmetric.
//   - Carry per-row hierarchical labels, per-row physical scale, an optional
//     bias vector and a free-text name through every derived matrix.
//
// Lifecycle:
//   - A Matrix is built once (New, GetSection, GetSample, GetScaled, ingest) and
//     its shape never changes afterwards; only the bias is replaced in place by
//     SetBias. Derived matrices own fresh storage.
//   - A Matrix is not safe for concurrent SetBias; treat each instance as owned
//     by one goroutine.
//
// Complexity quicksheet:
//   - New: O(nnz + N·depth); Get: O(1); ToDense: O(w²) for a w-wide window;
//     GetSection/GetSample: O(N·depth + nnz); GetScaled: O(nnz log nnz + N·depth).

package hicmatrix

import (
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Matrix is a sparse, sectioned, square interaction matrix.
type Matrix struct {
	size      int
	cells     map[int]float64 // canonical linear index -> nonzero value
	symmetric bool

	sections []Label     // one label per row, or nil
	index    sectionIndex // derived from sections at construction

	scale         Scale
	bias          []float64
	normalized    bool
	normalization string
	name          string

	eps       float64
	cacheSize int
	spans     *lru.Cache[string, span]
}

// New builds a Matrix of the given size from a linear-index map.
// Implementation:
//   - Stage 1: validate size, option vectors (sections, scale, bias).
//   - Stage 2: copy cells, dropping zeros and rejecting keys outside [0, N²).
//   - Stage 3: for symmetric matrices fold lower-triangle keys onto their
//     upper-triangle mirror; a mirror holding a different value is an error.
//   - Stage 4: build the section index once.
//
// Errors:
//   - ErrInvalidSize, ErrOutOfRange, ErrDimensionMismatch, ErrInvalidScale, ErrAsymmetry.
//
// Complexity:
//   - Time O(nnz + N·depth), Space O(nnz + N·depth).
func New(size int, cells map[int]float64, opts ...Option) (*Matrix, error) {
	op := fmt.Sprintf("New(%d)", size)
	if size <= 0 {
		return nil, matrixErrorf(op, ErrInvalidSize)
	}
	o := gatherOptions(opts...)

	n2 := size * size
	stored := make(map[int]float64, len(cells))
	for key, v := range cells {
		if key < 0 || key >= n2 {
			return nil, fmt.Errorf("%s: key %d: %w", op, key, ErrOutOfRange)
		}
		if v == 0 {
			continue
		}
		if o.symmetric {
			row, col := key/size, key%size
			if row > col {
				mirror := col*size + row
				if mv, ok := cells[mirror]; ok && mv != 0 {
					if !sameValue(mv, v) {
						return nil, fmt.Errorf("%s: cell (%d,%d)=%g vs (%d,%d)=%g: %w",
							op, row, col, v, col, row, mv, ErrAsymmetry)
					}
					continue
				}
				key = mirror
			}
		}
		stored[key] = v
	}

	m, err := newMatrix(size, stored, o)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	return m, nil
}

// newMatrix takes ownership of canonical cells and validates the option vectors.
func newMatrix(size int, cells map[int]float64, o Options) (*Matrix, error) {
	if o.sections != nil && len(o.sections) != size {
		return nil, fmt.Errorf("sections: %d labels for %d rows: %w", len(o.sections), size, ErrDimensionMismatch)
	}
	if err := o.scale.validate(size); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	if o.bias != nil && len(o.bias) != size {
		return nil, fmt.Errorf("bias: %d values for %d rows: %w", len(o.bias), size, ErrDimensionMismatch)
	}

	spans, err := lru.New[string, span](o.cacheSize)
	if err != nil {
		return nil, err
	}

	return &Matrix{
		size:          size,
		cells:         cells,
		symmetric:     o.symmetric,
		sections:      o.sections,
		index:         buildSectionIndex(o.sections),
		scale:         o.scale,
		bias:          o.bias,
		normalized:    o.bias != nil,
		normalization: o.normalization,
		name:          o.name,
		eps:           o.eps,
		cacheSize:     o.cacheSize,
		spans:         spans,
	}, nil
}

// derivedOptions carries the storage policy of m into a derived matrix.
func (m *Matrix) derivedOptions() Options {
	return Options{
		eps:       m.eps,
		symmetric: m.symmetric,
		cacheSize: m.cacheSize,
	}
}

// inherited marks a provenance string as copied from a parent matrix.
func inherited(provenance string) string {
	if provenance == "" {
		return ""
	}
	return provenance + " (inherited)"
}

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// ---------- Shape & metadata ----------

// Size returns N, the row (and column) count.
func (m *Matrix) Size() int { return m.size }

// Name returns the matrix identity.
func (m *Matrix) Name() string { return m.name }

// Symmetric reports whether (i,j) and (j,i) share one cell.
func (m *Matrix) Symmetric() bool { return m.symmetric }

// NNZ returns the number of stored (nonzero, canonical) cells.
func (m *Matrix) NNZ() int { return len(m.cells) }

// Scale returns the per-row physical extent.
func (m *Matrix) Scale() Scale { return m.scale }

// RealSize returns the summed physical extent of all rows.
func (m *Matrix) RealSize() float64 { return m.scale.Total(m.size) }

// Normalized reports whether a bias vector is attached.
func (m *Matrix) Normalized() bool { return m.normalized }

// Normalization returns the provenance of the bias vector.
func (m *Matrix) Normalization() string { return m.normalization }

// Bias returns a copy of the bias vector, or nil when not normalized.
func (m *Matrix) Bias() []float64 {
	if m.bias == nil {
		return nil
	}
	return append([]float64(nil), m.bias...)
}

// SetBias replaces the bias vector (copied) and records its provenance.
// Errors: ErrDimensionMismatch when len(bias) != Size().
func (m *Matrix) SetBias(bias []float64, provenance string) error {
	if len(bias) != m.size {
		return fmt.Errorf("SetBias: %d values for %d rows: %w", len(bias), m.size, ErrDimensionMismatch)
	}
	m.bias = append([]float64(nil), bias...)
	m.normalized = true
	m.normalization = provenance
	return nil
}

// Sections returns a copy of the per-row labels (nil when unlabeled).
func (m *Matrix) Sections() []Label { return cloneLabels(m.sections) }

// RowLabel returns the label of row i.
func (m *Matrix) RowLabel(i int) (Label, error) {
	if i < 0 || i >= m.size {
		return nil, fmt.Errorf("RowLabel(%d): %w", i, ErrOutOfRange)
	}
	if m.sections == nil {
		return nil, nil
	}
	return m.sections[i].clone(), nil
}

// SectionSize returns how many rows carry a label starting with prefix.
func (m *Matrix) SectionSize(prefix ...string) (int, bool) {
	return m.index.size(Label(prefix))
}

// OrderedSections returns every distinct label prefix in first-seen row order.
func (m *Matrix) OrderedSections() []Label { return cloneLabels(m.index.ordered) }

// SectionDepth returns the longest label length (0 when unlabeled).
func (m *Matrix) SectionDepth() int { return m.index.depth }

// String summarizes the matrix for logs.
func (m *Matrix) String() string {
	kind := "symmetric"
	if !m.symmetric {
		kind = "asymmetric"
	}
	return fmt.Sprintf("Matrix(%q, size=%d, nnz=%d, %s)", m.name, m.size, len(m.cells), kind)
}

// ---------- Element access ----------

// key canonicalizes (row,col) and returns the linear index.
func (m *Matrix) key(row, col int) int {
	if m.symmetric && row > col {
		row, col = col, row
	}
	return row*m.size + col
}

// Get returns the value at (row, col); (col, row) is read instead when the
// matrix is symmetric and row > col. Absent cells read as 0.
// Errors: ErrOutOfRange when row or col is outside [0, N).
// Complexity: O(1).
func (m *Matrix) Get(row, col int) (float64, error) {
	if row < 0 || row >= m.size || col < 0 || col >= m.size {
		return 0, fmt.Errorf("Get(%d,%d): size %d: %w", row, col, m.size, ErrOutOfRange)
	}
	return m.cells[m.key(row, col)], nil
}

// GetIndex returns the value at linear position pos = row·N + col.
// Errors: ErrOutOfRange when pos is outside [0, N²).
func (m *Matrix) GetIndex(pos int) (float64, error) {
	if pos < 0 || pos >= m.size*m.size {
		return 0, fmt.Errorf("GetIndex(%d): size %d: %w", pos, m.size, ErrOutOfRange)
	}
	return m.cells[m.key(pos/m.size, pos%m.size)], nil
}

// at is the unchecked read used by internal loops.
func (m *Matrix) at(row, col int) float64 { return m.cells[m.key(row, col)] }

// sortedKeys returns the stored linear indices in increasing order, so every
// walk over cells (and every floating-point accumulation) is reproducible.
func (m *Matrix) sortedKeys() []int {
	keys := make([]int, 0, len(m.cells))
	for k := range m.cells {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Do visits every stored cell in row-major order; it stops when f returns false.
// Symmetric matrices report each canonical (row ≤ col) cell once.
func (m *Matrix) Do(f func(row, col int, v float64) bool) {
	for _, k := range m.sortedKeys() {
		if !f(k/m.size, k%m.size, m.cells[k]) {
			return
		}
	}
}

// Total returns the sum of all N² dense cells (mirrored cells count twice).
func (m *Matrix) Total() float64 {
	var sum float64
	m.Do(func(row, col int, v float64) bool {
		sum += v
		if m.symmetric && row != col {
			sum += v
		}
		return true
	})
	return sum
}

// ---------- Segmentation-boundary accessors ----------

// Flat returns all N² values in row-major order.
// Complexity: O(N²) time and space.
func (m *Matrix) Flat() []float64 {
	out := make([]float64, m.size*m.size)
	for k, v := range m.cells {
		row, col := k/m.size, k%m.size
		out[row*m.size+col] = v
		if m.symmetric {
			out[col*m.size+row] = v
		}
	}
	return out
}

// RemoveMask marks rows whose self-interaction (diagonal) is zero.
func (m *Matrix) RemoveMask() []bool {
	out := make([]bool, m.size)
	for i := 0; i < m.size; i++ {
		out[i] = m.at(i, i) == 0
	}
	return out
}

// BiasProducts returns bias[i]·bias[j] for every cell in row-major order.
// Errors: ErrNotNormalized when no bias is attached.
func (m *Matrix) BiasProducts() ([]float64, error) {
	if m.bias == nil {
		return nil, matrixErrorf("BiasProducts", ErrNotNormalized)
	}
	out := make([]float64, m.size*m.size)
	for i := 0; i < m.size; i++ {
		base := i * m.size
		for j := 0; j < m.size; j++ {
			out[base+j] = m.bias[i] * m.bias[j]
		}
	}
	return out, nil
}
