// SPDX-License-Identifier: MIT

package hicmatrix

import (
	"fmt"
	"strings"
)

// span is a resolved section: rows [start,end) and the label depth consumed
// by the match. Spans are memoized per matrix; they never hold cell data.
type span struct {
	start, end int
	depth      int
}

// GetSection extracts the rows (and columns) whose label contains every
// requested token, e.g. m.GetSection("chrIV") or m.GetSection("Scer", "chrIV").
// Implementation:
//   - Stage 1: resolve the matching rows (memoized), check they are contiguous.
//   - Stage 2: copy the square block, strip matched label levels, slice scale and bias.
//
// Behavior highlights:
//   - The result owns fresh storage and a freshly built section index.
//   - Name is the requested tokens joined with "_"; bias provenance gains "(inherited)".
//
// Errors:
//   - ErrSectionNotFound when no row matches (or the matrix is unlabeled).
//   - ErrSectionInvariant when matching rows are not contiguous.
//
// Complexity:
//   - Time O(N·depth + nnz), Space O(w·depth + nnz_w).
func (m *Matrix) GetSection(labels ...string) (*Matrix, error) {
	op := fmt.Sprintf("GetSection(%s)", strings.Join(labels, ","))
	sp, err := m.findSection(labels)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var sections []Label
	for i := sp.start; i < sp.end; i++ {
		d, _ := matchDepth(m.sections[i], labels)
		if rest := m.sections[i][d:]; len(rest) > 0 {
			if sections == nil {
				sections = make([]Label, sp.end-sp.start)
			}
			sections[i-sp.start] = rest.clone()
		}
	}
	if sections != nil {
		for k := range sections {
			if sections[k] == nil {
				sections[k] = Label{}
			}
		}
	}

	out, err := m.extract(sp.start, sp.end, sections, strings.Join(labels, labelJoin))
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	return out, nil
}

// findSection resolves labels to a contiguous row span.
func (m *Matrix) findSection(labels []string) (span, error) {
	if len(labels) == 0 || m.sections == nil {
		return span{}, ErrSectionNotFound
	}
	key := prefixKey(labels)
	if sp, ok := m.spans.Get(key); ok {
		return sp, nil
	}

	first, last, count, depth := -1, -1, 0, 0
	for i, lab := range m.sections {
		d, ok := matchDepth(lab, labels)
		if !ok {
			continue
		}
		if first < 0 {
			first, depth = i, d
		}
		last = i
		count++
	}
	if count == 0 {
		return span{}, ErrSectionNotFound
	}
	if last-first+1 != count {
		return span{}, fmt.Errorf("%d matching rows spread over [%d,%d]: %w", count, first, last, ErrSectionInvariant)
	}

	sp := span{start: first, end: last + 1, depth: depth}
	m.spans.Add(key, sp)
	return sp, nil
}

// matchDepth reports whether lab contains every token and, if so, how many
// leading label levels the deepest matched token covers.
func matchDepth(lab Label, tokens []string) (int, bool) {
	depth := 0
	for _, t := range tokens {
		pos := -1
		for k, part := range lab {
			if part == t {
				pos = k
				break
			}
		}
		if pos < 0 {
			return 0, false
		}
		if pos+1 > depth {
			depth = pos + 1
		}
	}
	return depth, true
}

// GetSample extracts the contiguous half-open row/column window [start,end),
// re-indexed from 0. Labels, scale and bias are sliced; the name becomes
// "name[start:end]".
// Errors: ErrOutOfRange unless 0 <= start < end <= N.
// Complexity: O(w·depth + nnz).
func (m *Matrix) GetSample(start, end int) (*Matrix, error) {
	op := fmt.Sprintf("GetSample(%d,%d)", start, end)
	if start < 0 || end <= start || end > m.size {
		return nil, fmt.Errorf("%s: size %d: %w", op, m.size, ErrOutOfRange)
	}
	var sections []Label
	if m.sections != nil {
		sections = cloneLabels(m.sections[start:end])
	}
	out, err := m.extract(start, end, sections, fmt.Sprintf("%s[%d:%d]", m.name, start, end))
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	return out, nil
}

// extract copies the [start,end) block into a new matrix with the given labels
// and name. Canonical keys stay canonical because rows and columns shift alike.
func (m *Matrix) extract(start, end int, sections []Label, name string) (*Matrix, error) {
	n := end - start
	cells := make(map[int]float64)
	for k, v := range m.cells {
		row, col := k/m.size, k%m.size
		if row < start || row >= end || col < start || col >= end {
			continue
		}
		cells[(row-start)*n+(col-start)] = v
	}

	o := m.derivedOptions()
	o.sections = sections
	o.scale = m.scale.slice(start, end)
	o.name = name
	if m.bias != nil {
		o.bias = append([]float64(nil), m.bias[start:end]...)
		o.normalization = inherited(m.normalization)
	}
	return newMatrix(n, cells, o)
}
