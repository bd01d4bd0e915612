// SPDX-License-Identifier: MIT

// Package hicmatrix - resolution reduction (rebinning).
//
// Purpose:
//   - Aggregate rows of physical extent scale[i] into coarser bins of extent
//     target, without ever summing two leaf sections into one bin.
//
// Model:
//   - The deepest label element is the per-bin id; a leaf section is a row
//     label without it. When a full label repeats on several rows, the
//     deepest element names a section instead and the full label is the leaf.
//     Unlabeled matrices form one leaf.
//   - Each leaf is rebinned on its own coordinate axis, anchored at the leaf's
//     first row: new = leafStart' + floor(pos(i)/target), where pos(i) is the
//     physical offset of row i inside its leaf. Rows and columns share the
//     same mapping, so symmetric input stays symmetric.
//   - A leaf covering Σscale gets ceil(Σscale/target) new bins.
//
// AI-Hints:
//   - The dense total is conserved exactly: an off-diagonal stored cell that
//     lands on a new diagonal bin contributes both of its mirrored halves.
//   - eps absorbs floating-point noise in floor/ceil (0.3/0.1 must be 3).

package hicmatrix

import (
	"fmt"
	"math"
	"strconv"
)

// leaf is a contiguous run of rows sharing one leaf label.
type leaf struct {
	label      Label
	start, end int // old rows [start,end)
	newStart   int
	count      int // new bins
}

// GetScaled rebins the matrix to a uniform physical bin size target.
// Implementation:
//   - Stage 1: split rows into contiguous leaves; size each leaf.
//   - Stage 2: map every old row to its new bin.
//   - Stage 3: sum cells into the new bins; build labels and index.
//
// Errors:
//   - ErrInvalidScale when target is not finite and > 0.
//   - ErrSectionInvariant when a leaf's rows are not contiguous.
//
// Complexity:
//   - Time O(N·depth + nnz), Space O(N + nnz).
func (m *Matrix) GetScaled(target float64) (*Matrix, error) {
	op := fmt.Sprintf("GetScaled(%g)", target)
	if !validExtent(target) {
		return nil, matrixErrorf(op, ErrInvalidScale)
	}

	leaves, err := m.leaves()
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	newIdx := make([]int, m.size)
	next, widest := 0, 0
	for k := range leaves {
		lf := &leaves[k]
		lf.newStart = next
		var pos float64
		for i := lf.start; i < lf.end; i++ {
			b := int(math.Floor(pos/target + m.eps))
			newIdx[i] = lf.newStart + b
			pos += m.scale.At(i)
		}
		lf.count = int(math.Ceil(pos/target - m.eps))
		if lf.count < 1 {
			lf.count = 1
		}
		// floor may reach count when a row ends exactly on the last edge
		for i := lf.start; i < lf.end; i++ {
			if newIdx[i] >= lf.newStart+lf.count {
				newIdx[i] = lf.newStart + lf.count - 1
			}
		}
		next += lf.count
		if lf.count > widest {
			widest = lf.count
		}
	}
	size := next

	cells := make(map[int]float64)
	for key, v := range m.cells {
		row, col := key/m.size, key%m.size
		nr, nc := newIdx[row], newIdx[col]
		if m.symmetric && row != col && nr == nc {
			v *= 2
		}
		cells[nr*size+nc] += v
	}
	for key, v := range cells {
		if v == 0 {
			delete(cells, key)
		}
	}

	o := m.derivedOptions()
	o.scale = UniformScale(target)
	o.name = fmt.Sprintf("%s@%g", m.name, target)
	o.normalization = inherited(m.normalization)
	if m.sections != nil {
		o.sections = rebinLabels(leaves, size, len(strconv.Itoa(widest)))
	}
	out, err := newMatrix(size, cells, o)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	return out, nil
}

// leaves splits rows into contiguous leaf sections.
func (m *Matrix) leaves() ([]leaf, error) {
	if m.sections == nil {
		return []leaf{{start: 0, end: m.size}}, nil
	}
	keep := m.index.depth - 1
	if m.sharedLabels() {
		keep = m.index.depth
	}
	var out []leaf
	seen := make(map[string]bool)
	for i, lab := range m.sections {
		lb := lab
		if len(lb) > keep {
			lb = lb[:keep]
		}
		if n := len(out); n > 0 && out[n-1].label.Equal(lb) {
			out[n-1].end = i + 1
			continue
		}
		key := prefixKey(lb)
		if seen[key] {
			return nil, fmt.Errorf("leaf %q resumes at row %d: %w", lb.String(), i, ErrSectionInvariant)
		}
		seen[key] = true
		out = append(out, leaf{label: lb.clone(), start: i, end: i + 1})
	}
	return out, nil
}

// sharedLabels reports whether any full row label occurs on more than one row.
func (m *Matrix) sharedLabels() bool {
	seen := make(map[string]bool, m.size)
	for _, lab := range m.sections {
		key := prefixKey(lab)
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

// rebinLabels builds leaf label + zero-padded 1-based bin index for every new row.
func rebinLabels(leaves []leaf, size, width int) []Label {
	out := make([]Label, 0, size)
	for _, lf := range leaves {
		for b := 1; b <= lf.count; b++ {
			lab := make(Label, len(lf.label), len(lf.label)+1)
			copy(lab, lf.label)
			out = append(out, append(lab, fmt.Sprintf("%0*d", width, b)))
		}
	}
	return out
}
