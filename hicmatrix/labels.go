// SPDX-License-Identifier: MIT

package hicmatrix

import "strings"

// Label is the hierarchical tag of one row, outer to inner,
// e.g. Label{"Scer", "chrIV", "50000"}.
type Label []string

// labelJoin is the separator used when a label is rendered as one token.
const labelJoin = "_"

// keySep separates label parts inside section-index keys. It cannot appear in
// whitespace-split text tokens, so keys never collide.
const keySep = "\x1f"

// String renders the label as a single token ("Scer_chrIV_50000").
func (l Label) String() string { return strings.Join(l, labelJoin) }

// Equal reports whether l and o have identical parts.
func (l Label) Equal(o Label) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a leading sub-tuple of l.
func (l Label) HasPrefix(p Label) bool {
	return len(p) <= len(l) && l[:len(p)].Equal(p)
}

// clone returns an independent copy.
func (l Label) clone() Label {
	if l == nil {
		return nil
	}
	cp := make(Label, len(l))
	copy(cp, l)
	return cp
}

func prefixKey(parts []string) string { return strings.Join(parts, keySep) }

func cloneLabels(in []Label) []Label {
	if in == nil {
		return nil
	}
	out := make([]Label, len(in))
	for i, l := range in {
		out[i] = l.clone()
	}
	return out
}

// sectionIndex is the derived view of a matrix's row labels: the row count of
// every label prefix (at every depth) and the distinct prefixes in the order
// they are first met when scanning rows top to bottom. It is built once per
// matrix and never patched.
type sectionIndex struct {
	sizes   map[string]int
	ordered []Label
	depth   int // longest label length (ksec)
}

// buildSectionIndex scans rows in order and counts every prefix.
// Complexity: O(N·depth).
func buildSectionIndex(sections []Label) sectionIndex {
	idx := sectionIndex{sizes: make(map[string]int)}
	for _, lab := range sections {
		if len(lab) > idx.depth {
			idx.depth = len(lab)
		}
		for d := 1; d <= len(lab); d++ {
			key := prefixKey(lab[:d])
			if _, seen := idx.sizes[key]; !seen {
				idx.ordered = append(idx.ordered, lab[:d].clone())
			}
			idx.sizes[key]++
		}
	}
	return idx
}

// size returns the number of rows whose label starts with prefix.
func (s sectionIndex) size(prefix Label) (int, bool) {
	n, ok := s.sizes[prefixKey(prefix)]
	return n, ok
}
