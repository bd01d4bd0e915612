// SPDX-License-Identifier: MIT

package parsers

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/julenmendieta/tadbit/hicmatrix"
)

// maxLineBytes bounds one text line; a 100k-bin dense row fits comfortably.
const maxLineBytes = 1 << 30

// readFields splits r into whitespace-separated fields, skipping leading
// comment lines and every blank line. line holds the 1-based source line of
// each kept row.
func readFields(r io.Reader) (items [][]string, line []int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	ln := 0
	for sc.Scan() {
		ln++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if len(items) == 0 && text[0] == '#' {
			continue
		}
		items = append(items, strings.Fields(text))
		line = append(line, ln)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return items, line, nil
}

// AutoRead detects the layout of a text matrix and parses it.
// Implementation:
//   - Stage 1: skip comments; check every line after the first has ncol fields.
//   - Stage 2: classify the layout from ncol, nrow and the first line.
//   - Stage 3: split off header and label columns; parse labels.
//   - Stage 4: coerce values; check squareness and symmetry.
//
// Errors:
//   - ErrNoData, ErrInconsistentColumns, ErrNonSquareMatrix, ErrNonNumericData,
//     ErrLabelMismatch, ErrInvalidPattern, or the reader's own error.
//
// Complexity:
//   - Time O(N²), Space O(N²).
func AutoRead(r io.Reader, opts ...Option) (*Table, error) {
	o := gatherOptions(opts...)
	patterns, err := compilePatterns(o.patterns)
	if err != nil {
		return nil, err
	}

	items, lines, err := readFields(r)
	if err != nil {
		return nil, fmt.Errorf("AutoRead: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("AutoRead: %w", ErrNoData)
	}

	nrow := len(items)
	ncol := len(items[0])
	if nrow > 1 {
		ncol = len(items[1])
		for k := 2; k < nrow; k++ {
			if len(items[k]) != ncol {
				return nil, fmt.Errorf("AutoRead: line %d has %d fields, expected %d: %w",
					lines[k], len(items[k]), ncol, ErrInconsistentColumns)
			}
		}
	} else if ncol != 1 {
		return nil, fmt.Errorf("AutoRead: single line of %d fields: %w", ncol, ErrNonSquareMatrix)
	}

	t := &Table{Symmetric: true}
	var trim int
	t.Shape, trim = classify(items, nrow, ncol, len(patterns))

	var header []string
	if t.Shape.HasHeader() {
		header, items = items[0], items[1:]
		nrow--
		if nrow == 0 {
			return nil, fmt.Errorf("AutoRead: header without rows: %w", ErrNoData)
		}
	}
	if trim < 0 || ncol-trim != nrow {
		return nil, fmt.Errorf("AutoRead: %d rows, %d value columns (%s): %w",
			nrow, ncol-trim, t.Shape, ErrNonSquareMatrix)
	}
	t.Size = nrow

	if trim > 0 {
		if t.RowLabels, err = rowLabels(items, trim, patterns); err != nil {
			return nil, fmt.Errorf("AutoRead: %w", err)
		}
		if header == nil {
			t.ColLabels = cloneLabels(t.RowLabels)
		} else if t.ColLabels, err = colLabels(header, ncol, trim, patterns); err != nil {
			return nil, fmt.Errorf("AutoRead: %w", err)
		}
	}

	if t.Values, err = coerce(items, trim, &o, t); err != nil {
		return nil, fmt.Errorf("AutoRead: %w", err)
	}
	symmetrize(t, &o)

	o.log().Debug("matrix text parsed", "size", t.Size, "shape", t.Shape.String(), "warnings", len(t.Warnings))
	return t, nil
}

// classify picks the layout and the number of label columns.
func classify(items [][]string, nrow, ncol, npat int) (Shape, int) {
	labelCols := func(fallback int) int {
		if npat > 0 {
			return npat
		}
		return fallback
	}
	switch {
	case ncol == nrow && len(items[0]) == ncol && numericRow(items[0]):
		return ShapeBare, 0
	case ncol == nrow:
		return ShapeHeaderCorner, labelCols(1)
	case len(items[0]) == len(items[1]):
		return ShapeRowLabels, labelCols(ncol - nrow)
	default:
		return ShapeHeaderRowLabels, labelCols(ncol - nrow + 1)
	}
}

func numericRow(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// coerce turns the value columns into numbers.
// Count data: integer, else nearest integer of a finite float
// (WarnNonInteger), else "na"/"nan" as zero (WarnNaN).
// Real data: any float, NaN included.
func coerce(items [][]string, trim int, o *Options, t *Table) ([]float64, error) {
	n := len(items)
	out := make([]float64, 0, n*n)
	var rounded, nans int
	for i, row := range items {
		for j, tok := range row[trim:] {
			v, kind, err := parseValue(tok, o.countData)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d) %q: %w", i, j, tok, ErrNonNumericData)
			}
			switch kind {
			case valueRounded:
				rounded++
			case valueNaN:
				nans++
			}
			out = append(out, v)
		}
	}
	if rounded > 0 {
		o.warn(t, WarnNonInteger, fmt.Sprintf("non integer values rounded (%d cells)", rounded))
	}
	if nans > 0 {
		o.warn(t, WarnNaN, fmt.Sprintf("NA or NaN found, set to zero (%d cells)", nans))
	}
	return out, nil
}

type valueKind int

const (
	valueExact valueKind = iota
	valueRounded
	valueNaN
)

func parseValue(tok string, count bool) (float64, valueKind, error) {
	if !count {
		v, err := strconv.ParseFloat(tok, 64)
		return v, valueExact, err
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return float64(v), valueExact, nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return math.Trunc(f + .5), valueRounded, nil
	}
	if low := strings.ToLower(tok); low == "na" || low == "nan" {
		return 0, valueNaN, nil
	}
	return 0, valueExact, ErrNonNumericData
}

// asymmetric reports whether any mirrored pair differs; two NaNs match.
func asymmetric(v []float64, n int) bool {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := v[i*n+j], v[j*n+i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return true
			}
		}
	}
	return false
}

// symmetrize replaces both cells of every mirrored pair by their sum, unless
// the caller keeps asymmetric input.
func symmetrize(t *Table, o *Options) {
	n := t.Size
	if !asymmetric(t.Values, n) {
		return
	}
	if o.keepAsymmetric {
		t.Symmetric = false
		return
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := t.Values[i*n+j] + t.Values[j*n+i]
			t.Values[i*n+j], t.Values[j*n+i] = s, s
		}
	}
	o.warn(t, WarnAsymmetric, "input matrix not symmetric: symmetrizing")
}

func cloneLabels(in []hicmatrix.Label) []hicmatrix.Label {
	out := make([]hicmatrix.Label, len(in))
	for i, l := range in {
		out[i] = append(hicmatrix.Label(nil), l...)
	}
	return out
}
