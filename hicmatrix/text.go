// SPDX-License-Identifier: MIT

package hicmatrix

import (
	"bufio"
	"io"
	"strconv"
)

// rowNames returns the text label of every row: the joined label, or the
// 1-based row number for unlabeled matrices.
func (m *Matrix) rowNames() []string {
	out := make([]string, m.size)
	for i := range out {
		if m.sections != nil {
			out[i] = m.sections[i].String()
		} else {
			out[i] = strconv.Itoa(i + 1)
		}
	}
	return out
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// denseCorner heads the label column of unlabeled matrices, so the numeric
// row numbers of the header are never taken for a data row.
const denseCorner = "bin"

// writeDense emits an optional header line of N column labels, then one line
// per row: optional row label, then N values. Unlabeled matrices get a
// corner cell in front of the header.
func (m *Matrix) writeDense(w io.Writer, headers bool) error {
	bw := bufio.NewWriter(w)
	names := m.rowNames()
	if headers {
		if m.sections == nil {
			bw.WriteString(denseCorner)
			bw.WriteByte('\t')
		}
		for j, name := range names {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(name)
		}
		bw.WriteByte('\n')
	}
	for i := 0; i < m.size; i++ {
		if headers {
			bw.WriteString(names[i])
			bw.WriteByte('\t')
		}
		for j := 0; j < m.size; j++ {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(formatValue(m.at(i, j)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// writeTriplet emits "row\tcol\tvalue" for every cell, zeros included.
// Without headers rows and columns are 1-based numbers.
func (m *Matrix) writeTriplet(w io.Writer, headers, legacy bool) error {
	bw := bufio.NewWriter(w)
	names := m.rowNames()
	if !headers {
		for i := range names {
			names[i] = strconv.Itoa(i + 1)
		}
	}
	for i := 0; i < m.size; i++ {
		row := names[i]
		if legacy {
			row = row + labelJoin + row
		}
		for j := 0; j < m.size; j++ {
			bw.WriteString(row)
			bw.WriteByte('\t')
			bw.WriteString(names[j])
			bw.WriteByte('\t')
			bw.WriteString(formatValue(m.at(i, j)))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
