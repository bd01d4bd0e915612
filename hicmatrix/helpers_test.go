// SPDX-License-Identifier: MIT
// Package hicmatrix_test contains test helpers.
//
// Purpose:
//   - Build small deterministic matrices from dense row literals.
//   - Keep fixtures tiny enough to verify by hand.

package hicmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julenmendieta/tadbit/hicmatrix"
)

// fixtureRows is a 5-bin genome: chrI has bins 0..2, chrII has bins 3..4.
var fixtureRows = [][]float64{
	{1, 2, 0, 0, 1},
	{2, 3, 1, 0, 0},
	{0, 1, 4, 0, 0},
	{0, 0, 0, 5, 2},
	{1, 0, 0, 2, 6},
}

var fixtureLabels = []hicmatrix.Label{
	{"Scer", "chrI", "1"},
	{"Scer", "chrI", "2"},
	{"Scer", "chrI", "3"},
	{"Scer", "chrII", "1"},
	{"Scer", "chrII", "2"},
}

// cellsOf flattens dense rows into a linear-index map (zeros included).
func cellsOf(rows [][]float64) map[int]float64 {
	n := len(rows)
	cells := make(map[int]float64, n*n)
	for i, row := range rows {
		for j, v := range row {
			cells[i*n+j] = v
		}
	}
	return cells
}

// MustMatrix builds a matrix from dense rows or fails the test.
func MustMatrix(t *testing.T, rows [][]float64, opts ...hicmatrix.Option) *hicmatrix.Matrix {
	t.Helper()
	m, err := hicmatrix.New(len(rows), cellsOf(rows), opts...)
	require.NoError(t, err)
	return m
}

// fixture returns the labeled 5-bin genome named "fix".
func fixture(t *testing.T, opts ...hicmatrix.Option) *hicmatrix.Matrix {
	t.Helper()
	base := []hicmatrix.Option{hicmatrix.WithSections(fixtureLabels), hicmatrix.WithName("fix")}
	return MustMatrix(t, fixtureRows, append(base, opts...)...)
}

// denseOf reads every cell of m through Get.
func denseOf(t *testing.T, m *hicmatrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Size())
	for i := range out {
		out[i] = make([]float64, m.Size())
		for j := range out[i] {
			v, err := m.Get(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}
	return out
}
