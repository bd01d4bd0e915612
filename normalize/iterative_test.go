// SPDX-License-Identifier: MIT

package normalize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/normalize"
)

// mustMatrix builds a symmetric matrix from dense rows.
func mustMatrix(t *testing.T, rows [][]float64) *hicmatrix.Matrix {
	t.Helper()
	n := len(rows)
	cells := make(map[int]float64)
	for i, row := range rows {
		for j, v := range row {
			cells[i*n+j] = v
		}
	}
	m, err := hicmatrix.New(n, cells)
	require.NoError(t, err)
	return m
}

// rowSums returns Σ_j counts[i][j]/(bias[i]·bias[j]) per row.
func rowSums(rows [][]float64, bias []float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		for j, v := range row {
			out[i] += v / (bias[i] * bias[j])
		}
	}
	return out
}

func spread(v []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return hi - lo
}

// TestIterativeSymmetricPair: a symmetric 2×2 input balances in one pass.
func TestIterativeSymmetricPair(t *testing.T) {
	rows := [][]float64{{0, 4}, {4, 0}}
	bias, err := normalize.Iterative(mustMatrix(t, rows),
		normalize.WithIterations(1), normalize.WithRemove([]bool{false, false}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 2}, bias, 1e-12)

	sums := rowSums(rows, bias)
	require.InDelta(t, sums[0], sums[1], 1e-12)
}

// TestIterativeConverges: more passes drive row sums toward one constant.
func TestIterativeConverges(t *testing.T) {
	rows := [][]float64{{10, 2, 1}, {2, 8, 3}, {1, 3, 6}}
	m := mustMatrix(t, rows)

	prev := math.Inf(1)
	for _, it := range []int{0, 1, 2, 5, 10} {
		bias, err := normalize.Iterative(m, normalize.WithIterations(it))
		require.NoError(t, err)
		s := spread(rowSums(rows, bias))
		require.Less(t, s, prev, "iterations=%d", it)
		prev = s
	}

	bias, err := normalize.Iterative(m, normalize.WithIterations(100))
	require.NoError(t, err)
	sums := rowSums(rows, bias)
	require.Less(t, spread(sums), 1e-9)
	require.InDelta(t, 1.0, sums[0], 1e-9) // sqrt(mean) rescaling restores unit sums here
}

// TestIterativeRemove: removed bins get bias 1 and do not influence the others.
func TestIterativeRemove(t *testing.T) {
	rows := [][]float64{
		{0, 7, 7},
		{7, 0, 4},
		{7, 4, 0},
	}
	m := mustMatrix(t, rows)

	// default mask: every diagonal is zero, so everything is removed
	bias, err := normalize.Iterative(m)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1}, bias)

	bias, err = normalize.Iterative(m, normalize.WithRemove([]bool{true, false, false}))
	require.NoError(t, err)
	require.Equal(t, 1.0, bias[0])
	require.InDelta(t, 2.0, bias[1], 1e-12) // [[0,4],[4,0]] sub-matrix
	require.InDelta(t, 2.0, bias[2], 1e-12)
}

// TestIterativeEmptyRow: a kept row without contacts ends with bias 1.
func TestIterativeEmptyRow(t *testing.T) {
	rows := [][]float64{{2, 0}, {0, 0}}
	bias, err := normalize.Iterative(mustMatrix(t, rows), normalize.WithRemove([]bool{false, false}))
	require.NoError(t, err)
	require.Equal(t, 1.0, bias[1])
	require.False(t, math.IsNaN(bias[0]))
}

func TestIterativeErrors(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 0}, {0, 1}})
	_, err := normalize.Iterative(m, normalize.WithIterations(-1))
	require.ErrorIs(t, err, normalize.ErrNegativeIterations)

	_, err = normalize.Iterative(m, normalize.WithRemove([]bool{false}))
	require.ErrorIs(t, err, normalize.ErrRemoveLength)
}

func TestBalance(t *testing.T) {
	m := mustMatrix(t, [][]float64{{10, 2, 1}, {2, 8, 3}, {1, 3, 6}})
	require.NoError(t, normalize.Balance(m, normalize.WithIterations(20)))
	require.True(t, m.Normalized())
	require.Equal(t, "iterative(20)", m.Normalization())

	d, err := m.ToDense(hicmatrix.AsNormalized())
	require.NoError(t, err)
	require.Less(t, spread(d.RowSums()), 1e-3)
}
