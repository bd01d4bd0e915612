// SPDX-License-Identifier: MIT

package hicmatrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julenmendieta/tadbit/hicmatrix"
)

// TestNewRejectsBadInput covers the construction error set.
func TestNewRejectsBadInput(t *testing.T) {
	_, err := hicmatrix.New(0, nil)
	require.ErrorIs(t, err, hicmatrix.ErrInvalidSize)

	_, err = hicmatrix.New(2, map[int]float64{4: 1}) // 4 == N²
	require.ErrorIs(t, err, hicmatrix.ErrOutOfRange)

	_, err = hicmatrix.New(2, map[int]float64{-1: 1})
	require.ErrorIs(t, err, hicmatrix.ErrOutOfRange)

	_, err = hicmatrix.New(2, map[int]float64{1: 2, 2: 3}) // (0,1)=2 vs (1,0)=3
	require.ErrorIs(t, err, hicmatrix.ErrAsymmetry)

	_, err = hicmatrix.New(2, nil, hicmatrix.WithSections([]hicmatrix.Label{{"a"}}))
	require.ErrorIs(t, err, hicmatrix.ErrDimensionMismatch)

	_, err = hicmatrix.New(2, nil, hicmatrix.WithScale(hicmatrix.UniformScale(-1)))
	require.ErrorIs(t, err, hicmatrix.ErrInvalidScale)

	_, err = hicmatrix.New(2, nil, hicmatrix.WithScale(hicmatrix.RowScale([]float64{1})))
	require.ErrorIs(t, err, hicmatrix.ErrDimensionMismatch)

	_, err = hicmatrix.New(2, nil, hicmatrix.WithScale(hicmatrix.RowScale([]float64{1, math.NaN()})))
	require.ErrorIs(t, err, hicmatrix.ErrInvalidScale)

	_, err = hicmatrix.New(2, nil, hicmatrix.WithBias([]float64{1}, "x"))
	require.ErrorIs(t, err, hicmatrix.ErrDimensionMismatch)
}

// TestSymmetricFolding verifies lower-triangle keys collapse onto one cell.
func TestSymmetricFolding(t *testing.T) {
	m, err := hicmatrix.New(2, map[int]float64{2: 7}) // (1,0) only
	require.NoError(t, err)
	require.Equal(t, 1, m.NNZ())

	v, err := m.Get(0, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
	v, err = m.Get(1, 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	m, err = hicmatrix.New(2, map[int]float64{1: 4, 2: 4, 0: 0})
	require.NoError(t, err)
	require.Equal(t, 1, m.NNZ()) // identical mirror stored once, zero dropped

	nan := math.NaN()
	m, err = hicmatrix.New(2, map[int]float64{1: nan, 2: nan})
	require.NoError(t, err)
	v, _ = m.Get(1, 0)
	require.True(t, math.IsNaN(v))
}

// TestAsymmetricStorage keeps (i,j) and (j,i) apart.
func TestAsymmetricStorage(t *testing.T) {
	m, err := hicmatrix.New(2, map[int]float64{1: 2, 2: 3}, hicmatrix.WithSymmetric(false))
	require.NoError(t, err)
	require.False(t, m.Symmetric())
	require.Equal(t, [][]float64{{0, 2}, {3, 0}}, denseOf(t, m))
	require.Equal(t, 5.0, m.Total())
}

// TestGetBounds checks the read accessors.
func TestGetBounds(t *testing.T) {
	m := fixture(t)
	_, err := m.Get(5, 0)
	require.ErrorIs(t, err, hicmatrix.ErrOutOfRange)
	_, err = m.Get(0, -1)
	require.ErrorIs(t, err, hicmatrix.ErrOutOfRange)
	_, err = m.GetIndex(25)
	require.ErrorIs(t, err, hicmatrix.ErrOutOfRange)

	v, err := m.GetIndex(4*5 + 3) // (4,3) reads (3,4)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	require.Equal(t, fixtureRows, denseOf(t, m))
}

// TestTotalAndWalk checks Total counts mirrored cells twice and Do is ordered.
func TestTotalAndWalk(t *testing.T) {
	m := fixture(t)
	require.Equal(t, 31.0, m.Total())
	require.Equal(t, 9, m.NNZ())

	var keys []int
	m.Do(func(row, col int, v float64) bool {
		require.LessOrEqual(t, row, col)
		keys = append(keys, row*5+col)
		return true
	})
	require.IsIncreasing(t, keys)

	visited := 0
	m.Do(func(int, int, float64) bool { visited++; return visited < 2 })
	require.Equal(t, 2, visited)
}

// TestSectionIndex checks prefix sizes and first-seen ordering.
func TestSectionIndex(t *testing.T) {
	m := fixture(t)
	require.Equal(t, 3, m.SectionDepth())

	n, ok := m.SectionSize("Scer")
	require.True(t, ok)
	require.Equal(t, 5, n)
	n, ok = m.SectionSize("Scer", "chrI")
	require.True(t, ok)
	require.Equal(t, 3, n)
	_, ok = m.SectionSize("chrI") // not a prefix
	require.False(t, ok)

	ordered := m.OrderedSections()
	require.Equal(t, hicmatrix.Label{"Scer"}, ordered[0])
	require.Equal(t, hicmatrix.Label{"Scer", "chrI"}, ordered[1])
	require.Equal(t, hicmatrix.Label{"Scer", "chrII"}, ordered[5])

	lab, err := m.RowLabel(3)
	require.NoError(t, err)
	require.Equal(t, "Scer_chrII_1", lab.String())

	// labels handed out are copies
	ordered[0][0] = "mutated"
	require.Equal(t, hicmatrix.Label{"Scer"}, m.OrderedSections()[0])
}

// TestBiasAccessors covers SetBias, BiasProducts and RemoveMask.
func TestBiasAccessors(t *testing.T) {
	m := MustMatrix(t, [][]float64{{0, 1}, {1, 2}})
	require.False(t, m.Normalized())
	_, err := m.BiasProducts()
	require.ErrorIs(t, err, hicmatrix.ErrNotNormalized)
	require.Equal(t, []bool{true, false}, m.RemoveMask())

	require.ErrorIs(t, m.SetBias([]float64{1}, "x"), hicmatrix.ErrDimensionMismatch)
	require.NoError(t, m.SetBias([]float64{2, 3}, "manual"))
	require.True(t, m.Normalized())
	require.Equal(t, "manual", m.Normalization())

	p, err := m.BiasProducts()
	require.NoError(t, err)
	require.Equal(t, []float64{4, 6, 6, 9}, p)
	require.Equal(t, []float64{0, 1, 1, 2}, m.Flat())

	b := m.Bias()
	b[0] = 100
	require.Equal(t, []float64{2, 3}, m.Bias())
}

// TestScale covers uniform and per-row extents.
func TestScale(t *testing.T) {
	var zero hicmatrix.Scale
	require.True(t, zero.IsUniform())
	require.Equal(t, 1.0, zero.At(7))

	m := MustMatrix(t, [][]float64{{1, 0}, {0, 1}}, hicmatrix.WithScale(hicmatrix.RowScale([]float64{2, 3})))
	require.False(t, m.Scale().IsUniform())
	require.Equal(t, 5.0, m.RealSize())

	m = MustMatrix(t, [][]float64{{1, 0}, {0, 1}}, hicmatrix.WithScale(hicmatrix.UniformScale(1000)))
	require.Equal(t, 2000.0, m.RealSize())
}

// TestOptionPanics checks that nonsensical option values are programmer errors.
func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { hicmatrix.WithEpsilon(-1) })
	require.Panics(t, func() { hicmatrix.WithEpsilon(math.Inf(1)) })
	require.Panics(t, func() { hicmatrix.WithSectionCache(0) })
}
