// SPDX-License-Identifier: MIT

package parsers_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/parsers"
)

func read(t *testing.T, text string, opts ...parsers.Option) (*parsers.Table, error) {
	t.Helper()
	return parsers.AutoRead(strings.NewReader(text), opts...)
}

// TestAutoReadHeaderAndRowLabels: header line plus one label column per row.
func TestAutoReadHeaderAndRowLabels(t *testing.T) {
	tab, err := read(t, "a\tb\na\t0\t5\nb\t5\t0\n")
	require.NoError(t, err)
	require.True(t, tab.HasHeader())
	require.True(t, tab.HasRowLabels())
	require.Equal(t, parsers.ShapeHeaderCorner, tab.Shape)
	require.Equal(t, 2, tab.Size)
	require.Equal(t, []float64{0, 5, 5, 0}, tab.Values)
	require.Equal(t, []hicmatrix.Label{{"a"}, {"b"}}, tab.RowLabels)
	require.Equal(t, []hicmatrix.Label{{"a"}, {"b"}}, tab.ColLabels)
	require.Empty(t, tab.Warnings)
}

// TestAutoReadNumericHeader: a numeric header one field short of the rows
// is a header, not the first data row.
func TestAutoReadNumericHeader(t *testing.T) {
	tab, err := read(t, "1\t2\n1\t1\t5\n2\t5\t4\n")
	require.NoError(t, err)
	require.Equal(t, parsers.ShapeHeaderCorner, tab.Shape)
	require.Equal(t, 2, tab.Size)
	require.Equal(t, []float64{1, 5, 5, 4}, tab.Values)
	require.Equal(t, []hicmatrix.Label{{"1"}, {"2"}}, tab.ColLabels)
	require.Empty(t, tab.Warnings)
}

func TestAutoReadNonSquare(t *testing.T) {
	_, err := read(t, "1 2\n3 4\n5 6\n7 8\n9 10\n")
	require.ErrorIs(t, err, parsers.ErrNonSquareMatrix)

	_, err = read(t, "1 2 3\n")
	require.ErrorIs(t, err, parsers.ErrNonSquareMatrix)
}

func TestAutoReadShapes(t *testing.T) {
	tab, err := read(t, "# produced by hand\n# second comment\n1 2\n2 1\n\n")
	require.NoError(t, err)
	require.Equal(t, parsers.ShapeBare, tab.Shape)
	require.False(t, tab.HasHeader())
	require.False(t, tab.HasRowLabels())
	require.Nil(t, tab.RowLabels)
	require.Equal(t, []float64{1, 2, 2, 1}, tab.Values)

	tab, err = read(t, "chrT_1 1 2\nchrT_2 2 1\n")
	require.NoError(t, err)
	require.Equal(t, parsers.ShapeRowLabels, tab.Shape)
	require.Equal(t, []hicmatrix.Label{{"chrT_1"}, {"chrT_2"}}, tab.RowLabels)
	require.Equal(t, tab.RowLabels, tab.ColLabels)
	require.Equal(t, []float64{1, 2, 2, 1}, tab.Values)

	tab, err = read(t, "a b\nc x 0 5\nc y 5 0\n")
	require.NoError(t, err)
	require.Equal(t, parsers.ShapeHeaderRowLabels, tab.Shape)
	require.Equal(t, []hicmatrix.Label{{"c", "x"}, {"c", "y"}}, tab.RowLabels)
	require.Equal(t, []hicmatrix.Label{{"a"}, {"b"}}, tab.ColLabels)

	tab, err = read(t, "7\n")
	require.NoError(t, err)
	require.Equal(t, 1, tab.Size)
	require.Equal(t, []float64{7}, tab.Values)
}

// TestAutoReadLabelPatterns splits structured labels into parts.
func TestAutoReadLabelPatterns(t *testing.T) {
	text := "chrIV:1-10\tchrIV:11-20\n" +
		"chrIV:1-10\t0\t5\n" +
		"chrIV:11-20\t5\t0\n"
	tab, err := read(t, text, parsers.WithLabelPatterns(`([^:]+):(\d+)-(\d+)`))
	require.NoError(t, err)
	require.Equal(t, hicmatrix.Label{"chrIV", "1", "10"}, tab.RowLabels[0])
	require.Equal(t, hicmatrix.Label{"chrIV", "11", "20"}, tab.ColLabels[1])

	tab, err = read(t, text, parsers.WithLabelPatterns(`chr\w+`))
	require.NoError(t, err)
	require.Equal(t, hicmatrix.Label{"chrIV"}, tab.RowLabels[1])

	_, err = read(t, "a\tb\nbad\t0\t5\nchrIV:1-2\t5\t0\n", parsers.WithLabelPatterns(`([^:]+):(\d+)-(\d+)`))
	require.ErrorIs(t, err, parsers.ErrLabelMismatch)

	_, err = read(t, "1 2\n2 1\n", parsers.WithLabelPatterns(`(`))
	require.ErrorIs(t, err, parsers.ErrInvalidPattern)
}

func TestAutoReadColumnErrors(t *testing.T) {
	_, err := read(t, "1 2\n3 4 5\n6 7\n")
	require.ErrorIs(t, err, parsers.ErrInconsistentColumns)

	_, err = read(t, "# nothing here\n\n")
	require.ErrorIs(t, err, parsers.ErrNoData)

	_, err = read(t, "1 2\n2 x\n")
	require.ErrorIs(t, err, parsers.ErrNonNumericData)

	_, err = read(t, "a b c d\nx 0 5\ny 5 0\n") // header wider than a data line
	require.ErrorIs(t, err, parsers.ErrLabelMismatch)
}

// TestAutoReadCoercion walks the integer, rounding and NA steps.
func TestAutoReadCoercion(t *testing.T) {
	var seen []parsers.Warning
	handler := parsers.WithWarningHandler(func(w parsers.Warning) { seen = append(seen, w) })

	tab, err := read(t, "1.4 2.6\n2.6 1\n", handler)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 3, 1}, tab.Values)
	require.Len(t, tab.Warnings, 1)
	require.Equal(t, parsers.WarnNonInteger, tab.Warnings[0].Kind)

	seen = nil
	tab, err = read(t, "1 2 3\n2 NA 4\n3 4 nan\n", handler)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 2, 0, 4, 3, 4, 0}, tab.Values)
	require.Len(t, seen, 1)
	require.Equal(t, parsers.WarnNaN, seen[0].Kind)

	tab, err = read(t, "0.5 nan\nnan 0.25\n", parsers.WithCountData(false))
	require.NoError(t, err)
	require.Equal(t, 0.5, tab.Values[0])
	require.True(t, math.IsNaN(tab.Values[1]))
	require.True(t, tab.Symmetric) // matched NaN pair
	require.Empty(t, tab.Warnings)

	_, err = read(t, "1 2\n2 NA\n", parsers.WithCountData(false))
	require.ErrorIs(t, err, parsers.ErrNonNumericData)
}

// TestAutoReadSymmetrize sums mirrored cells of asymmetric input.
func TestAutoReadSymmetrize(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tab, err := read(t, "1 2\n3 4\n", parsers.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5, 5, 4}, tab.Values)
	require.True(t, tab.Symmetric)
	require.Len(t, tab.Warnings, 1)
	require.Equal(t, parsers.WarnAsymmetric, tab.Warnings[0].Kind)
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "symmetrizing")

	tab, err = read(t, "1 2\n3 4\n", parsers.KeepAsymmetric())
	require.NoError(t, err)
	require.False(t, tab.Symmetric)
	require.Equal(t, []float64{1, 2, 3, 4}, tab.Values)
}

func TestWithResolutionPanics(t *testing.T) {
	require.Panics(t, func() { parsers.WithResolution(0) })
	require.Panics(t, func() { parsers.WithResolution(math.NaN()) })
}
