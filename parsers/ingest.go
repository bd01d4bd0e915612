// SPDX-License-Identifier: MIT

package parsers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/stream"
)

// Source is one matrix input. The set of variants is closed.
type Source interface{ isSource() }

type (
	// Path names a file: text (optionally gzip/zstd/xz compressed) or a binary snapshot.
	Path string
	// Stream is an open reader with the same content rules as Path. It is not closed.
	Stream struct {
		R    io.Reader
		Name string
	}
	// Lines is text already split into lines.
	Lines []string
	// Text is a whole text matrix in memory.
	Text string
	// Rows is a dense in-memory table; every row must be as long as the table.
	Rows [][]float64
	// FlatSquare is a row-major sequence whose length is a perfect square.
	FlatSquare []float64
	// Shaped wraps any 2-D gonum matrix.
	Shaped struct{ M mat.Matrix }
	// Existing passes a matrix through untouched.
	Existing struct{ M *hicmatrix.Matrix }
)

func (Path) isSource()       {}
func (Stream) isSource()     {}
func (Lines) isSource()      {}
func (Text) isSource()       {}
func (Rows) isSource()       {}
func (FlatSquare) isSource() {}
func (Shaped) isSource()     {}
func (Existing) isSource()   {}

// PathOrText probes s: an existing regular file is a Path, multi-line
// content is Text, anything else is reported as a missing file.
func PathOrText(s string) (Source, error) {
	if fi, err := os.Stat(s); err == nil && fi.Mode().IsRegular() {
		return Path(s), nil
	}
	if strings.Contains(s, "\n") {
		return Text(s), nil
	}
	return nil, fmt.Errorf("PathOrText: file %s: %w", s, os.ErrNotExist)
}

// ReadMatrix reads every source in order.
func ReadMatrix(sources []Source, opts ...Option) ([]*hicmatrix.Matrix, error) {
	out := make([]*hicmatrix.Matrix, 0, len(sources))
	for i, src := range sources {
		m, err := ReadOne(src, opts...)
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: source %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ReadOne reads a single source into a matrix holding only its nonzero cells.
// Errors: ErrUnsupportedInput for unknown, empty, ragged or non-square
// in-memory values; AutoRead and snapshot errors for text and binary input.
func ReadOne(src Source, opts ...Option) (*hicmatrix.Matrix, error) {
	o := gatherOptions(opts...)
	switch s := src.(type) {
	case Existing:
		if s.M == nil {
			return nil, fmt.Errorf("ReadOne: nil matrix: %w", ErrUnsupportedInput)
		}
		return s.M, nil
	case Path:
		return readPath(string(s), opts, &o)
	case Stream:
		if s.R == nil {
			return nil, fmt.Errorf("ReadOne: nil reader: %w", ErrUnsupportedInput)
		}
		return readStream(s.R, s.Name, opts, &o)
	case Lines:
		return readText(strings.NewReader(strings.Join(s, "\n")), "", opts, &o)
	case Text:
		return readText(strings.NewReader(string(s)), "", opts, &o)
	case Rows:
		values, n, err := flattenRows(s)
		if err != nil {
			return nil, err
		}
		return fromValues(values, n, &o)
	case FlatSquare:
		n := int(math.Sqrt(float64(len(s))))
		if len(s) == 0 || n*n != len(s) {
			return nil, fmt.Errorf("ReadOne: %d values is not a square: %w", len(s), ErrUnsupportedInput)
		}
		return fromValues(append([]float64(nil), s...), n, &o)
	case Shaped:
		if s.M == nil {
			return nil, fmt.Errorf("ReadOne: nil matrix: %w", ErrUnsupportedInput)
		}
		r, c := s.M.Dims()
		if r != c || r == 0 {
			return nil, fmt.Errorf("ReadOne: shape %dx%d: %w", r, c, ErrUnsupportedInput)
		}
		values := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				values = append(values, s.M.At(i, j))
			}
		}
		return fromValues(values, r, &o)
	}
	return nil, fmt.Errorf("ReadOne: %T: %w", src, ErrUnsupportedInput)
}

func readPath(path string, opts []Option, o *Options) (m *hicmatrix.Matrix, err error) {
	rc, err := stream.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadOne: %w", err)
	}
	defer func() { err = errors.Join(err, rc.Close()) }()
	return sniffed(rc, filepath.Base(path), opts, o)
}

func readStream(r io.Reader, name string, opts []Option, o *Options) (m *hicmatrix.Matrix, err error) {
	rc, _, err := stream.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ReadOne: %w", err)
	}
	defer func() { err = errors.Join(err, rc.Close()) }()
	return sniffed(rc, name, opts, o)
}

// sniffed decodes binary snapshots and hands everything else to AutoRead.
func sniffed(r io.Reader, name string, opts []Option, o *Options) (*hicmatrix.Matrix, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(hicmatrix.SnapshotMagic))
	if hicmatrix.IsSnapshot(head) {
		m, err := hicmatrix.ReadBinary(br)
		if err != nil {
			return nil, fmt.Errorf("ReadOne: %w", err)
		}
		return m, nil
	}
	return readText(br, name, opts, o)
}

func readText(r io.Reader, name string, opts []Option, o *Options) (*hicmatrix.Matrix, error) {
	t, err := AutoRead(r, opts...)
	if err != nil {
		return nil, err
	}
	labels := t.RowLabels
	if labels == nil {
		labels = t.ColLabels
	}
	return build(t.Values, t.Size, t.Symmetric, labels, name, o)
}

// fromValues runs in-memory values through the text path's symmetry check.
func fromValues(values []float64, n int, o *Options) (*hicmatrix.Matrix, error) {
	t := &Table{Values: values, Size: n, Symmetric: true}
	symmetrize(t, o)
	return build(t.Values, n, t.Symmetric, nil, "", o)
}

func flattenRows(rows Rows) ([]float64, int, error) {
	n := len(rows)
	if n == 0 {
		return nil, 0, fmt.Errorf("ReadOne: empty table: %w", ErrUnsupportedInput)
	}
	out := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, 0, fmt.Errorf("ReadOne: row %d has %d values, expected %d: %w", i, len(row), n, ErrUnsupportedInput)
		}
		out = append(out, row...)
	}
	return out, n, nil
}

// build keeps the nonzero cells and attaches labels, scale and name.
func build(values []float64, n int, symmetric bool, labels []hicmatrix.Label, name string, o *Options) (*hicmatrix.Matrix, error) {
	cells := make(map[int]float64)
	for k, v := range values {
		if v != 0 {
			cells[k] = v
		}
	}
	mopts := []hicmatrix.Option{hicmatrix.WithSymmetric(symmetric), hicmatrix.WithName(name)}
	if labels != nil {
		mopts = append(mopts, hicmatrix.WithSections(labels))
	}
	if o.resolution > 0 {
		mopts = append(mopts, hicmatrix.WithScale(hicmatrix.UniformScale(o.resolution)))
	}
	m, err := hicmatrix.New(n, cells, mopts...)
	if err != nil {
		return nil, fmt.Errorf("ReadOne: %w", err)
	}
	o.log().Debug("matrix ingested", "name", name, "size", n, "nnz", m.NNZ(), "symmetric", symmetric)
	return m, nil
}
