// SPDX-License-Identifier: MIT

package hicmatrix

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/julenmendieta/tadbit/internal/logging"
	"github.com/julenmendieta/tadbit/stream"
)

// Format selects the on-disk representation used by Write.
type Format int

const (
	// FormatBinary is the full-fidelity snapshot (see ReadBinary).
	FormatBinary Format = iota
	// FormatDense is tab-separated dense text with optional labels.
	FormatDense
	// FormatTriplet writes one "row\tcol\tvalue" line per cell.
	FormatTriplet
)

var formatNames = map[string]Format{
	"binary":  FormatBinary,
	"pik":     FormatBinary,
	"bin":     FormatBinary,
	"dense":   FormatDense,
	"mtx":     FormatDense,
	"triplet": FormatTriplet,
	"abc":     FormatTriplet,
}

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatDense:
		return "dense"
	case FormatTriplet:
		return "triplet"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name or alias (case-insensitive).
// Errors: ErrUnsupportedFormat.
func ParseFormat(name string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("format %q: %w", name, ErrUnsupportedFormat)
}

// WriteOption configures Write and WriteFile.
type WriteOption func(*writeOptions)

type writeOptions struct {
	format     Format
	formatName string
	named      bool
	codec      stream.Codec
	headers    bool
	focused    bool
	start, end int
	legacy     bool
	logger     *slog.Logger
}

// WithFormat selects the output format (default FormatBinary).
func WithFormat(f Format) WriteOption {
	return func(o *writeOptions) { o.format, o.named = f, false }
}

// WithFormatName selects the format by name ("binary", "pik", "bin", "dense",
// "mtx", "triplet", "abc"). Unknown names make Write fail with ErrUnsupportedFormat.
func WithFormatName(name string) WriteOption {
	return func(o *writeOptions) { o.formatName, o.named = name, true }
}

// WithCompression toggles gzip compression of the output stream.
func WithCompression(on bool) WriteOption {
	return func(o *writeOptions) {
		o.codec = stream.None
		if on {
			o.codec = stream.Gzip
		}
	}
}

// WithCodec selects an explicit compression codec.
func WithCodec(c stream.Codec) WriteOption {
	return func(o *writeOptions) { o.codec = c }
}

// WithHeaders toggles label rows/columns in text formats (default true).
func WithHeaders(on bool) WriteOption {
	return func(o *writeOptions) { o.headers = on }
}

// WithWriteFocus restricts the output to rows/columns [start,end), 0-based.
func WithWriteFocus(start, end int) WriteOption {
	return func(o *writeOptions) {
		o.focused = true
		o.start, o.end = start, end
	}
}

// WithLegacyTripletLabels makes the triplet writer repeat the row label as
// "label_label", as older files do.
func WithLegacyTripletLabels() WriteOption {
	return func(o *writeOptions) { o.legacy = true }
}

// WithWriteLogger overrides the package logger for one write.
func WithWriteLogger(l *slog.Logger) WriteOption {
	return func(o *writeOptions) { o.logger = l }
}

// Write serializes the matrix (or its focus window) to w.
// Implementation:
//   - Stage 1: resolve format and focus; nothing is written on failure.
//   - Stage 2: wrap w with the selected codec, encode, close the codec.
//
// Errors:
//   - ErrUnsupportedFormat for unknown format names.
//   - ErrFocusOutOfBounds when the focus is not within [0, N] or is empty.
//   - I/O and codec errors, joined with the codec close error.
//
// Write never closes w itself.
func (m *Matrix) Write(w io.Writer, opts ...WriteOption) (err error) {
	o := writeOptions{format: FormatBinary, headers: true}
	for _, set := range opts {
		set(&o)
	}
	if o.named {
		if o.format, err = ParseFormat(o.formatName); err != nil {
			return matrixErrorf("Write", err)
		}
	}
	switch o.format {
	case FormatBinary, FormatDense, FormatTriplet:
	default:
		return matrixErrorf("Write", fmt.Errorf("%v: %w", o.format, ErrUnsupportedFormat))
	}

	src := m
	if o.focused {
		if o.start < 0 || o.start > m.size || o.end <= o.start || o.end > m.size {
			return fmt.Errorf("Write: focus [%d,%d) on size %d: %w", o.start, o.end, m.size, ErrFocusOutOfBounds)
		}
		if src, err = m.GetSample(o.start, o.end); err != nil {
			return matrixErrorf("Write", err)
		}
	}

	cw, err := stream.NewWriter(w, o.codec)
	if err != nil {
		return matrixErrorf("Write", err)
	}
	defer func() { err = errors.Join(err, cw.Close()) }()

	switch o.format {
	case FormatBinary:
		err = src.encodeBinary(cw)
	case FormatDense:
		err = src.writeDense(cw, o.headers)
	case FormatTriplet:
		err = src.writeTriplet(cw, o.headers, o.legacy)
	}
	if err != nil {
		return matrixErrorf("Write", err)
	}

	logging.Or(o.logger).Debug("matrix written",
		"name", src.name, "size", src.size, "format", o.format.String(), "codec", o.codec.String())
	return nil
}

// WriteFile creates (or truncates) path and writes the matrix into it.
// The file is closed on every path, including format errors.
func (m *Matrix) WriteFile(path string, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return matrixErrorf("WriteFile", err)
	}
	return m.writeAndClose(f, opts...)
}

func (m *Matrix) writeAndClose(wc io.WriteCloser, opts ...WriteOption) (err error) {
	defer func() { err = errors.Join(err, wc.Close()) }()
	return m.Write(wc, opts...)
}
