// SPDX-License-Identifier: MIT

// Package stream opens and creates matrix streams with transparent compression.
//
// Readers sniff the leading magic bytes (gzip, zstd, xz) and fall back to the
// raw stream; writers wrap the destination with the requested Codec. Every
// ReadCloser/WriteCloser returned here must be closed by the caller; closing
// releases the codec state and, for Open, the underlying file.
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Codec names a compression scheme.
type Codec int

const (
	// None leaves the stream uncompressed.
	None Codec = iota
	// Gzip is the default codec when compression is requested.
	Gzip
	// Zstd uses Zstandard frames.
	Zstd
	// XZ uses the xz container (LZMA2).
	XZ
)

// ErrUnknownCodec is returned by ParseCodec and NewWriter for unsupported codecs.
var ErrUnknownCodec = errors.New("stream: unknown codec")

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXZ   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// sniffLen is the longest magic we look for.
const sniffLen = 6

// String returns the canonical codec name.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case XZ:
		return "xz"
	}
	return fmt.Sprintf("codec(%d)", int(c))
}

// ParseCodec maps a codec name ("none", "gzip"/"gz", "zstd"/"zst", "xz") to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "xz":
		return XZ, nil
	}
	return None, fmt.Errorf("ParseCodec(%q): %w", name, ErrUnknownCodec)
}

// Detect reports the codec whose magic prefixes head.
func Detect(head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, magicXZ):
		return XZ
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	}
	return None
}

// multiReadCloser closes every closer in order and reports the first error.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// NewReader wraps r with the decoder matching its magic bytes.
// Closing the result does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, None, fmt.Errorf("stream: sniff: %w", err)
	}

	codec := Detect(head)
	switch codec {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("stream: gzip: %w", err)
		}
		return gr, codec, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("stream: zstd: %w", err)
		}
		return zr.IOReadCloser(), codec, nil
	case XZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("stream: xz: %w", err)
		}
		return io.NopCloser(xr), codec, nil
	}

	return io.NopCloser(br), None, nil
}

// Open opens path and returns a decompressing reader over it.
func Open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, _, err := NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &multiReadCloser{Reader: rc, closers: []io.Closer{rc, fh}}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with an encoder for codec. Close flushes the encoder but
// does not close w.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("stream: zstd: %w", err)
		}
		return zw, nil
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("stream: xz: %w", err)
		}
		return xw, nil
	}
	return nil, fmt.Errorf("NewWriter(%s): %w", codec, ErrUnknownCodec)
}
