// SPDX-License-Identifier: MIT

// Package hicmatrix - binary snapshot codec.
//
// Layout (big-endian):
//
//	magic   "HICMTX"          6 bytes
//	version                   1 byte
//	digest  BLAKE3-256        32 bytes, over the payload
//	length                    8 bytes, payload length
//	payload gob(snapshot)
//
// The snapshot holds everything New needs to rebuild the matrix; decoding
// revalidates it through the same constructor path.

package hicmatrix

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/julenmendieta/tadbit/stream"
)

const (
	// SnapshotMagic opens every binary snapshot.
	SnapshotMagic   = "HICMTX"
	snapshotVersion = 1
	digestLen       = 32

	// maxSnapshotPayload guards allocations against corrupt length fields.
	maxSnapshotPayload = 1 << 34
)

type snapshot struct {
	Size          int
	Symmetric     bool
	Keys          []int
	Values        []float64
	Sections      [][]string
	Uniform       float64
	Rows          []float64
	Bias          []float64
	Normalization string
	Name          string
	Eps           float64
	CacheSize     int
}

// IsSnapshot reports whether head starts with the binary snapshot magic.
func IsSnapshot(head []byte) bool {
	return bytes.HasPrefix(head, []byte(SnapshotMagic))
}

func (m *Matrix) encodeBinary(w io.Writer) error {
	keys := m.sortedKeys()
	snap := snapshot{
		Size:          m.size,
		Symmetric:     m.symmetric,
		Keys:          keys,
		Values:        make([]float64, len(keys)),
		Uniform:       m.scale.uniform,
		Rows:          m.scale.rows,
		Bias:          m.bias,
		Normalization: m.normalization,
		Name:          m.name,
		Eps:           m.eps,
		CacheSize:     m.cacheSize,
	}
	for i, k := range keys {
		snap.Values[i] = m.cells[k]
	}
	if m.sections != nil {
		snap.Sections = make([][]string, m.size)
		for i, lab := range m.sections {
			snap.Sections[i] = lab
		}
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	sum := blake3.Sum256(payload.Bytes())

	var head [len(SnapshotMagic) + 1 + digestLen + 8]byte
	copy(head[:], SnapshotMagic)
	head[len(SnapshotMagic)] = snapshotVersion
	copy(head[len(SnapshotMagic)+1:], sum[:])
	binary.BigEndian.PutUint64(head[len(SnapshotMagic)+1+digestLen:], uint64(payload.Len()))

	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	_, err := payload.WriteTo(w)
	return err
}

// ReadBinary decodes a snapshot written with FormatBinary. Compressed
// snapshots (gzip, zstd, xz) are detected and decompressed transparently.
// Errors: ErrCorruptSnapshot for bad magic, version, digest or content.
func ReadBinary(r io.Reader) (m *Matrix, err error) {
	rc, _, err := stream.NewReader(r)
	if err != nil {
		return nil, matrixErrorf("ReadBinary", err)
	}
	defer func() { err = errors.Join(err, rc.Close()) }()

	m, err = decodeBinary(bufio.NewReader(rc))
	if err != nil {
		return nil, matrixErrorf("ReadBinary", err)
	}
	return m, nil
}

// ReadBinaryFile opens path and decodes the snapshot in it.
func ReadBinaryFile(path string) (m *Matrix, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, matrixErrorf("ReadBinaryFile", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return ReadBinary(f)
}

func decodeBinary(r io.Reader) (*Matrix, error) {
	var head [len(SnapshotMagic) + 1 + digestLen + 8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("header: %v: %w", err, ErrCorruptSnapshot)
	}
	if !IsSnapshot(head[:]) {
		return nil, fmt.Errorf("bad magic: %w", ErrCorruptSnapshot)
	}
	if v := head[len(SnapshotMagic)]; v != snapshotVersion {
		return nil, fmt.Errorf("version %d: %w", v, ErrCorruptSnapshot)
	}
	n := binary.BigEndian.Uint64(head[len(SnapshotMagic)+1+digestLen:])
	if n > maxSnapshotPayload {
		return nil, fmt.Errorf("payload length %d: %w", n, ErrCorruptSnapshot)
	}
	// the buffer grows with the bytes actually read, never with the claimed length
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, fmt.Errorf("payload: %v: %w", err, ErrCorruptSnapshot)
	}
	payload := buf.Bytes()
	if sum := blake3.Sum256(payload); !bytes.Equal(sum[:], head[len(SnapshotMagic)+1:len(SnapshotMagic)+1+digestLen]) {
		return nil, fmt.Errorf("digest mismatch: %w", ErrCorruptSnapshot)
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, ErrCorruptSnapshot)
	}
	return snap.matrix()
}

// matrix rebuilds a Matrix and checks the stored keys are canonical.
func (s *snapshot) matrix() (*Matrix, error) {
	if s.Size <= 0 || len(s.Keys) != len(s.Values) || s.CacheSize <= 0 {
		return nil, fmt.Errorf("shape: %w", ErrCorruptSnapshot)
	}
	cells := make(map[int]float64, len(s.Keys))
	for i, k := range s.Keys {
		if k < 0 || k >= s.Size*s.Size || (s.Symmetric && k/s.Size > k%s.Size) {
			return nil, fmt.Errorf("key %d: %w", k, ErrCorruptSnapshot)
		}
		cells[k] = s.Values[i]
	}

	o := Options{
		eps:           s.Eps,
		symmetric:     s.Symmetric,
		scale:         Scale{uniform: s.Uniform, rows: s.Rows},
		name:          s.Name,
		bias:          s.Bias,
		normalization: s.Normalization,
		cacheSize:     s.CacheSize,
	}
	if s.Sections != nil {
		o.sections = make([]Label, len(s.Sections))
		for i, lab := range s.Sections {
			o.sections[i] = Label(append([]string{}, lab...))
		}
	}
	m, err := newMatrix(s.Size, cells, o)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrCorruptSnapshot)
	}
	return m, nil
}
