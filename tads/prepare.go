// SPDX-License-Identifier: MIT

package tads

import (
	"context"
	"fmt"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/internal/logging"
	"github.com/julenmendieta/tadbit/normalize"
)

// PrepareInput builds the Segmenter input from replicate matrices.
// Implementation:
//   - Stage 1: check every replicate has the size of the first.
//   - Stage 2: remove mask from the option, else the first matrix's zero diagonal.
//   - Stage 3: weights from each matrix's bias, balancing it first when absent.
//
// Balancing does not attach the bias to the matrix.
//
// Complexity:
//   - Time O(R·N²) for R replicates, plus balancing.
func PrepareInput(matrices []*hicmatrix.Matrix, opts ...Option) (Input, error) {
	o := gatherOptions(opts...)
	if len(matrices) == 0 {
		return Input{}, fmt.Errorf("PrepareInput: %w", ErrNoMatrices)
	}
	n := matrices[0].Size()
	for k, m := range matrices[1:] {
		if m.Size() != n {
			return Input{}, fmt.Errorf("PrepareInput: matrix %d has size %d, expected %d: %w", k+1, m.Size(), n, ErrSizeMismatch)
		}
	}

	in := Input{Size: n, MaxTADSize: n, Remove: o.remove}
	if o.maxTADSize > 0 {
		in.MaxTADSize = o.maxTADSize
	}
	if in.Remove == nil {
		in.Remove = matrices[0].RemoveMask()
	} else if len(in.Remove) != n {
		return Input{}, fmt.Errorf("PrepareInput: mask %d for size %d: %w", len(in.Remove), n, ErrSizeMismatch)
	}

	for k, m := range matrices {
		in.Counts = append(in.Counts, m.Flat())

		if m.Normalized() {
			w, err := m.BiasProducts()
			if err != nil {
				return Input{}, fmt.Errorf("PrepareInput: matrix %d: %w", k, err)
			}
			in.Weights = append(in.Weights, w)
			continue
		}
		bopts := append([]normalize.Option{normalize.WithRemove(in.Remove)}, o.balance...)
		bias, err := normalize.Iterative(m, bopts...)
		if err != nil {
			return Input{}, fmt.Errorf("PrepareInput: matrix %d: %w", k, err)
		}
		in.Weights = append(in.Weights, products(bias))
	}
	return in, nil
}

// products returns bias[i]·bias[j] in row-major order.
func products(bias []float64) []float64 {
	n := len(bias)
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = bias[i] * bias[j]
		}
	}
	return out
}

// Find prepares the input, runs seg, and folds its breakpoints into domains.
func Find(ctx context.Context, seg Segmenter, matrices []*hicmatrix.Matrix, opts ...Option) ([]Domain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	in, err := PrepareInput(matrices, opts...)
	if err != nil {
		return nil, err
	}
	br, err := seg.Segment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("Find: segment: %w", err)
	}
	domains, err := Fold(br, in.Size)
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	logging.Or(o.logger).Info("domains found", "replicates", len(matrices), "size", in.Size, "domains", len(domains))
	return domains, nil
}
