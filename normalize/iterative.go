// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"
	"math"
	"sort"

	"github.com/julenmendieta/tadbit/internal/logging"
)

// Iterative computes the bias vector of counts by iterative balancing.
//
// Steps:
//  1. Copy the kept nonzero cells into a working matrix W (row → col → value).
//  2. Start every kept bin at bias 1.
//  3. Run Iterations+1 passes: S[i] = Σ_j W[i][j]; DB[i] = S[i]/mean(S);
//     B[i] *= DB[i]; W[i][j] /= DB[i]·DB[j]. A zero DB product leaves the
//     cell as it is; a zero mean row sum yields DB = 0.
//  4. Kept bins with nonzero bias are rescaled by sqrt(mean(S)) of the last
//     pass; the others, and removed bins, get 1.
//
// Returns a slice of length counts.Size().
func Iterative(counts Counts, opts ...Option) ([]float64, error) {
	o := DefaultOptions()
	for _, set := range opts {
		set(&o)
	}
	n := counts.Size()
	if o.Iterations < 0 {
		return nil, fmt.Errorf("Iterative(%d): %w", o.Iterations, ErrNegativeIterations)
	}

	remove := o.Remove
	if remove == nil {
		remove = make([]bool, n)
		for i := 0; i < n; i++ {
			v, err := counts.Get(i, i)
			if err != nil {
				return nil, fmt.Errorf("Iterative: diagonal %d: %w", i, err)
			}
			remove[i] = v == 0
		}
	} else if len(remove) != n {
		return nil, fmt.Errorf("Iterative: mask %d for size %d: %w", len(remove), n, ErrRemoveLength)
	}

	bias := make([]float64, n)
	for i := range bias {
		bias[i] = 1
	}

	kept := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !remove[i] {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return bias, nil
	}

	// W: sorted column lists per kept row keep every sum reproducible.
	w := make(map[int]map[int]float64, len(kept))
	for _, i := range kept {
		row := make(map[int]float64)
		for _, j := range kept {
			v, err := counts.Get(i, j)
			if err != nil {
				return nil, fmt.Errorf("Iterative: cell (%d,%d): %w", i, j, err)
			}
			if v != 0 {
				row[j] = v
			}
		}
		w[i] = row
	}
	cols := make(map[int][]int, len(kept))
	for _, i := range kept {
		js := make([]int, 0, len(w[i]))
		for j := range w[i] {
			js = append(js, j)
		}
		sort.Ints(js)
		cols[i] = js
	}

	log := logging.Or(o.Logger)
	sums := make([]float64, n)
	db := make([]float64, n)
	var meanS float64
	for pass := 0; pass <= o.Iterations; pass++ {
		meanS = 0
		for _, i := range kept {
			var s float64
			for _, j := range cols[i] {
				s += w[i][j]
			}
			sums[i] = s
			meanS += s
		}
		meanS /= float64(len(kept))

		spread := 0.0
		for _, i := range kept {
			if meanS == 0 {
				db[i] = 0
			} else {
				db[i] = sums[i] / meanS
			}
			bias[i] *= db[i]
			if d := math.Abs(db[i] - 1); d > spread {
				spread = d
			}
		}
		for _, i := range kept {
			for _, j := range cols[i] {
				if d := db[i] * db[j]; d != 0 {
					w[i][j] /= d
				}
			}
		}
		log.Debug("balancing pass", "pass", pass, "mean", meanS, "max_deviation", spread)
	}

	scale := math.Sqrt(meanS)
	for _, i := range kept {
		if bias[i] == 0 {
			bias[i] = 1
			continue
		}
		bias[i] *= scale
	}
	return bias, nil
}
