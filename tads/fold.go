// SPDX-License-Identifier: MIT

package tads

import (
	"fmt"
	"math"
)

// Fold turns breakpoints into consecutive domains covering [0, size).
// Domain k starts one bin after break k-1 (the first at 0) and ends at break
// k; the last domain ends at size-1 and has no score. A break on the last bin
// closes the final domain itself.
// Missing scores (Scores shorter than Positions) read as NaN.
func Fold(br Breaks, size int) ([]Domain, error) {
	if size <= 0 {
		return nil, fmt.Errorf("Fold: size %d: %w", size, ErrInvalidBreaks)
	}
	if len(br.Scores) > len(br.Positions) {
		return nil, fmt.Errorf("Fold: %d scores for %d breaks: %w", len(br.Scores), len(br.Positions), ErrInvalidBreaks)
	}

	out := make([]Domain, 0, len(br.Positions)+1)
	start := 0
	for k, p := range br.Positions {
		if p < start || p >= size {
			return nil, fmt.Errorf("Fold: break %d at %d: %w", k, p, ErrInvalidBreaks)
		}
		score := math.NaN()
		if k < len(br.Scores) {
			score = br.Scores[k]
		}
		out = append(out, Domain{Start: start, End: p, Score: score})
		start = p + 1
	}
	if start < size {
		out = append(out, Domain{Start: start, End: size - 1, Score: math.NaN()})
	}
	return out, nil
}
