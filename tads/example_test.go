// SPDX-License-Identifier: MIT

package tads_test

import (
	"context"
	"fmt"
	"os"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/tads"
)

// everyThird closes a domain every third bin with a constant score.
type everyThird struct{}

func (everyThird) Segment(_ context.Context, in tads.Input) (tads.Breaks, error) {
	var br tads.Breaks
	for p := 2; p < in.Size-1; p += 3 {
		br.Positions = append(br.Positions, p)
		br.Scores = append(br.Scores, 7)
	}
	return br, nil
}

// ExampleFind runs a segmenter on one replicate and prints the domain table.
func ExampleFind() {
	cells := make(map[int]float64)
	for i := 0; i < 8; i++ {
		cells[i*8+i] = 10 // every bin has a self-interaction, so none is removed
		if i+1 < 8 {
			cells[i*8+i+1] = 4
		}
	}
	m, err := hicmatrix.New(8, cells)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	domains, err := tads.Find(context.Background(), everyThird{}, []*hicmatrix.Matrix{m})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = tads.WriteTable(os.Stdout, domains)
	// Output:
	// #      start   end score
	// 1          1     3     7
	// 2          4     6     7
	// 3          7     8  None
}

// ExampleAnnotate forbids the bins of domains longer than the size limit.
func ExampleAnnotate() {
	domains, _ := tads.Fold(tads.Breaks{Positions: []int{1, 6}, Scores: []float64{2, 5}}, 9)
	annotated, forbidden := tads.Annotate(domains, 30000, 10000)
	for _, a := range annotated {
		fmt.Println(a.Start, a.End, a.Breakable)
	}
	fmt.Println(forbidden)
	// Output:
	// 0 1 true
	// 2 6 false
	// 7 8 true
	// [2 3 4 5 6]
}
