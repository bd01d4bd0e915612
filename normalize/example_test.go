// SPDX-License-Identifier: MIT

package normalize_test

import (
	"fmt"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/normalize"
)

// ExampleBalance attaches a bias to a matrix and reads the corrected counts.
func ExampleBalance() {
	m, err := hicmatrix.New(2, map[int]float64{1: 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	// the diagonal is empty, so keep both rows explicitly
	if err := normalize.Balance(m, normalize.WithRemove([]bool{false, false})); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.Normalization())
	for _, b := range m.Bias() {
		fmt.Printf("%.3f\n", b)
	}
	// Output:
	// iterative(1)
	// 2.000
	// 2.000
}
