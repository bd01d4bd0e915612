// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"

	"github.com/julenmendieta/tadbit/hicmatrix"
)

// Balance runs Iterative on m and attaches the result as its bias, with
// provenance "iterative(<iterations>)".
func Balance(m *hicmatrix.Matrix, opts ...Option) error {
	o := DefaultOptions()
	for _, set := range opts {
		set(&o)
	}
	bias, err := Iterative(m, opts...)
	if err != nil {
		return err
	}
	return m.SetBias(bias, fmt.Sprintf("iterative(%d)", o.Iterations))
}
