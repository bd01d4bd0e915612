// SPDX-License-Identifier: MIT

package hicmatrix

import "io"

// WriteAndClose exposes the scoped writer behind WriteFile so tests can
// observe that the sink is closed on failure paths.
func (m *Matrix) WriteAndClose(wc io.WriteCloser, opts ...WriteOption) error {
	return m.writeAndClose(wc, opts...)
}
