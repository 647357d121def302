// SPDX-License-Identifier: MIT

// Package matrix - interop with gonum.org/v1/gonum/mat.
//
// Purpose:
//   - ToGonum / FromGonum copy between any backend and gonum's *mat.Dense, so
//     analysis tooling can cross-check results against a reference library.
//   - AsGonum exposes a live matrix as a read-only mat.Matrix without copying.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a new *mat.Dense (m is not consumed).
// Complexity: O(r*c) allocation + O(k) writes.
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	out := mat.NewDense(m.Rows(), m.Cols(), nil)
	m.Do(func(i, j int, v float64) bool {
		out.Set(i, j, v)

		return true
	})

	return out, nil
}

// FromGonum copies any mat.Matrix into a matrix of the given backend.
// Zero cells are skipped, so sparse backends only store non-zeros.
// Errors: ErrInvalidShape (empty gonum matrix), ErrUnknownKind, ErrNaNInf.
func FromGonum(kind Kind, g mat.Matrix, opts ...Option) (Matrix, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	info := Info{Shape: Shape{Rows: r, Cols: c}}
	if !info.Shape.Valid() {
		return nil, matrixErrorf("FromGonum", ErrInvalidShape)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v = g.At(i, j); v != 0 {
				info.Entries = append(info.Entries, Entry{Position: Position{Row: i, Col: j}, Value: v})
			}
		}
	}

	res, err := FromInfo(kind, info, opts...)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}

	return res, nil
}

// gonumView adapts a Matrix to mat.Matrix. gonum reports misuse by panicking,
// so At panics where the backend would return an error.
type gonumView struct {
	m Matrix
}

var _ mat.Matrix = gonumView{}

// AsGonum wraps m as a read-only mat.Matrix. The view reads through to m, so
// it must not outlive a Transposed call on m.
func AsGonum(m Matrix) mat.Matrix { return gonumView{m: m} }

// Dims implements mat.Matrix.
func (g gonumView) Dims() (r, c int) { return g.m.Rows(), g.m.Cols() }

// At implements mat.Matrix.
func (g gonumView) At(i, j int) float64 {
	v, err := g.m.At(i, j)
	if err != nil {
		panic(fmt.Sprintf("matrix: gonum view: %v", err))
	}

	return v
}

// T implements mat.Matrix with gonum's implicit transpose, leaving m intact.
func (g gonumView) T() mat.Matrix { return mat.Transpose{Matrix: g} }
