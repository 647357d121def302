// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Kind-driven construction (New, FromInfo, Convert, NewIdentity) so callers
//     can iterate over backends without naming concrete types.
//   - Position-based accessors (Get, Put) mirroring At/Set.
//   - Cross-backend comparison (Equal, AllClose).
//
// Determinism & Policy:
//   - FromInfo validates the whole snapshot (shape, bounds, zeros, duplicates,
//     numeric policy) before allocating, so it either builds everything or nothing.

package matrix

import (
	"fmt"
	"math"
)

// New allocates an all-zero matrix of the given backend and shape.
// Errors: ErrUnknownKind, ErrInvalidShape.
func New(kind Kind, shape Shape, opts ...Option) (Matrix, error) {
	m, err := newWith(kind, shape, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(opNew, err)
	}

	return m, nil
}

// newWith is New with resolved options.
func newWith(kind Kind, shape Shape, o Options) (Matrix, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	if kind == KindDense {
		return newDenseWith(shape.Rows, shape.Cols, o)
	}

	return newSparseWith(kind, shape, o)
}

// FromInfo builds a matrix of the given backend from a snapshot.
// Implementation:
//   - Stage 1: info.Validate() and the numeric policy over every value.
//   - Stage 2: allocate and write entries (no further failure is possible).
//
// Errors:
//   - ErrInvalidInfo, ErrNaNInf, ErrUnknownKind.
//
// Complexity:
//   - O(k) validation + O(r*c) dense allocation or O(k) / O(k log k) sparse inserts.
func FromInfo(kind Kind, info Info, opts ...Option) (Matrix, error) {
	m, err := fromInfoWith(kind, info, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(opFromInfo, err)
	}

	return m, nil
}

// fromInfoWith is FromInfo with resolved options.
func fromInfoWith(kind Kind, info Info, o Options) (Matrix, error) {
	return buildFromInfo(kind, info, o, true)
}

// rebuild copies a snapshot taken from one of the package's own matrices.
// The numeric policy is skipped: kernels may have left ±Inf after overflow,
// and those values must convert like any other.
func rebuild(kind Kind, info Info, o Options) (Matrix, error) {
	return buildFromInfo(kind, info, o, false)
}

func buildFromInfo(kind Kind, info Info, o Options, policy bool) (Matrix, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if policy {
		for _, e := range info.Entries {
			if o.rejects(e.Value) {
				return nil, fmt.Errorf("entry %v: %w", e.Position, ErrNaNInf)
			}
		}
	}
	m, err := newWith(kind, info.Shape, o)
	if err != nil {
		return nil, err
	}
	w := m.(rawWriter)
	for _, e := range info.Entries {
		w.setRaw(e.Row, e.Col, e.Value)
	}

	return m, nil
}

// Convert copies m into a new matrix of the given backend. m is not consumed.
// The result keeps m's options unless opts override them. Values already held
// by m are copied as they are, so an Inf left by a kernel converts too.
func Convert(m Matrix, kind Kind, opts ...Option) (Matrix, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opConvert, err)
	}
	info, err := m.Info()
	if err != nil {
		return nil, matrixErrorf(opConvert, err)
	}
	o := m.Options()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	res, err := rebuild(kind, info, o)
	if err != nil {
		return nil, matrixErrorf(opConvert, err)
	}

	return res, nil
}

// NewIdentity returns I_n on the given backend.
// Complexity: dense O(n^2) zeroing + O(n) writes; sparse O(n) inserts.
func NewIdentity(kind Kind, n int, opts ...Option) (Matrix, error) {
	m, err := New(kind, Shape{Rows: n, Cols: n}, opts...)
	if err != nil {
		return nil, err
	}
	w := m.(rawWriter)
	for i := 0; i < n; i++ {
		w.setRaw(i, i, 1.0)
	}

	return m, nil
}

// Release returns m's storage to its allocator right away instead of at
// garbage collection. m is consumed afterwards. Foreign implementations and
// nil are ignored.
func Release(m Matrix) {
	if ValidateNotNil(m) == nil {
		discard(m)
	}
}

// Get is At addressed by Position.
func Get(m Matrix, p Position) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}

	return m.At(p.Row, p.Col)
}

// Put is Set addressed by Position.
func Put(m Matrix, p Position, v float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	return m.Set(p.Row, p.Col, v)
}

// Equal reports whether a and b have the same shape and bit-identical values
// at every position (backends may differ).
// Complexity: O(k_a + k_b) probes.
func Equal(a, b Matrix) (bool, error) {
	return AllClose(a, b, 0)
}

// AllClose reports whether |a[i,j] - b[i,j]| <= tol at every position.
// A negative tol selects a.Options().Epsilon().
// Implementation:
//   - Visit a's non-zeros probing b, then b's non-zeros probing a; positions
//     that are zero in both need no check.
//
// Errors:
//   - ErrNilMatrix, ErrConsumed, ErrShapeMismatch.
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if tol < 0 {
		tol = a.Options().Epsilon()
	}
	same := true
	var readErr error
	probe := func(other Matrix) func(i, j int, v float64) bool {
		return func(i, j int, v float64) bool {
			w, err := other.At(i, j)
			if err != nil {
				readErr = err

				return false
			}
			if !within(v, w, tol) {
				same = false

				return false
			}

			return true
		}
	}
	a.Do(probe(b))
	if same && readErr == nil {
		b.Do(probe(a))
	}
	if readErr != nil {
		return false, matrixErrorf(opAllClose, readErr)
	}

	return same, nil
}

// within compares two values under an absolute tolerance; equal infinities
// and NaN-vs-NaN count as close so identical pipelines compare equal.
func within(x, y, tol float64) bool {
	if x == y {
		return true
	}
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}

	return math.Abs(x-y) <= tol
}
