// SPDX-License-Identifier: MIT
// Package matrix provides the operations of the capability set on any Matrix:
// element-wise addition, matrix multiplication, scalar scaling and the
// consuming transpose. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Dispatch:
//   - *Dense ⊕ *Dense   → flat-slice kernels (this file).
//   - *Sparse ⊕ *Sparse → non-zero kernels (impl_sparse_ops.go), same Kind.
//   - Mixed kinds       → the right operand is converted to the left operand's
//     kind through its snapshot, then the fast path runs.
//   - Foreign types     → generic Do/At path producing the left operand's kind.
//
// All-or-nothing:
//   - Validation completes before any result is allocated, so a failing call
//     never leaves a partial result behind.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opMul       = "Mul"
	opScale     = "Scale"
	opTranspose = "Transpose"
	opConvert   = "Convert"
	opFromInfo  = "FromInfo"
	opNew       = "New"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving it via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// rawWriter is implemented by the package's own backends: it writes without
// the numeric policy, for kernel results (products of finite values may be Inf).
type rawWriter interface {
	setRaw(i, j int, v float64)
}

func (m *Dense) setRaw(i, j int, v float64) { m.data[i*m.c+j] = v }

func (m *Sparse) setRaw(i, j int, v float64) { m.st.set(m.encode(i, j), v) }

// discard releases the storage of an internal temporary right away instead of
// waiting for the finalizer, so tracked live bytes drop deterministically.
func discard(m Matrix) {
	switch t := m.(type) {
	case *Dense:
		t.release()
	case *Sparse:
		if t.st != nil {
			t.st.release()
			t.st = nil
		}
	}
}

// alignKind returns b as kind k (b itself when it already is), plus whether a
// temporary was created that the caller must discard.
func alignKind(k Kind, b Matrix, o Options) (Matrix, bool, error) {
	if b.Kind() == k {
		return b, false, nil
	}
	info, err := b.Info()
	if err != nil {
		return nil, false, err
	}
	tmp, err := rebuild(k, info, o)
	if err != nil {
		return nil, false, err
	}

	return tmp, true, nil
}

// Add computes the element-wise sum C = A + B; C has A's kind and options.
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: align B to A's kind; dispatch to the dense or sparse kernel.
//
// Errors:
//   - ErrNilMatrix, ErrConsumed, ErrShapeMismatch.
//
// Complexity:
//   - Dense O(r*c); hash O(k_a + k_b); ordered O((k_a + k_b) log).
func Add(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	bb, tmp, err := alignKind(a.Kind(), b, a.Options())
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if tmp {
		defer discard(bb)
	}

	switch da := a.(type) {
	case *Dense:
		if db, ok := bb.(*Dense); ok {
			return addDense(da, db)
		}
	case *Sparse:
		if sb, ok := bb.(*Sparse); ok {
			return addSparse(da, sb), nil
		}
	}

	return addGeneric(a, bb)
}

// addDense is the flat-slice kernel: one loop 0..r*c-1.
func addDense(a, b *Dense) (Matrix, error) {
	res, err := newDenseWith(a.r, a.c, a.opts)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	for idx := range res.data {
		res.data[idx] = a.data[idx] + b.data[idx]
	}

	return res, nil
}

// addGeneric handles foreign Matrix implementations through Do/At.
// Complexity: O(k_a + k_b) reads of B's non-zeros plus result writes.
func addGeneric(a, b Matrix) (Matrix, error) {
	res, err := newWith(a.Kind(), a.Shape(), a.Options())
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	w := res.(rawWriter)
	a.Do(func(i, j int, v float64) bool {
		w.setRaw(i, j, v)

		return true
	})
	var readErr error
	b.Do(func(i, j int, v float64) bool {
		cur, err := res.At(i, j)
		if err != nil {
			readErr = err

			return false
		}
		w.setRaw(i, j, cur+v)

		return true
	})
	if readErr != nil {
		discard(res)

		return nil, matrixErrorf(opAdd, readErr)
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: ValidateMulCompatible (A.Cols == B.Rows).
//   - Stage 2: align B to A's kind; dense i→k→j kernel or sparse index/probe kernel.
//
// Errors:
//   - ErrNilMatrix, ErrConsumed, ErrShapeMismatch.
//   - ErrInvalidShape when a sparse result's key space (rows*cols) overflows int.
//
// Complexity:
//   - Dense O(r*n*c); sparse see mulSparse.
//
// Notes:
//   - Sparse accumulation order differs from dense; compare with AllClose.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bb, tmp, err := alignKind(a.Kind(), b, a.Options())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if tmp {
		defer discard(bb)
	}

	switch da := a.(type) {
	case *Dense:
		if db, ok := bb.(*Dense); ok {
			return mulDense(da, db)
		}
	case *Sparse:
		if sb, ok := bb.(*Sparse); ok {
			res, err := mulSparse(da, sb)
			if err != nil {
				return nil, matrixErrorf(opMul, err)
			}

			return res, nil
		}
	}

	return mulGeneric(a, bb)
}

// mulDense is the canonical triple loop in i→k→j order over row-major strides.
// No sparsity is exploited: every A[i,k] is multiplied, zero or not.
func mulDense(a, b *Dense) (Matrix, error) {
	aRows, aCols, bCols := a.r, a.c, b.c
	res, err := newDenseWith(aRows, bCols, a.opts)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, k, j int
	var av float64
	var rowOffsetA, rowOffsetB, rowOffsetR int
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = a.data[rowOffsetA+k]
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// mulGeneric handles foreign Matrix implementations: B is grouped by row once,
// then every non-zero of A probes its row group.
func mulGeneric(a, b Matrix) (Matrix, error) {
	res, err := newWith(a.Kind(), Shape{Rows: a.Rows(), Cols: b.Cols()}, a.Options())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	rowsOfB := make(map[int][]term)
	b.Do(func(k, j int, w float64) bool {
		rowsOfB[k] = append(rowsOfB[k], term{idx: j, v: w})

		return true
	})
	w := res.(rawWriter)
	var readErr error
	a.Do(func(i, k int, v float64) bool {
		for _, t := range rowsOfB[k] {
			cur, err := res.At(i, t.idx)
			if err != nil {
				readErr = err

				return false
			}
			w.setRaw(i, t.idx, cur+v*t.v)
		}

		return true
	})
	if readErr != nil {
		discard(res)

		return nil, matrixErrorf(opMul, readErr)
	}

	return res, nil
}

// Scale returns alpha * m with m's kind and options. Never fails for a live m.
// Sparse backends with alpha == 0 return an empty store.
// Complexity: dense O(r*c); sparse O(k).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	switch t := m.(type) {
	case *Dense:
		res, err := newDenseWith(t.r, t.c, t.opts)
		if err != nil {
			return nil, matrixErrorf(opScale, err)
		}
		for idx, v := range t.data {
			res.data[idx] = v * alpha
		}

		return res, nil
	case *Sparse:
		return scaleSparse(t, alpha), nil
	}

	res, err := newWith(m.Kind(), m.Shape(), m.Options())
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if alpha == 0 {
		return res, nil
	}
	w := res.(rawWriter)
	m.Do(func(i, j int, v float64) bool {
		w.setRaw(i, j, v*alpha)

		return true
	})

	return res, nil
}

// Transpose returns mᵀ and consumes m (see Matrix.Transposed).
// Dense copies in O(r*c); sparse backends flip a flag in O(1).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := m.Transposed()
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return res, nil
}
