// SPDX-License-Identifier: MIT

// Package matrix - sparse kernels (Add / Mul / Scale) over entryStore.
//
// Purpose:
//   - Work in O(non-zeros) instead of O(shape).
//   - Never require the two operands to share orientation: entries are read in
//     each operand's physical order and re-keyed through the logical position.
//
// Notes:
//   - Callers (impl_linear_algebra.go) validate nil/consumed/shape and make both
//     operands the same Kind before calling in here.
//   - Accumulation order in mulSparse follows map iteration, so results may
//     differ from the dense kernel in the last bits. Compare with AllClose.
package matrix

import (
	"fmt"
	"unsafe"

	"github.com/katalvlaran/lvsparse/memtrack"
)

// term is one probe target in the multiplication index: the free coordinate
// (row of A or column of B) and the stored value.
type term struct {
	idx int
	v   float64
}

// termBytes is the tracked scratch cost of one indexed term.
var termBytes = uint64(unsafe.Sizeof(term{}))

// addSparse returns a + b for two sparse operands of the same kind and shape.
// Implementation:
//   - Same orientation: the result inherits it and keys are merged verbatim;
//     the ordered store runs a sequential two-run merge.
//   - Mixed orientation: each entry is decoded to its logical position and
//     re-encoded into an untransposed result.
//
// Behavior highlights:
//   - Sums that cancel to exactly 0 are not stored.
//
// Complexity:
//   - O(k_a + k_b) hash (amortized); O((k_a + k_b) log(k_a + k_b)) ordered.
func addSparse(a, b *Sparse) *Sparse {
	if a.transposed == b.transposed {
		res := newSparseLike(a)
		oa, okA := a.st.entries.(*orderedStore)
		ob, okB := b.st.entries.(*orderedStore)
		if okA && okB {
			mergeOrdered(res.st, oa.cells(), ob.cells())

			return res
		}
		a.st.entries.each(func(key int, v float64) bool {
			res.st.set(key, v)

			return true
		})
		b.st.entries.each(func(key int, v float64) bool {
			res.st.accumulate(key, v)

			return true
		})

		return res
	}

	res := &Sparse{
		kind:     a.kind,
		shape:    a.shape,
		physCols: a.shape.Cols,
		st:       newSparseStorage(a.st.entries.fresh(), a.opts.alloc),
		opts:     a.opts,
	}
	a.Do(func(i, j int, v float64) bool {
		res.st.set(res.encode(i, j), v)

		return true
	})
	b.Do(func(i, j int, v float64) bool {
		res.st.accumulate(res.encode(i, j), v)

		return true
	})

	return res
}

// mergeOrdered writes the key-wise sum of two ascending runs into dst in
// ascending order.
func mergeOrdered(dst *sparseStorage, ca, cb []cell) {
	var i, j int
	for i < len(ca) && j < len(cb) {
		switch {
		case ca[i].key < cb[j].key:
			dst.set(ca[i].key, ca[i].val)
			i++
		case ca[i].key > cb[j].key:
			dst.set(cb[j].key, cb[j].val)
			j++
		default:
			dst.set(ca[i].key, ca[i].val+cb[j].val) // 0 sum is dropped by set
			i++
			j++
		}
	}
	for ; i < len(ca); i++ {
		dst.set(ca[i].key, ca[i].val)
	}
	for ; j < len(cb); j++ {
		dst.set(cb[j].key, cb[j].val)
	}
}

// mulSparse returns a × b for two sparse operands of the same kind with
// a.Cols == b.Rows.
// Implementation:
//   - Stage 1: index the operand with FEWER non-zeros by the shared dimension k
//     (A by column, or B by row). The index is charged to the allocator for
//     the duration of the call, so peak bytes include the scratch.
//   - Stage 2: iterate the other operand; every entry probes index[k] and
//     accumulates products into the result.
//
// Behavior highlights:
//   - Result is untransposed, shape (a.Rows, b.Cols), kind of a.
//   - ErrInvalidShape when a.Rows*b.Cols does not fit in an int key.
//   - Cancelled sums are removed; the result never stores 0.
//
// Complexity:
//   - O(min(k_a,k_b) + Σ_k |A[:,k]|·|B[k,:]|); O(k_a·k_b/n) on average for
//     uniformly spread entries. Ordered adds O(log) per accumulation.
func mulSparse(a, b *Sparse) (*Sparse, error) {
	res, err := newSparseWith(a.kind, Shape{Rows: a.shape.Rows, Cols: b.shape.Cols}, a.opts)
	if err != nil {
		return nil, fmt.Errorf("result %dx%d: %w", a.shape.Rows, b.shape.Cols, err)
	}

	byA := a.NonZeros() <= b.NonZeros()
	small, large := b, a
	if byA {
		small, large = a, b
	}

	scratch := memtrack.NewLease(a.opts.alloc, uint64(small.NonZeros())*termBytes)
	defer scratch.Release()

	index := make(map[int][]term)
	if byA {
		// A[i,k] grouped by k.
		small.Do(func(i, k int, v float64) bool {
			index[k] = append(index[k], term{idx: i, v: v})

			return true
		})
		// B[k,j] probes A[:,k].
		large.Do(func(k, j int, w float64) bool {
			for _, t := range index[k] {
				res.st.accumulate(res.encode(t.idx, j), t.v*w)
			}

			return true
		})

		return res, nil
	}

	// B[k,j] grouped by k.
	small.Do(func(k, j int, w float64) bool {
		index[k] = append(index[k], term{idx: j, v: w})

		return true
	})
	// A[i,k] probes B[k,:].
	large.Do(func(i, k int, v float64) bool {
		for _, t := range index[k] {
			res.st.accumulate(res.encode(i, t.idx), v*t.v)
		}

		return true
	})

	return res, nil
}

// scaleSparse returns alpha * a.
// alpha == 0 yields an EMPTY store (the map is cleared, not filled with zeros);
// products that underflow to 0 are dropped for the same reason.
// Complexity: O(k) hash, O(k log k) ordered.
func scaleSparse(a *Sparse, alpha float64) *Sparse {
	res := newSparseLike(a)
	if alpha == 0 {
		return res
	}
	a.st.entries.each(func(key int, v float64) bool {
		res.st.set(key, v*alpha)

		return true
	})

	return res
}
