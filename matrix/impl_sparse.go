// SPDX-License-Identifier: MIT

// Package matrix - Sparse core shared by the hash-indexed and ordered backends.
//
// Purpose:
//   - Store only non-zero entries in an entryStore keyed by ONE integer per cell.
//   - Make Transposed O(1): the store keeps its physical orientation forever and
//     a flag flips how logical (row, col) map onto it.
//   - Keep Add/Mul/Scale proportional to the number of non-zeros, not the shape.
//
// Key encoding:
//   - key = pr*physCols + pc, where (pr, pc) is the PHYSICAL position and
//     physCols the physical row length fixed at construction.
//   - logical (r, c) → physical (r, c) when !transposed, (c, r) when transposed.
//
// Ownership:
//   - Transposed moves the sparseStorage pointer into a new handle and clears
//     the old one, so two live handles never share mutable storage.
//
// Complexity quicksheet (k = non-zeros):
//   - At/Set: O(1) hash, O(log k) ordered. Transposed: O(1). Info/Clone: O(k) (+ sort).
package matrix

import (
	"fmt"
	"math"
)

// sparseErrorf wraps an error with a uniform Sparse context and coordinates.
func sparseErrorf(kind Kind, method string, row, col int, err error) error {
	return fmt.Errorf("Sparse[%s].%s(%d,%d): %w", kind, method, row, col, err)
}

// Sparse is a matrix storing only non-zero entries in a hash-indexed
// (KindHash) or ordered (KindOrdered) map.
type Sparse struct {
	kind       Kind           // KindHash or KindOrdered
	shape      Shape          // logical shape (post-flag)
	physCols   int            // physical row length used by the key encoding
	transposed bool           // logical view is the transpose of the physical store
	st         *sparseStorage // nil once consumed by Transposed
	opts       Options        // numeric policy + allocator inherited by results
}

// Compile-time assertion.
var _ Matrix = (*Sparse)(nil)

// NewHashSparse creates an r×c all-zero matrix on the hash-indexed backend.
// Errors: ErrInvalidShape.
// Complexity: O(1).
func NewHashSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	return newSparseWith(KindHash, Shape{Rows: rows, Cols: cols}, gatherOptions(opts...))
}

// NewOrderedSparse creates an r×c all-zero matrix on the ordered backend.
// Errors: ErrInvalidShape.
// Complexity: O(1).
func NewOrderedSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	return newSparseWith(KindOrdered, Shape{Rows: rows, Cols: cols}, gatherOptions(opts...))
}

// newSparseWith builds an untransposed empty sparse matrix.
// The shape must be valid and rows*cols must fit in an int key.
func newSparseWith(kind Kind, shape Shape, o Options) (*Sparse, error) {
	if !shape.Valid() || shape.Rows > math.MaxInt/shape.Cols {
		return nil, ErrInvalidShape
	}
	var entries entryStore
	switch kind {
	case KindHash:
		entries = newHashStore()
	case KindOrdered:
		entries = newOrderedStore(o.degree)
	default:
		return nil, fmt.Errorf("newSparse(%s): %w", kind, ErrUnknownKind)
	}

	return &Sparse{
		kind:     kind,
		shape:    shape,
		physCols: shape.Cols,
		st:       newSparseStorage(entries, o.alloc),
		opts:     o,
	}, nil
}

// newSparseLike creates an empty store with m's kind, shape AND orientation,
// so m's keys can be written into it verbatim.
func newSparseLike(m *Sparse) *Sparse {
	return &Sparse{
		kind:       m.kind,
		shape:      m.shape,
		physCols:   m.physCols,
		transposed: m.transposed,
		st:         newSparseStorage(m.st.entries.fresh(), m.opts.alloc),
		opts:       m.opts,
	}
}

// Rows returns the logical row count.
func (m *Sparse) Rows() int { return m.shape.Rows }

// Cols returns the logical column count.
func (m *Sparse) Cols() int { return m.shape.Cols }

// Shape returns the logical shape.
func (m *Sparse) Shape() Shape { return m.shape }

// Kind reports KindHash or KindOrdered.
func (m *Sparse) Kind() Kind { return m.kind }

// Options reports the configuration inherited by derived results.
func (m *Sparse) Options() Options { return m.opts }

// Consumed reports whether Transposed moved the storage away.
func (m *Sparse) Consumed() bool { return m == nil || m.st == nil }

// IsTransposed reports whether the logical view flips the physical store.
func (m *Sparse) IsTransposed() bool { return m.transposed }

// Footprint reports the bytes held by the storage lease.
func (m *Sparse) Footprint() uint64 {
	if m.st == nil {
		return 0
	}

	return m.st.lease.Bytes()
}

// encode maps a logical position to its physical key.
// Assumes (row, col) is in bounds.
func (m *Sparse) encode(row, col int) int {
	if m.transposed {
		row, col = col, row
	}

	return row*m.physCols + col
}

// decode maps a physical key back to the logical position.
func (m *Sparse) decode(key int) (row, col int) {
	pr, pc := key/m.physCols, key%m.physCols
	if m.transposed {
		return pc, pr
	}

	return pr, pc
}

// locate validates liveness and bounds, then encodes.
func (m *Sparse) locate(row, col int) (int, error) {
	if m.st == nil {
		return 0, ErrConsumed
	}
	if row < 0 || row >= m.shape.Rows || col < 0 || col >= m.shape.Cols {
		return 0, ErrIndexOutOfBounds
	}

	return m.encode(row, col), nil
}

// At returns the value at (row, col); absent keys read as 0.
// Errors: ErrIndexOutOfBounds, ErrConsumed.
func (m *Sparse) At(row, col int) (float64, error) {
	key, err := m.locate(row, col)
	if err != nil {
		return 0, sparseErrorf(m.kind, ctxAt, row, col, err)
	}
	v, _ := m.st.entries.get(key)

	return v, nil
}

// Set stores v at (row, col). v == 0 removes the entry (no-op if absent), so
// zero writes never grow the footprint.
// Errors: ErrIndexOutOfBounds, ErrConsumed, ErrNaNInf; storage is untouched on error.
func (m *Sparse) Set(row, col int, v float64) error {
	key, err := m.locate(row, col)
	if err != nil {
		return sparseErrorf(m.kind, ctxSet, row, col, err)
	}
	if m.opts.rejects(v) {
		return sparseErrorf(m.kind, ctxSet, row, col, ErrNaNInf)
	}
	m.st.set(key, v)

	return nil
}

// NonZeros returns the number of stored entries. O(1).
func (m *Sparse) NonZeros() int {
	if m.st == nil {
		return 0
	}

	return m.st.entries.len()
}

// Do visits stored entries in physical order, translated to logical
// coordinates. For the ordered backend that is row-major when untransposed
// and column-major when transposed; the hash backend has no order.
func (m *Sparse) Do(f func(i, j int, v float64) bool) {
	if m.st == nil {
		return
	}
	m.st.entries.each(func(key int, v float64) bool {
		i, j := m.decode(key)

		return f(i, j, v)
	})
}

// Info collects the entries into a snapshot. Ordered matrices always produce
// row-major entries (re-sorted when transposed); hash matrices give no order.
// Complexity: O(k), plus O(k log k) for a transposed ordered matrix.
func (m *Sparse) Info() (Info, error) {
	if m.st == nil {
		return Info{}, fmt.Errorf("Sparse[%s].%s: %w", m.kind, ctxInfo, ErrConsumed)
	}
	out := Info{Shape: m.shape, Entries: make([]Entry, 0, m.st.entries.len())}
	m.Do(func(i, j int, v float64) bool {
		out.Entries = append(out.Entries, Entry{Position: Position{Row: i, Col: j}, Value: v})

		return true
	})
	if m.kind == KindOrdered && m.transposed {
		out.Sort()
	}

	return out, nil
}

// Clone copies the entries into an independent store with the same
// orientation (keys copy verbatim).
// Complexity: O(k) hash, O(k log k) ordered.
func (m *Sparse) Clone() (Matrix, error) {
	if m.st == nil {
		return nil, fmt.Errorf("Sparse[%s].%s: %w", m.kind, ctxClone, ErrConsumed)
	}
	res := newSparseLike(m)
	m.st.entries.each(func(key int, v float64) bool {
		res.st.set(key, v)

		return true
	})

	return res, nil
}

// Transposed returns the logical transpose in O(1) and consumes m.
// MAIN DESCRIPTION:
//   - The new handle takes the same storage with the flag inverted and the
//     shape swapped; physCols is unchanged because the store is not rewritten.
//   - m is cleared, so only one live handle ever owns the storage.
//
// Behavior highlights:
//   - Non-zero count and tracked footprint are unchanged.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Sparse) Transposed() (Matrix, error) {
	if m.st == nil {
		return nil, fmt.Errorf("Sparse[%s].%s: %w", m.kind, ctxTransposed, ErrConsumed)
	}
	res := &Sparse{
		kind:       m.kind,
		shape:      m.shape.T(),
		physCols:   m.physCols,
		transposed: !m.transposed,
		st:         m.st,
		opts:       m.opts,
	}
	m.st = nil

	return res, nil
}

// String summarizes the matrix for diagnostics (never dumps entries).
func (m *Sparse) String() string {
	if m.st == nil {
		return fmt.Sprintf("Sparse[%s]<consumed>", m.kind)
	}

	return fmt.Sprintf("Sparse[%s]%v nnz=%d transposed=%t", m.kind, m.shape, m.st.entries.len(), m.transposed)
}
