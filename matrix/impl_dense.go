// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Serve as the correctness baseline the sparse backends are validated against.
//   - Charge r*c*8 bytes (plus a fixed header) to the configured allocator.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Transposed/Info: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/katalvlaran/lvsparse/memtrack"
)

// ---------- error context tags ----------

const (
	ctxAt         = "At"         // method tag used in error wrappers
	ctxSet        = "Set"        // method tag used in error wrappers
	ctxInfo       = "Info"       // method tag used in error wrappers
	ctxClone      = "Clone"      // method tag used in error wrappers
	ctxTransposed = "Transposed" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// float64Bytes is the size of one stored cell.
const float64Bytes = 8

// denseHeaderBytes is the fixed per-matrix bookkeeping charged with the buffer.
var denseHeaderBytes = uint64(unsafe.Sizeof(Dense{}))

// denseBytes is the tracked footprint of an r×c dense matrix.
func denseBytes(r, c int) uint64 {
	return uint64(r)*uint64(c)*float64Bytes + denseHeaderBytes
}

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j);
//     nil once the handle was consumed by Transposed.
//   - lease carries the bytes charged to opts.alloc.
type Dense struct {
	r, c  int             // row and column counts (>0)
	data  []float64       // contiguous row-major storage (len == r*c)
	opts  Options         // numeric policy + allocator inherited by results
	lease *memtrack.Lease // tracked footprint of data
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidShape.
//   - Stage 2: allocate zero-filled buffer, open a lease for r*c*8 bytes.
//
// Errors:
//   - ErrInvalidShape (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	return newDenseWith(rows, cols, gatherOptions(opts...))
}

// newDenseWith is NewDense with already-resolved options (used by kernels so
// results inherit the operand's allocator and policy).
func newDenseWith(rows, cols int, o Options) (*Dense, error) {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/float64Bytes/cols {
		return nil, ErrInvalidShape
	}
	// make() zero-fills deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:     rows,
		c:     cols,
		data:  buf,
		opts:  o,
		lease: memtrack.NewLease(o.alloc, denseBytes(rows, cols)),
	}, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols().
func (m *Dense) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Kind reports KindDense.
func (m *Dense) Kind() Kind { return KindDense }

// Options reports the configuration inherited by derived results.
func (m *Dense) Options() Options { return m.opts }

// Consumed reports whether Transposed moved this handle away.
func (m *Dense) Consumed() bool { return m == nil || m.data == nil }

// Footprint reports the bytes held by this matrix's lease.
func (m *Dense) Footprint() uint64 {
	if m.lease == nil {
		return 0
	}

	return m.lease.Bytes()
}

// indexOf computes the row-major offset or returns a sentinel.
// MAIN DESCRIPTION:
//   - Liveness + bounds check of (row,col); compute flat offset.
//
// Errors:
//   - ErrConsumed when the handle was moved; ErrIndexOutOfBounds otherwise.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if m.data == nil {
		return 0, ErrConsumed
	}
	if row < 0 || row >= m.r {
		return 0, ErrIndexOutOfBounds
	}
	if col < 0 || col >= m.c {
		return 0, ErrIndexOutOfBounds
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col).
// Errors: ErrIndexOutOfBounds, ErrConsumed (wrapped with coordinates).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// Bounds and numeric policy are checked before the write, so a failed Set
// never alters storage.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.opts.rejects(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// NonZeros scans the buffer and counts non-zero cells.
// Complexity: O(r*c).
func (m *Dense) NonZeros() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}

	return n
}

// Do visits non-zero cells in row-major order and calls f(i,j,v) until it
// returns false. A consumed handle visits nothing.
// Complexity: O(r*c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	var v float64
	for i = 0; i < m.r && m.data != nil; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if v == 0 {
				continue
			}
			if !f(i, j, v) {
				return
			}
		}
	}
}

// Info collects the non-zero cells (row-major) into a snapshot.
// Complexity: O(r*c) time, O(k) space.
func (m *Dense) Info() (Info, error) {
	if m.data == nil {
		return Info{}, fmt.Errorf("Dense.%s: %w", ctxInfo, ErrConsumed)
	}
	out := Info{Shape: m.Shape(), Entries: make([]Entry, 0, m.NonZeros())}
	m.Do(func(i, j int, v float64) bool {
		out.Entries = append(out.Entries, Entry{Position: Position{Row: i, Col: j}, Value: v})

		return true
	})

	return out, nil
}

// Clone returns a deep copy charged to the same allocator.
// Complexity: O(r*c).
func (m *Dense) Clone() (Matrix, error) {
	if m.data == nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxClone, ErrConsumed)
	}
	res, err := newDenseWith(m.r, m.c, m.opts)
	if err != nil {
		return nil, err
	}
	copy(res.data, m.data)

	return res, nil
}

// Transposed materializes mᵀ into a fresh buffer and consumes m.
// MAIN DESCRIPTION:
//   - Dense has no logical transpose; the copy is the baseline cost the
//     sparse backends' O(1) flag flip is compared against.
//
// Implementation:
//   - Stage 1: allocate Dense(c, r) with inherited options.
//   - Stage 2: data[i*c + j] → res.data[j*r + i].
//   - Stage 3: release m's buffer and lease; m becomes consumed.
//
// Complexity:
//   - Time O(r*c), Space O(r*c); peak briefly holds both buffers.
func (m *Dense) Transposed() (Matrix, error) {
	if m.data == nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxTransposed, ErrConsumed)
	}
	res, err := newDenseWith(m.c, m.r, m.opts)
	if err != nil {
		return nil, err
	}
	var i, j, baseSrc int
	for i = 0; i < m.r; i++ {
		baseSrc = i * m.c
		for j = 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[baseSrc+j]
		}
	}
	m.release()

	return res, nil
}

// release drops the buffer and returns its bytes to the allocator.
func (m *Dense) release() {
	m.data = nil
	if m.lease != nil {
		m.lease.Release()
		m.lease = nil
	}
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Complexity: O(r*c).
func (m *Dense) String() string {
	if m.data == nil {
		return "<consumed>"
	}
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
