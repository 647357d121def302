// SPDX-License-Identifier: MIT

package matrix

// Matrix represents a two-dimensional float64 matrix behind one of the
// storage backends (Dense, hash-indexed Sparse, ordered Sparse).
//
// Contract (identical for every backend):
//   - At returns the last value Set at (i, j), or 0 if never set.
//   - Set with v == 0 on a sparse backend removes the entry (no footprint growth).
//   - Out-of-bounds indices return ErrIndexOutOfBounds and never mutate storage.
//   - Set and FromInfo reject NaN and ±Inf with ErrNaNInf by default; build with
//     WithNoValidateNaNInf to store any float64. Kernel results (Add, Mul,
//     Scale) are never checked, so an overflow may leave ±Inf in a result, and
//     Convert and mixed-kind operands copy such values unchanged.
//   - Transposed consumes the receiver: afterwards every call on the old handle
//     returns ErrConsumed (or a zero value for accessors without an error).
//
// Matrices are not safe for concurrent mutation; each is exclusively owned by
// the caller holding it.
type Matrix interface {
	// Rows returns the number of rows. O(1).
	Rows() int

	// Cols returns the number of columns. O(1).
	Cols() int

	// Shape packs Rows and Cols. O(1).
	Shape() Shape

	// Kind identifies the backend. O(1).
	Kind() Kind

	// At retrieves the element at (i, j).
	// Returns ErrIndexOutOfBounds if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns v at (i, j).
	// Returns ErrIndexOutOfBounds on invalid indices, ErrNaNInf under the
	// numeric policy.
	Set(i, j int, v float64) error

	// NonZeros counts stored non-zero entries (dense backends scan).
	NonZeros() int

	// Do visits every non-zero entry until f returns false.
	// Dense and ordered (untransposed) backends visit in row-major order; the
	// hash backend guarantees no order.
	Do(f func(i, j int, v float64) bool)

	// Info produces the metadata snapshot (shape + non-zero entries).
	Info() (Info, error)

	// Clone returns an independent deep copy with the same backend and options.
	Clone() (Matrix, error)

	// Transposed returns the logical transpose and consumes the receiver.
	Transposed() (Matrix, error)

	// Consumed reports whether Transposed moved this handle's storage away.
	Consumed() bool

	// Footprint reports the bytes this matrix currently charges to its allocator.
	Footprint() uint64

	// Options reports the configuration results derived from this matrix inherit.
	Options() Options
}
