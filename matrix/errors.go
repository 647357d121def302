// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All operations MUST return these sentinels (possibly wrapped with a
// call-site tag) and tests MUST check them via errors.Is. No operation panics
// on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Call sites wrap with fmt.Errorf("ctx: %w", ErrX);
// callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> consumed -> shape -> index/NaN.

var (
	// ErrInvalidShape is returned when a requested shape has a non-positive
	// dimension. Constructors validate before allocating anything.
	ErrInvalidShape = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column is outside the shape.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrShapeMismatch indicates incompatible operand shapes: Add with
	// different shapes, or Mul where a.Cols != b.Rows.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrConsumed is returned by every operation on a handle whose storage was
	// moved out by Transposed.
	ErrConsumed = errors.New("matrix: matrix was consumed by Transposed")

	// ErrInvalidInfo reports a malformed snapshot: invalid shape, an entry out
	// of bounds, an explicit zero value or a duplicated position.
	ErrInvalidInfo = errors.New("matrix: invalid snapshot")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires
	// finite values (Set, FromInfo).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrUnknownKind indicates a backend kind outside Kinds().
	ErrUnknownKind = errors.New("matrix: unknown backend kind")
)
