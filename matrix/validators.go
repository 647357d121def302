// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating nil/consumed/shape checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Live → Shape),
//    which fixes the error priority documented in errors.go.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil or holds a nil *Dense / *Sparse.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch t := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if t == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Sparse:
		if t == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateLive ensures m is non-nil and was not consumed by Transposed.
// Errors: ErrNilMatrix, ErrConsumed. Complexity: O(1).
func ValidateLive(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Consumed() {
		return validatorErrorf("ValidateLive", ErrConsumed)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrShapeMismatch.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrShapeMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrShapeMismatch)
	}

	return nil
}

// ValidateBinarySameShape = Live(a) → Live(b) → SameShape(a, b).
// Use for Add and AllClose.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateLive(a); err != nil {
		return err
	}
	if err := ValidateLive(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateMulCompatible = Live(a) → Live(b) → a.Cols == b.Rows.
// Errors: ErrNilMatrix, ErrConsumed, ErrShapeMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateLive(a); err != nil {
		return err
	}
	if err := ValidateLive(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrShapeMismatch)
	}

	return nil
}

// ValidateKind ensures k names a backend.
func ValidateKind(k Kind) error {
	switch k {
	case KindDense, KindHash, KindOrdered:
		return nil
	default:
		return validatorErrorf("ValidateKind", fmt.Errorf("%s: %w", k, ErrUnknownKind))
	}
}
