// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures shared by every backend test.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/matrix"
	"github.com/katalvlaran/lvsparse/memtrack"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Embed matrix.Matrix to forward all methods.
//   - Use hide{X} in tests to force the generic (non fast-path) kernels.
//
// Notes:
//   - Kernel dispatch uses the left operand's Kind to build results, so
//     hide{*Dense} still yields a *Dense; only the loops differ.
type hide struct{ matrix.Matrix }

// MustNew ALLOCATES a zero matrix of the given kind or fails the test.
func MustNew(t testing.TB, kind matrix.Kind, r, c int, opts ...matrix.Option) matrix.Matrix {
	t.Helper()
	m, err := matrix.New(kind, matrix.ShapeOf(r, c), opts...)
	require.NoError(t, err, "New(%s,%dx%d)", kind, r, c)

	return m
}

// MustDense ALLOCATES an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustSet writes v at (i,j) or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustInfo snapshots m or fails the test.
func MustInfo(t testing.TB, m matrix.Matrix) matrix.Info {
	t.Helper()
	info, err := m.Info()
	require.NoError(t, err)

	return info
}

// FromRows BUILDS a matrix of the given kind from row slices (all rows must
// have equal length). Zero cells are skipped so sparse backends stay sparse.
func FromRows(t testing.TB, kind matrix.Kind, rows [][]float64) matrix.Matrix {
	t.Helper()
	require.NotEmpty(t, rows)
	m := MustNew(t, kind, len(rows), len(rows[0]))
	for i, row := range rows {
		require.Len(t, row, len(rows[0]), "ragged row %d", i)
		for j, v := range row {
			if v != 0 {
				MustSet(t, m, i, j, v)
			}
		}
	}

	return m
}

// RandomSparse FILLS an r×c matrix of the given kind with about density*r*c
// non-zero U(-1,1) values, deterministically by seed.
func RandomSparse(t testing.TB, kind matrix.Kind, r, c int, density float64, seed int64, opts ...matrix.Option) matrix.Matrix {
	t.Helper()
	m := MustNew(t, kind, r, c, opts...)
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if rng.Float64() >= density {
				continue
			}
			v = rng.Float64()*2 - 1
			if v == 0 {
				v = 0.5
			}
			MustSet(t, m, i, j, v)
		}
	}

	return m
}

// CompareExact asserts want and got hold bit-identical values everywhere.
func CompareExact(t testing.TB, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.Equal(want, got)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ:\nwant %v\ngot  %v", want, got)
}

// CompareClose asserts |want-got| <= tol everywhere.
func CompareClose(t testing.TB, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, tol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ beyond %g:\nwant %v\ngot  %v", tol, want, got)
}

// privateAlloc returns a fresh allocator and the option binding it, so a test
// can read counters no other test touches.
func privateAlloc() (*memtrack.Allocator, matrix.Option) {
	a := memtrack.New()

	return a, matrix.WithAllocator(a)
}
