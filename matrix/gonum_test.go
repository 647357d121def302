package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsparse/matrix"
)

// TestGonumOracle cross-checks Add and Mul of every backend against gonum.
func TestGonumOracle(t *testing.T) {
	for _, kind := range matrix.Kinds() {
		a := RandomSparse(t, kind, 8, 6, 0.35, 111)
		b := RandomSparse(t, kind, 6, 9, 0.35, 113)
		c := RandomSparse(t, kind, 8, 6, 0.35, 117)

		ga, err := matrix.ToGonum(a)
		require.NoError(t, err)
		gb, err := matrix.ToGonum(b)
		require.NoError(t, err)
		gc, err := matrix.ToGonum(c)
		require.NoError(t, err)

		var wantMul, wantAdd mat.Dense
		wantMul.Mul(ga, gb)
		wantAdd.Add(ga, gc)

		prod, err := matrix.Mul(a, b)
		require.NoError(t, err)
		gotMul, err := matrix.ToGonum(prod)
		require.NoError(t, err)
		require.True(t, mat.EqualApprox(&wantMul, gotMul, 1e-12), "Mul kind %s", kind)

		sum, err := matrix.Add(a, c)
		require.NoError(t, err)
		gotAdd, err := matrix.ToGonum(sum)
		require.NoError(t, err)
		require.True(t, mat.Equal(&wantAdd, gotAdd), "Add kind %s", kind)
	}
}

func TestFromGonumSkipsZeros(t *testing.T) {
	g := mat.NewDense(2, 3, []float64{
		0, 1, 0,
		2, 0, 0,
	})
	for _, kind := range matrix.Kinds() {
		m, err := matrix.FromGonum(kind, g)
		require.NoError(t, err)
		require.Equal(t, kind, m.Kind())
		require.Equal(t, 2, m.NonZeros())
		require.Equal(t, 2.0, MustAt(t, m, 1, 0))
	}

	_, err := matrix.FromGonum(matrix.KindHash, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAsGonumView reads through without copying, including gonum's
// implicit transpose.
func TestAsGonumView(t *testing.T) {
	m := FromRows(t, matrix.KindOrdered, [][]float64{
		{1, 2},
		{0, 3},
		{4, 0},
	})
	v := matrix.AsGonum(m)
	r, c := v.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	require.Equal(t, 4.0, v.At(2, 0))
	require.Equal(t, 4.0, v.T().At(0, 2))

	MustSet(t, m, 1, 0, 7)
	require.Equal(t, 7.0, v.At(1, 0))

	var prod mat.Dense
	prod.Mul(v.T(), v)
	require.Equal(t, 1.0+49+16, prod.At(0, 0))

	require.Panics(t, func() { v.At(3, 0) })
}
