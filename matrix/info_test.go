package matrix_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/matrix"
)

func TestInfoSortIsRowMajor(t *testing.T) {
	info := matrix.NewInfo(matrix.ShapeOf(3, 3),
		matrix.Entry{Position: matrix.Pos(2, 0), Value: 1},
		matrix.Entry{Position: matrix.Pos(0, 2), Value: 2},
		matrix.Entry{Position: matrix.Pos(0, 1), Value: 3},
	).Sort()

	require.Equal(t, matrix.Pos(0, 1), info.Entries[0].Position)
	require.Equal(t, matrix.Pos(0, 2), info.Entries[1].Position)
	require.Equal(t, matrix.Pos(2, 0), info.Entries[2].Position)
}

func TestInfoEquivalentIgnoresOrder(t *testing.T) {
	a := matrix.NewInfo(matrix.ShapeOf(2, 2),
		matrix.Entry{Position: matrix.Pos(0, 0), Value: 1},
		matrix.Entry{Position: matrix.Pos(1, 1), Value: 2},
	)
	b := matrix.NewInfo(matrix.ShapeOf(2, 2),
		matrix.Entry{Position: matrix.Pos(1, 1), Value: 2},
		matrix.Entry{Position: matrix.Pos(0, 0), Value: 1},
	)
	require.True(t, a.Equivalent(b))

	b.Entries[0].Value = 3
	require.False(t, a.Equivalent(b))
	require.False(t, a.Equivalent(matrix.NewInfo(matrix.ShapeOf(2, 3), a.Entries...)))
	require.Equal(t, 2.0, a.Lookup(matrix.Pos(1, 1)))
	require.Zero(t, a.Lookup(matrix.Pos(0, 1)))
}

// TestOrderedInfoAfterTranspose: the ordered backend reports row-major
// entries whichever way its store is oriented.
func TestOrderedInfoAfterTranspose(t *testing.T) {
	m := RandomSparse(t, matrix.KindOrdered, 6, 4, 0.5, 91)
	tr, err := m.Transposed()
	require.NoError(t, err)

	info := MustInfo(t, tr)
	sorted := matrix.NewInfo(info.Shape, append([]matrix.Entry(nil), info.Entries...)...).Sort()
	require.Equal(t, sorted.Entries, info.Entries)
	require.Equal(t, matrix.ShapeOf(4, 6), info.Shape)
}

func TestInfoJSON(t *testing.T) {
	info := matrix.NewInfo(matrix.ShapeOf(2, 3), matrix.Entry{Position: matrix.Pos(1, 2), Value: 4.5})
	raw, err := json.Marshal(info)
	require.NoError(t, err)
	require.JSONEq(t, `{"shape":{"rows":2,"cols":3},"entries":[{"row":1,"col":2,"value":4.5}]}`, string(raw))

	var back matrix.Info
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, info.Equivalent(back))
}

func TestKindText(t *testing.T) {
	for _, k := range matrix.Kinds() {
		raw, err := k.MarshalText()
		require.NoError(t, err)
		var back matrix.Kind
		require.NoError(t, back.UnmarshalText(raw))
		require.Equal(t, k, back)
	}
	k, err := matrix.ParseKind(" Ordered ")
	require.NoError(t, err)
	require.Equal(t, matrix.KindOrdered, k)
	require.True(t, k.Sparse())
	require.False(t, matrix.KindDense.Sparse())

	_, err = matrix.ParseKind("csr")
	require.ErrorIs(t, err, matrix.ErrUnknownKind)
}

func TestShapeHelpers(t *testing.T) {
	s := matrix.ShapeOf(2, 5)
	require.True(t, s.Valid())
	require.Equal(t, matrix.ShapeOf(5, 2), s.T())
	require.Equal(t, 10, s.Cells())
	require.True(t, s.Contains(matrix.Pos(1, 4)))
	require.False(t, s.Contains(matrix.Pos(2, 0)))
	require.Equal(t, "2x5", s.String())
	require.Equal(t, matrix.Pos(4, 1), matrix.Pos(1, 4).T())
}
