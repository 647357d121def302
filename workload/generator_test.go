package workload_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/matrix"
	"github.com/katalvlaran/lvsparse/workload"
)

func TestGenerateCountAndValidity(t *testing.T) {
	tests := []struct {
		name    string
		shape   matrix.Shape
		density float64
		want    int
	}{
		{"empty", matrix.ShapeOf(10, 10), 0, 0},
		{"sparse", matrix.ShapeOf(100, 50), 0.01, 50},
		{"rounding", matrix.ShapeOf(3, 3), 0.5, 5},
		{"dense fill", matrix.ShapeOf(20, 20), 0.9, 360},
		{"full", matrix.ShapeOf(7, 3), 1, 21},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := workload.NewConfig(tc.shape, workload.WithDensity(tc.density), workload.WithSeed(7))
			info, err := workload.Generate(cfg)
			require.NoError(t, err)
			require.Equal(t, tc.want, info.NonZeros())
			require.Equal(t, tc.want, cfg.NonZeros())
			require.NoError(t, info.Validate())

			sorted := matrix.NewInfo(info.Shape, append([]matrix.Entry(nil), info.Entries...)...).Sort()
			require.Equal(t, sorted.Entries, info.Entries, "row-major order")
			for _, e := range info.Entries {
				require.GreaterOrEqual(t, e.Value, workload.DefaultMinValue)
				require.Less(t, e.Value, workload.DefaultMaxValue)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := workload.NewConfig(matrix.ShapeOf(40, 30), workload.WithDensity(0.05), workload.WithSeed(99))
	a, err := workload.Generate(cfg)
	require.NoError(t, err)
	b, err := workload.Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, a, b)

	cfg.Seed = 100
	c, err := workload.Generate(cfg)
	require.NoError(t, err)
	require.False(t, a.Equivalent(c))
}

func TestGenerateRange(t *testing.T) {
	cfg := workload.NewConfig(matrix.ShapeOf(10, 10), workload.WithDensity(0.3), workload.WithRange(5, 6))
	info, err := workload.Generate(cfg)
	require.NoError(t, err)
	for _, e := range info.Entries {
		require.True(t, e.Value >= 5 && e.Value < 6, "%v", e.Value)
	}
}

func TestConfigValidate(t *testing.T) {
	shape := matrix.ShapeOf(4, 4)
	tests := []struct {
		name string
		cfg  workload.Config
		want error
	}{
		{"bad shape", workload.NewConfig(matrix.ShapeOf(0, 4)), matrix.ErrInvalidShape},
		{"negative density", workload.NewConfig(shape, workload.WithDensity(-0.1)), workload.ErrBadDensity},
		{"density above one", workload.NewConfig(shape, workload.WithDensity(1.5)), workload.ErrBadDensity},
		{"nan density", workload.NewConfig(shape, workload.WithDensity(math.NaN())), workload.ErrBadDensity},
		{"empty range", workload.NewConfig(shape, workload.WithRange(1, 1)), workload.ErrBadRange},
		{"inverted range", workload.NewConfig(shape, workload.WithRange(2, 1)), workload.ErrBadRange},
		{"infinite range", workload.NewConfig(shape, workload.WithRange(0, math.Inf(1))), workload.ErrBadRange},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := workload.Generate(tc.cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateBatchKeepsOrder(t *testing.T) {
	cfgs := make([]workload.Config, 8)
	for i := range cfgs {
		cfgs[i] = workload.NewConfig(matrix.ShapeOf(10+i, 10), workload.WithDensity(0.2), workload.WithSeed(int64(i)))
	}
	infos, err := workload.GenerateBatch(context.Background(), cfgs)
	require.NoError(t, err)
	require.Len(t, infos, len(cfgs))
	for i, info := range infos {
		require.Equal(t, cfgs[i].Shape, info.Shape)
		single, err := workload.Generate(cfgs[i])
		require.NoError(t, err)
		require.Equal(t, single, info)
	}
}

func TestGenerateBatchFails(t *testing.T) {
	cfgs := []workload.Config{
		workload.NewConfig(matrix.ShapeOf(5, 5)),
		workload.NewConfig(matrix.ShapeOf(5, 5), workload.WithDensity(2)),
	}
	_, err := workload.GenerateBatch(context.Background(), cfgs)
	require.ErrorIs(t, err, workload.ErrBadDensity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = workload.GenerateBatch(ctx, cfgs[:1])
	require.ErrorIs(t, err, context.Canceled)
}

func TestIdentityAndDiagonal(t *testing.T) {
	id, err := workload.Identity(4)
	require.NoError(t, err)
	require.Equal(t, 4, id.NonZeros())
	require.Equal(t, 1.0, id.Lookup(matrix.Pos(3, 3)))

	diag, err := workload.Diagonal([]float64{1, 0, 3})
	require.NoError(t, err)
	require.Equal(t, 2, diag.NonZeros())
	require.NoError(t, diag.Validate())

	_, err = workload.Identity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = workload.Diagonal([]float64{math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	for _, kind := range matrix.Kinds() {
		m, err := matrix.FromInfo(kind, diag)
		require.NoError(t, err)
		sq, err := matrix.Mul(m, m)
		require.NoError(t, err)
		v, err := sq.At(2, 2)
		require.NoError(t, err)
		require.Equal(t, 9.0, v)
	}
}
