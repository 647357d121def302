package bench_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/bench"
	"github.com/katalvlaran/lvsparse/matrix"
	"github.com/katalvlaran/lvsparse/workload"
)

func mustInfo(t *testing.T, rows, cols int, density float64) matrix.Info {
	t.Helper()
	info, err := workload.Generate(workload.NewConfig(matrix.ShapeOf(rows, cols), workload.WithDensity(density), workload.WithSeed(5)))
	require.NoError(t, err)

	return info
}

func TestRunAllBackendsAllOps(t *testing.T) {
	h := bench.NewHarness()
	info := mustInfo(t, 60, 40, 0.05)

	recs, err := h.Run(context.Background(), info, matrix.Kinds(), bench.Ops())
	require.NoError(t, err)
	require.Len(t, recs, len(matrix.Kinds())*len(bench.Ops()))

	for i, r := range recs {
		require.Equal(t, matrix.Kinds()[i/len(bench.Ops())], r.Backend)
		require.Equal(t, bench.Ops()[i%len(bench.Ops())], r.Op)
		require.Equal(t, 60, r.Rows)
		require.Equal(t, 40, r.Cols)
		require.Equal(t, info.NonZeros(), r.NonZeros)
		require.GreaterOrEqual(t, r.TrackedPeakDelta, r.TrackedLiveDelta)
	}
	require.Zero(t, h.Allocator().Live(), "every matrix was released")
}

func TestRunSparseUsesLessMemory(t *testing.T) {
	h := bench.NewHarness()
	info := mustInfo(t, 300, 300, 0.001)

	recs, err := h.Run(context.Background(), info, matrix.Kinds(), []bench.Op{bench.OpBuild})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	dense, hash, ordered := recs[0], recs[1], recs[2]
	require.GreaterOrEqual(t, dense.TrackedPeakDelta, int64(300*300*8))
	require.Less(t, hash.TrackedPeakDelta*10, dense.TrackedPeakDelta)
	require.Less(t, ordered.TrackedPeakDelta*10, dense.TrackedPeakDelta)
}

func TestRunTransposeIsFreeOnSparse(t *testing.T) {
	h := bench.NewHarness()
	info := mustInfo(t, 50, 70, 0.1)

	recs, err := h.Run(context.Background(), info, []matrix.Kind{matrix.KindHash, matrix.KindOrdered}, []bench.Op{bench.OpTranspose})
	require.NoError(t, err)
	for _, r := range recs {
		require.Zero(t, r.TrackedPeakDelta, "backend %s", r.Backend)
		require.Zero(t, r.TrackedLiveDelta, "backend %s", r.Backend)
		require.Equal(t, r.NonZeros, r.ResultNonZeros)
	}
}

func TestRunScaleByZero(t *testing.T) {
	h := bench.NewHarness(bench.WithAlpha(0))
	info, err := workload.Diagonal([]float64{1, 2, 3})
	require.NoError(t, err)

	recs, err := h.Run(context.Background(), info, matrix.Kinds(), []bench.Op{bench.OpScale})
	require.NoError(t, err)
	for _, r := range recs {
		require.Zero(t, r.ResultNonZeros, "backend %s", r.Backend)
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	h := bench.NewHarness()
	_, err := h.Run(context.Background(), matrix.NewInfo(matrix.ShapeOf(0, 1)), matrix.Kinds(), bench.Ops())
	require.ErrorIs(t, err, matrix.ErrInvalidInfo)

	_, err = h.Run(context.Background(), mustInfo(t, 5, 5, 0.2), []matrix.Kind{matrix.KindUnknown}, bench.Ops())
	require.ErrorIs(t, err, matrix.ErrUnknownKind)
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs, err := bench.NewHarness().Run(ctx, mustInfo(t, 5, 5, 0.2), matrix.Kinds(), bench.Ops())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, recs)
}

func TestRunWithoutVerify(t *testing.T) {
	h := bench.NewHarness(bench.WithoutVerify(), bench.WithTolerance(0))
	require.False(t, h.Config().Verify)
	recs, err := h.Run(context.Background(), mustInfo(t, 20, 20, 0.1), []matrix.Kind{matrix.KindHash}, []bench.Op{bench.OpMul})
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestParseOps(t *testing.T) {
	ops, err := bench.ParseOps("add, MUL,")
	require.NoError(t, err)
	require.Equal(t, []bench.Op{bench.OpAdd, bench.OpMul}, ops)

	ops, err = bench.ParseOps("all")
	require.NoError(t, err)
	require.Equal(t, bench.Ops(), ops)

	_, err = bench.ParseOps("add,invert")
	require.ErrorIs(t, err, bench.ErrUnknownOp)
}

func TestWriters(t *testing.T) {
	h := bench.NewHarness()
	recs, err := h.Run(context.Background(), mustInfo(t, 10, 10, 0.2), matrix.Kinds(), []bench.Op{bench.OpAdd})
	require.NoError(t, err)

	var csvBuf bytes.Buffer
	require.NoError(t, bench.WriteCSV(&csvBuf, recs))
	lines := strings.Split(strings.TrimSpace(csvBuf.String()), "\n")
	require.Len(t, lines, 1+len(recs))
	require.True(t, strings.HasPrefix(lines[0], "backend,op,rows,cols"))
	require.True(t, strings.HasPrefix(lines[2], "hash,add,10,10,"))

	var jsonBuf bytes.Buffer
	require.NoError(t, bench.WriteJSON(&jsonBuf, recs))
	require.Contains(t, jsonBuf.String(), `"backend": "ordered"`)
	back, err := bench.ReadJSON(&jsonBuf)
	require.NoError(t, err)
	require.Equal(t, recs, back)

	var tblBuf bytes.Buffer
	require.NoError(t, bench.WriteTable(&tblBuf, recs))
	rows := strings.Split(strings.TrimSpace(tblBuf.String()), "\n")
	require.Len(t, rows, 1+len(recs))
	require.Contains(t, rows[0], "backend")
	require.Equal(t, utf8.RuneCountInString(rows[0]), utf8.RuneCountInString(rows[1]), "columns are aligned")
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", bench.FormatBytes(512))
	require.Equal(t, "1.5KiB", bench.FormatBytes(1536))
	require.Equal(t, "-2.0MiB", bench.FormatBytes(-2*1024*1024))
	require.Equal(t, "3.0GiB", bench.FormatBytes(3<<30))
}
