package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/bench"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestRunWritesCSVToPipe(t *testing.T) {
	out, err := execute(t, "run", "--rows", "30", "--cols", "20", "--density", "0.1", "--ops", "add,scale")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+3*2)
	require.True(t, strings.HasPrefix(lines[0], "backend,op"))
}

func TestRunThenPlot(t *testing.T) {
	dir := t.TempDir()
	records := filepath.Join(dir, "records.json")
	chart := filepath.Join(dir, "peak.svg")

	_, err := execute(t, "run", "-v", "--rows", "25", "--cols", "25", "--density", "0.05",
		"--repeat", "2", "--kinds", "hash,ordered", "--ops", "mul", "--out", records)
	require.NoError(t, err)

	f, err := os.Open(records)
	require.NoError(t, err)
	recs, err := bench.ReadJSON(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Len(t, recs, 4)

	_, err = execute(t, "plot", "--in", records, "--op", "mul", "--out", chart)
	require.NoError(t, err)
	st, err := os.Stat(chart)
	require.NoError(t, err)
	require.Positive(t, st.Size())
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "run", "--kinds", "csr")
	require.Error(t, err)
	_, err = execute(t, "run", "--ops", "invert")
	require.ErrorIs(t, err, bench.ErrUnknownOp)
	_, err = execute(t, "run", "--repeat", "0")
	require.Error(t, err)
	_, err = execute(t, "run", "--rows", "5", "--cols", "5", "--format", "xml")
	require.Error(t, err)
	_, err = execute(t, "plot", "--metric", "heat", "--in", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, formatJSON, resolveFormat(formatAuto, "x.JSON", &buf))
	require.Equal(t, formatCSV, resolveFormat(formatAuto, "x.csv", &buf))
	require.Equal(t, formatCSV, resolveFormat(formatAuto, "", &buf))
	require.Equal(t, formatTable, resolveFormat(formatTable, "x.json", &buf))
}
