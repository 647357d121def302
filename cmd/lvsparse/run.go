// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsparse/bench"
	"github.com/katalvlaran/lvsparse/matrix"
	"github.com/katalvlaran/lvsparse/workload"
)

// Output formats of the run command.
const (
	formatAuto  = "auto"
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Generate a workload and measure every backend on it.",
		Long: `Generates --repeat random matrices (seeds --seed, --seed+1, ...) with the
given shape and density, runs the selected operations on every selected
backend, checks each result against the dense baseline and prints one record
per (workload, backend, operation).`,
		Args: cobra.NoArgs,
		RunE: runBench,
	}
	cmd.Flags().Int("rows", 1000, "number of rows")
	cmd.Flags().Int("cols", 1000, "number of columns")
	cmd.Flags().Float64("density", workload.DefaultDensity, "fraction of non-zero cells")
	cmd.Flags().Int64("seed", workload.DefaultSeed, "seed of the first workload")
	cmd.Flags().Int("repeat", 1, "number of workloads (consecutive seeds)")
	cmd.Flags().String("kinds", "dense,hash,ordered", "comma-separated backends")
	cmd.Flags().String("ops", "all", "comma-separated operations (build,add,mul,scale,transpose) or all")
	cmd.Flags().Float64("alpha", bench.DefaultAlpha, "factor used by the scale operation")
	cmd.Flags().Bool("no-verify", false, "skip the comparison against the dense baseline")
	cmd.Flags().String("format", formatAuto, "output format: auto, table, csv or json")
	cmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	kinds, err := parseKinds(getString(cmd, "kinds"))
	if err != nil {
		return err
	}
	ops, err := bench.ParseOps(getString(cmd, "ops"))
	if err != nil {
		return err
	}
	repeat := getInt(cmd, "repeat")
	if repeat < 1 {
		return fmt.Errorf("--repeat must be >= 1, got %d", repeat)
	}

	shape := matrix.ShapeOf(getInt(cmd, "rows"), getInt(cmd, "cols"))
	seed := getInt64(cmd, "seed")
	cfgs := make([]workload.Config, repeat)
	for i := range cfgs {
		cfgs[i] = workload.NewConfig(shape,
			workload.WithDensity(getFloat(cmd, "density")),
			workload.WithSeed(seed+int64(i)),
		)
	}
	infos, err := workload.GenerateBatch(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	opts := []bench.Option{bench.WithAlpha(getFloat(cmd, "alpha"))}
	if getFlag(cmd, "no-verify") {
		opts = append(opts, bench.WithoutVerify())
	}
	h := bench.NewHarness(opts...)

	var recs []bench.Record
	for i, info := range infos {
		log.Infof("workload %d/%d: %v, %d non-zeros", i+1, len(infos), info.Shape, info.NonZeros())
		got, err := h.Run(cmd.Context(), info, kinds, ops)
		recs = append(recs, got...)
		if err != nil {
			return err
		}
	}

	out := getString(cmd, "out")
	w, closeOut, err := openOutput(cmd, out)
	if err != nil {
		return err
	}
	format := resolveFormat(getString(cmd, "format"), out, w)
	if err = writeRecords(w, format, recs); err != nil {
		_ = closeOut()

		return err
	}

	return closeOut()
}

// parseKinds resolves a comma-separated backend list.
func parseKinds(s string) ([]matrix.Kind, error) {
	var kinds []matrix.Kind
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := matrix.ParseKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no backend selected")
	}

	return kinds, nil
}

// resolveFormat turns "auto" into a concrete format: the file extension when
// writing to a file, a table on a terminal, CSV otherwise.
func resolveFormat(format, out string, w io.Writer) string {
	if format != formatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".json":
		return formatJSON
	case ".csv":
		return formatCSV
	}
	if out == "" && isTerminal(w) {
		return formatTable
	}

	return formatCSV
}

func writeRecords(w io.Writer, format string, recs []bench.Record) error {
	switch format {
	case formatTable:
		return bench.WriteTable(w, recs)
	case formatCSV:
		return bench.WriteCSV(w, recs)
	case formatJSON:
		return bench.WriteJSON(w, recs)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
