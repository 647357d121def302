// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsparse/bench"
	"github.com/katalvlaran/lvsparse/report"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [flags]",
		Short: "Chart records written by run --format json.",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	cmd.Flags().String("in", "records.json", "JSON records produced by run")
	cmd.Flags().String("op", "mul", "operation to chart")
	cmd.Flags().String("metric", "peak", "metric to chart: peak or duration")
	cmd.Flags().StringP("out", "o", "peak.png", "image file; the extension selects the format")

	return cmd
}

func runPlot(cmd *cobra.Command, _ []string) error {
	op, err := bench.ParseOp(getString(cmd, "op"))
	if err != nil {
		return err
	}
	f, err := os.Open(getString(cmd, "in"))
	if err != nil {
		return err
	}
	defer f.Close()
	recs, err := bench.ReadJSON(f)
	if err != nil {
		return err
	}

	out := getString(cmd, "out")
	switch metric := getString(cmd, "metric"); metric {
	case "peak":
		err = report.PeakBytesChart(recs, op, out)
	case "duration":
		err = report.DurationChart(recs, op, out)
	default:
		return fmt.Errorf("unknown metric %q", metric)
	}
	if err != nil {
		return err
	}
	log.Infof("wrote %s", out)

	return nil
}
