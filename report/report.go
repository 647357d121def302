// SPDX-License-Identifier: MIT

// Package report renders bench records as grouped bar charts (one bar group
// per workload, one bar per backend) using gonum.org/v1/plot.
package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvsparse/bench"
	"github.com/katalvlaran/lvsparse/matrix"
)

// ErrNoRecords is returned when no record matches the requested operation.
var ErrNoRecords = errors.New("report: no records for operation")

// Chart geometry.
const (
	DefaultWidth  = 16 * vg.Centimeter
	DefaultHeight = 10 * vg.Centimeter
	barWidth      = vg.Length(12)
)

// metric extracts one plotted value from a record.
type metric struct {
	label string
	value func(bench.Record) float64
}

var (
	peakKiB = metric{
		label: "tracked peak (KiB)",
		value: func(r bench.Record) float64 { return float64(r.TrackedPeakDelta) / 1024 },
	}
	durationMs = metric{
		label: "duration (ms)",
		value: func(r bench.Record) float64 { return float64(r.Duration.Nanoseconds()) / 1e6 },
	}
)

// PeakBytesChart writes a chart of the tracked peak bytes of op to path. The
// image format follows the extension (.png, .svg, .pdf, ...).
func PeakBytesChart(recs []bench.Record, op bench.Op, path string) error {
	return save(recs, op, peakKiB, path)
}

// DurationChart writes a chart of the wall time of op to path.
func DurationChart(recs []bench.Record, op bench.Op, path string) error {
	return save(recs, op, durationMs, path)
}

// WritePeakBytesChart is PeakBytesChart rendering to w in the given format.
func WritePeakBytesChart(w io.Writer, recs []bench.Record, op bench.Op, format string) error {
	p, err := build(recs, op, peakKiB)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}

func save(recs []bench.Record, op bench.Op, m metric, path string) error {
	p, err := build(recs, op, m)
	if err != nil {
		return err
	}
	if err = p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("report: saving %s: %w", path, err)
	}

	return nil
}

// build groups the records of op by workload (shape + non-zeros) and backend.
func build(recs []bench.Record, op bench.Op, m metric) (*plot.Plot, error) {
	groups, kinds, values := collect(recs, op, m)
	if len(groups) == 0 {
		return nil, fmt.Errorf("report: %s: %w", op, ErrNoRecords)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s by backend", op, m.label)
	p.Y.Label.Text = m.label
	p.Legend.Top = true

	// Center the bar cluster on each tick.
	offset := -barWidth * vg.Length(len(kinds)-1) / 2
	for i, kind := range kinds {
		bars, err := plotter.NewBarChart(values[kind], barWidth)
		if err != nil {
			return nil, fmt.Errorf("report: %s: %w", kind, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + barWidth*vg.Length(i)
		p.Add(bars)
		p.Legend.Add(kind.String(), bars)
	}
	p.NominalX(groups...)

	return p, nil
}

// collect returns the workload labels in first-seen order, the backends in
// first-seen order and, per backend, one value per workload (0 when missing).
func collect(recs []bench.Record, op bench.Op, m metric) ([]string, []matrix.Kind, map[matrix.Kind]plotter.Values) {
	var groups []string
	var kinds []matrix.Kind
	groupIdx := make(map[string]int)
	cell := make(map[matrix.Kind]map[int]float64)

	for _, r := range recs {
		if r.Op != op {
			continue
		}
		label := fmt.Sprintf("%dx%d nnz=%d", r.Rows, r.Cols, r.NonZeros)
		g, ok := groupIdx[label]
		if !ok {
			g = len(groups)
			groupIdx[label] = g
			groups = append(groups, label)
		}
		if _, ok = cell[r.Backend]; !ok {
			cell[r.Backend] = make(map[int]float64)
			kinds = append(kinds, r.Backend)
		}
		cell[r.Backend][g] = m.value(r)
	}

	values := make(map[matrix.Kind]plotter.Values, len(kinds))
	for _, k := range kinds {
		vs := make(plotter.Values, len(groups))
		for g, v := range cell[k] {
			vs[g] = v
		}
		values[k] = vs
	}

	return groups, kinds, values
}
