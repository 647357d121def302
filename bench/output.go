// SPDX-License-Identifier: MIT

package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"
)

// csvHeader is the column order of WriteCSV and WriteTable.
var csvHeader = []string{
	"backend", "op", "rows", "cols", "nonzeros", "result_nonzeros",
	"duration_ns", "tracked_peak_delta", "tracked_live_delta", "heap_delta",
}

func (r Record) fields() []string {
	return []string{
		r.Backend.String(),
		r.Op.String(),
		strconv.Itoa(r.Rows),
		strconv.Itoa(r.Cols),
		strconv.Itoa(r.NonZeros),
		strconv.Itoa(r.ResultNonZeros),
		strconv.FormatInt(r.Duration.Nanoseconds(), 10),
		strconv.FormatInt(r.TrackedPeakDelta, 10),
		strconv.FormatInt(r.TrackedLiveDelta, 10),
		strconv.FormatInt(r.HeapDelta, 10),
	}
}

// WriteCSV writes a header line and one line per record.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.fields()); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteJSON writes recs as an indented JSON array.
func WriteJSON(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(recs)
}

// ReadJSON decodes what WriteJSON produced.
func ReadJSON(r io.Reader) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("bench: decoding records: %w", err)
	}

	return recs, nil
}

// WriteTable writes recs as a right-aligned text table with human-readable
// durations and byte counts.
func WriteTable(w io.Writer, recs []Record) error {
	t := newTable(len(csvHeader))
	t.addRow("backend", "op", "rows", "cols", "nnz", "result nnz", "time", "peak", "live", "heap")
	for _, r := range recs {
		t.addRow(
			r.Backend.String(),
			r.Op.String(),
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.Cols),
			strconv.Itoa(r.NonZeros),
			strconv.Itoa(r.ResultNonZeros),
			r.Duration.Round(time.Microsecond).String(),
			FormatBytes(r.TrackedPeakDelta),
			FormatBytes(r.TrackedLiveDelta),
			FormatBytes(r.HeapDelta),
		)
	}

	return t.print(w)
}

// FormatBytes renders n with a binary unit (B, KiB, MiB, GiB).
func FormatBytes(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%s%dB", sign, n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%s%.1f%ciB", sign, float64(n)/float64(div), "KMG"[exp])
}

// table accumulates rows and tracks the widest cell per column, in runes
// because fmt pads by rune count.
type table struct {
	widths []int
	rows   [][]string
}

func newTable(cols int) *table {
	return &table{widths: make([]int, cols)}
}

func (t *table) addRow(vals ...string) {
	if len(vals) != len(t.widths) {
		panic("incorrect number of columns")
	}
	for i, v := range vals {
		t.widths[i] = max(t.widths[i], utf8.RuneCountInString(v))
	}
	t.rows = append(t.rows, vals)
}

func (t *table) print(w io.Writer) error {
	for _, row := range t.rows {
		for j, col := range row {
			if _, err := fmt.Fprintf(w, " %*s |", t.widths[j], col); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
