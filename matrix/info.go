// SPDX-License-Identifier: MIT

// Package matrix - metadata snapshot (shape + non-zero entries).
//
// Purpose:
//   - Move matrices between backends (FromInfo(kind, m.Info())).
//   - Serve as test fixtures and as the in-memory shape of persisted records
//     (row/col/value triples via the JSON tags below).
//
// Invariants (checked by Validate):
//   - Shape is valid (both dimensions > 0).
//   - Every entry is in bounds, non-zero, and no position repeats.
//   - Entry order carries no meaning; Sort gives a canonical row-major order.
package matrix

import (
	"fmt"
	"sort"
)

// Entry is one stored non-zero cell. The embedded Position flattens into
// {"row":..,"col":..,"value":..} when encoded as JSON.
type Entry struct {
	Position
	Value float64 `json:"value"`
}

// Info is the metadata snapshot of a matrix.
type Info struct {
	Shape   Shape   `json:"shape"`
	Entries []Entry `json:"entries"`
}

// NewInfo is a convenience constructor; it does not validate.
func NewInfo(shape Shape, entries ...Entry) Info {
	return Info{Shape: shape, Entries: entries}
}

// NonZeros returns len(Entries).
func (in Info) NonZeros() int { return len(in.Entries) }

// Validate enforces the snapshot invariants.
// Errors: ErrInvalidInfo wrapped with the offending entry.
// Complexity: O(k) time and space for k entries.
func (in Info) Validate() error {
	if !in.Shape.Valid() {
		return fmt.Errorf("Info.Validate: shape %v: %w", in.Shape, ErrInvalidInfo)
	}
	seen := make(map[Position]struct{}, len(in.Entries))
	for idx, e := range in.Entries {
		if !in.Shape.Contains(e.Position) {
			return fmt.Errorf("Info.Validate: entry %d at %v outside %v: %w", idx, e.Position, in.Shape, ErrInvalidInfo)
		}
		if e.Value == 0 {
			return fmt.Errorf("Info.Validate: entry %d at %v is zero: %w", idx, e.Position, ErrInvalidInfo)
		}
		if _, dup := seen[e.Position]; dup {
			return fmt.Errorf("Info.Validate: entry %d at %v repeats: %w", idx, e.Position, ErrInvalidInfo)
		}
		seen[e.Position] = struct{}{}
	}

	return nil
}

// Sort orders entries row-major (row, then column) in place and returns in.
func (in Info) Sort() Info {
	sort.Slice(in.Entries, func(i, j int) bool {
		a, b := in.Entries[i].Position, in.Entries[j].Position
		if a.Row != b.Row {
			return a.Row < b.Row
		}

		return a.Col < b.Col
	})

	return in
}

// Lookup returns the value stored at p, or 0 when absent.
// Complexity: O(k); build a map via Values for repeated probes.
func (in Info) Lookup(p Position) float64 {
	for _, e := range in.Entries {
		if e.Position == p {
			return e.Value
		}
	}

	return 0
}

// Values indexes the entries by position.
func (in Info) Values() map[Position]float64 {
	out := make(map[Position]float64, len(in.Entries))
	for _, e := range in.Entries {
		out[e.Position] = e.Value
	}

	return out
}

// Equivalent reports whether in and other describe the same matrix: equal
// shapes and the same set of (position, value) pairs, order ignored.
// Values compare exactly.
func (in Info) Equivalent(other Info) bool {
	if in.Shape != other.Shape || len(in.Entries) != len(other.Entries) {
		return false
	}
	idx := in.Values()
	if len(idx) != len(in.Entries) {
		return false // duplicates on our side
	}
	for _, e := range other.Entries {
		v, ok := idx[e.Position]
		if !ok || v != e.Value {
			return false
		}
		delete(idx, e.Position)
	}

	return len(idx) == 0
}
