// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by every backend.
// This file intentionally contains ONLY value types (positions, shapes, backend
// kinds). Errors and options live in dedicated files (errors.go, options.go).
package matrix

import (
	"fmt"
	"strings"
)

// Position is a zero-based (row, column) coordinate.
// Used both as a cell address and, paired with a Shape, as a bound to validate.
type Position struct {
	Row int `json:"row"` // zero-based row
	Col int `json:"col"` // zero-based column
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position { return Position{Row: row, Col: col} }

// T returns the position mirrored across the main diagonal.
func (p Position) T() Position { return Position{Row: p.Col, Col: p.Row} }

// String renders "(row,col)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Shape is the (rows, columns) size of a matrix. Fixed at construction.
type Shape struct {
	Rows int `json:"rows"` // > 0 for any live matrix
	Cols int `json:"cols"` // > 0 for any live matrix
}

// ShapeOf is shorthand for Shape{Rows: rows, Cols: cols}.
func ShapeOf(rows, cols int) Shape { return Shape{Rows: rows, Cols: cols} }

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

// Contains reports whether p addresses a cell inside s.
// Complexity: O(1).
func (s Shape) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Cols
}

// T returns the transposed shape (cols, rows).
func (s Shape) T() Shape { return Shape{Rows: s.Cols, Cols: s.Rows} }

// Cells is rows*cols.
func (s Shape) Cells() int { return s.Rows * s.Cols }

// String renders "RxC".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Kind names a storage backend.
type Kind uint8

// Backend kinds. The zero value is not a backend.
const (
	KindUnknown Kind = iota
	KindDense        // row-major []float64, every cell stored
	KindHash         // sparse, unordered map keyed by encoded position
	KindOrdered      // sparse, B-tree ordered by encoded position
)

// kindNames maps kinds to their stable text form (CLI flags, reports).
var kindNames = map[Kind]string{
	KindDense:   "dense",
	KindHash:    "hash",
	KindOrdered: "ordered",
}

// Kinds lists every backend in a stable order.
func Kinds() []Kind { return []Kind{KindDense, KindHash, KindOrdered} }

// String returns the stable name of k ("dense", "hash", "ordered").
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Sparse reports whether k stores only non-zero entries.
func (k Kind) Sparse() bool { return k == KindHash || k == KindOrdered }

// ParseKind resolves a case-insensitive backend name.
// Errors: ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == want {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
