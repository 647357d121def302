// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOp is returned by ParseOp for names outside Ops().
var ErrUnknownOp = errors.New("bench: unknown operation")

// Op names one measured operation.
type Op uint8

const (
	// OpBuild loads the snapshot into the backend (FromInfo).
	OpBuild Op = iota
	// OpAdd computes A + A.
	OpAdd
	// OpMul computes A × Aᵀ.
	OpMul
	// OpScale computes alpha·A.
	OpScale
	// OpTranspose consumes a copy of A into Aᵀ.
	OpTranspose
)

var opNames = [...]string{
	OpBuild:     "build",
	OpAdd:       "add",
	OpMul:       "mul",
	OpScale:     "scale",
	OpTranspose: "transpose",
}

// Ops lists every operation in execution order.
func Ops() []Op { return []Op{OpBuild, OpAdd, OpMul, OpScale, OpTranspose} }

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}

	return fmt.Sprintf("op(%d)", uint8(o))
}

// ParseOp resolves a case-insensitive operation name.
func ParseOp(s string) (Op, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, o := range Ops() {
		if opNames[o] == want {
			return o, nil
		}
	}

	return 0, fmt.Errorf("ParseOp(%q): %w", s, ErrUnknownOp)
}

// ParseOps resolves a comma-separated list ("add,mul"). "all" selects Ops().
func ParseOps(s string) ([]Op, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return Ops(), nil
	}
	var out []Op
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		o, err := ParseOp(part)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	parsed, err := ParseOp(string(b))
	if err != nil {
		return err
	}
	*o = parsed

	return nil
}
