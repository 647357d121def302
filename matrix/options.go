// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for backend constructors.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective configuration.
//
// Design goals:
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Results inherit: Add/Mul/Scale/Transposed build their result with the
//     Options of the left (or only) operand, so a matrix built against a
//     private allocator keeps reporting there through a whole pipeline.
package matrix

import (
	"math"

	"github.com/katalvlaran/lvsparse/memtrack"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used by AllClose when the
	// caller passes a negative tolerance.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles finite-only validation on Set and FromInfo.
	DefaultValidateNaNInf = true

	// DefaultBTreeDegree is the node degree of the ordered backend's B-tree.
	DefaultBTreeDegree = 32
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicAllocatorNil     = "matrix: WithAllocator: allocator must not be nil"
	panicBTreeDegreeSmall = "matrix: WithBTreeDegree: degree must be >= 2"
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps            float64             // >= 0; DefaultEpsilon
	validateNaNInf bool                // DefaultValidateNaNInf
	alloc          *memtrack.Allocator // memtrack.Default unless injected
	degree         int                 // DefaultBTreeDegree
}

// WithEpsilon sets the default tolerance used by AllClose.
// Panics when eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf rejects NaN/±Inf on Set and FromInfo (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf accepts any float64 on Set and FromInfo.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithAllocator reports the storage of the constructed matrix (and of every
// result derived from it) to a instead of memtrack.Default.
// Panics on nil.
func WithAllocator(a *memtrack.Allocator) Option {
	if a == nil {
		panic(panicAllocatorNil)
	}

	return func(o *Options) { o.alloc = a }
}

// WithBTreeDegree sets the B-tree degree of the ordered backend.
// Ignored by the other backends. Panics when d < 2.
func WithBTreeDegree(d int) Option {
	if d < 2 {
		panic(panicBTreeDegreeSmall)
	}

	return func(o *Options) { o.degree = d }
}

// NewMatrixOptions resolves opts on top of the defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports the resolved numeric policy.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Allocator reports the resolved allocator.
func (o Options) Allocator() *memtrack.Allocator { return o.alloc }

// BTreeDegree reports the resolved B-tree degree.
func (o Options) BTreeDegree() int { return o.degree }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		alloc:          memtrack.Default,
		degree:         DefaultBTreeDegree,
	}
}

// gatherOptions applies user setters on top of defaults, in order.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// rejects reports whether v violates the numeric policy of o.
func (o Options) rejects(v float64) bool {
	return o.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0))
}
