// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvsparse/matrix"
	"github.com/katalvlaran/lvsparse/memtrack"
)

// ErrMismatch is returned when a backend's result differs from the dense
// baseline beyond the configured tolerance.
var ErrMismatch = errors.New("bench: result differs from dense baseline")

// Defaults.
const (
	DefaultAlpha     = 2.0
	DefaultTolerance = 1e-9
)

// Config tunes a Harness.
type Config struct {
	// Alpha is the factor used by OpScale.
	Alpha float64
	// Tolerance is the absolute tolerance of the baseline comparison.
	Tolerance float64
	// Verify toggles the baseline comparison.
	Verify bool
}

// Option mutates a Config.
type Option func(*Config)

// WithAlpha sets the OpScale factor.
func WithAlpha(alpha float64) Option { return func(c *Config) { c.Alpha = alpha } }

// WithTolerance sets the comparison tolerance. Panics when tol < 0.
func WithTolerance(tol float64) Option {
	if tol < 0 {
		panic("bench: WithTolerance: tolerance must be >= 0")
	}

	return func(c *Config) { c.Tolerance = tol }
}

// WithoutVerify skips the baseline comparison (useful for very large shapes
// where the dense product is the bottleneck).
func WithoutVerify() Option { return func(c *Config) { c.Verify = false } }

// Record is one measured operation on one backend.
type Record struct {
	Backend matrix.Kind `json:"backend"`
	Op      Op          `json:"op"`
	Rows    int         `json:"rows"`
	Cols    int         `json:"cols"`
	// NonZeros of the input snapshot.
	NonZeros int `json:"nonzeros"`
	// ResultNonZeros of the produced matrix.
	ResultNonZeros int           `json:"result_nonzeros"`
	Duration       time.Duration `json:"duration_ns"`
	// TrackedPeakDelta is the allocator high-water mark above the live bytes
	// at the start of the operation.
	TrackedPeakDelta int64 `json:"tracked_peak_delta"`
	// TrackedLiveDelta is the change in live tracked bytes (the result's footprint).
	TrackedLiveDelta int64 `json:"tracked_live_delta"`
	// HeapDelta is the Go heap movement; noisy, reported for comparison only.
	HeapDelta int64 `json:"heap_delta"`
}

// Harness runs workloads against backends with a private allocator.
type Harness struct {
	alloc *memtrack.Allocator
	cfg   Config
}

// NewHarness returns a Harness with a fresh allocator.
func NewHarness(opts ...Option) *Harness {
	cfg := Config{Alpha: DefaultAlpha, Tolerance: DefaultTolerance, Verify: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Harness{alloc: memtrack.New(), cfg: cfg}
}

// Allocator exposes the harness's counters.
func (h *Harness) Allocator() *memtrack.Allocator { return h.alloc }

// Config reports the resolved configuration.
func (h *Harness) Config() Config { return h.cfg }

// Run measures ops on every kind, loading each backend from info.
// OpBuild always runs first (the other operations need the loaded matrix) but
// is only recorded when requested. Records come out grouped by kind in the
// given order. On error the records gathered so far are returned with it.
func (h *Harness) Run(ctx context.Context, info matrix.Info, kinds []matrix.Kind, ops []Op) ([]Record, error) {
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	var base *baseline
	if h.cfg.Verify {
		var err error
		if base, err = newBaseline(info, ops, h.cfg.Alpha); err != nil {
			return nil, err
		}
		defer base.release()
	}

	out := make([]Record, 0, len(kinds)*len(ops))
	for _, kind := range kinds {
		recs, err := h.runKind(ctx, kind, info, ops, base)
		out = append(out, recs...)
		if err != nil {
			return out, err
		}
	}

	return out, nil
}

// runKind measures every op on one backend. Every matrix it creates is
// released before it returns, so the allocator is back at its starting level.
func (h *Harness) runKind(ctx context.Context, kind matrix.Kind, info matrix.Info, ops []Op, base *baseline) ([]Record, error) {
	log.Debugf("bench: %s: loading %v with %d non-zeros", kind, info.Shape, info.NonZeros())
	a, rec, err := h.measure(kind, OpBuild, info, func() (matrix.Matrix, error) {
		return matrix.FromInfo(kind, info, matrix.WithAllocator(h.alloc))
	})
	if err != nil {
		return nil, err
	}
	defer matrix.Release(a)

	var out []Record
	for _, op := range ops {
		if err = ctx.Err(); err != nil {
			return out, err
		}
		if op == OpBuild {
			if err = h.verify(kind, op, a, base); err != nil {
				return out, err
			}
			out = append(out, h.emit(rec))

			continue
		}
		rec, err = h.runOp(kind, op, info, a, base)
		if err != nil {
			return out, err
		}
		out = append(out, h.emit(rec))
	}

	return out, nil
}

// runOp prepares the operands of op outside the measured region, measures it,
// verifies the result and releases everything it allocated.
func (h *Harness) runOp(kind matrix.Kind, op Op, info matrix.Info, a matrix.Matrix, base *baseline) (Record, error) {
	var fn func() (matrix.Matrix, error)
	switch op {
	case OpAdd:
		fn = func() (matrix.Matrix, error) { return matrix.Add(a, a) }
	case OpScale:
		fn = func() (matrix.Matrix, error) { return matrix.Scale(a, h.cfg.Alpha) }
	case OpMul:
		at, err := transposedCopy(a)
		if err != nil {
			return Record{}, fmt.Errorf("bench: %s/%s: %w", kind, op, err)
		}
		defer matrix.Release(at)
		fn = func() (matrix.Matrix, error) { return matrix.Mul(a, at) }
	case OpTranspose:
		c, err := a.Clone()
		if err != nil {
			return Record{}, fmt.Errorf("bench: %s/%s: %w", kind, op, err)
		}
		defer matrix.Release(c)
		fn = c.Transposed
	default:
		return Record{}, fmt.Errorf("bench: %v: %w", op, ErrUnknownOp)
	}

	res, rec, err := h.measure(kind, op, info, fn)
	if err != nil {
		return Record{}, err
	}
	defer matrix.Release(res)

	return rec, h.verify(kind, op, res, base)
}

// measure samples the allocator and the heap around fn.
func (h *Harness) measure(kind matrix.Kind, op Op, info matrix.Info, fn func() (matrix.Matrix, error)) (matrix.Matrix, Record, error) {
	h.alloc.ResetPeak()
	snap := memtrack.TakeSnapshot(h.alloc)
	res, err := fn()
	d := snap.Delta()
	if err != nil {
		return nil, Record{}, fmt.Errorf("bench: %s/%s: %w", kind, op, err)
	}
	snap.Log(fmt.Sprintf("bench: %s/%s", kind, op))

	return res, Record{
		Backend:          kind,
		Op:               op,
		Rows:             info.Shape.Rows,
		Cols:             info.Shape.Cols,
		NonZeros:         info.NonZeros(),
		ResultNonZeros:   res.NonZeros(),
		Duration:         d.Elapsed,
		TrackedPeakDelta: d.TrackedPeak,
		TrackedLiveDelta: d.TrackedLive,
		HeapDelta:        d.HeapDelta,
	}, nil
}

// verify compares res with the dense baseline of op (no-op without baseline).
func (h *Harness) verify(kind matrix.Kind, op Op, res matrix.Matrix, base *baseline) error {
	if base == nil {
		return nil
	}
	want, ok := base.results[op]
	if !ok {
		return nil
	}
	same, err := matrix.AllClose(want, res, h.cfg.Tolerance)
	if err != nil {
		return fmt.Errorf("bench: %s/%s: %w", kind, op, err)
	}
	if !same {
		return fmt.Errorf("bench: %s/%s: %w", kind, op, ErrMismatch)
	}

	return nil
}

// emit logs rec at Info level and returns it.
func (h *Harness) emit(rec Record) Record {
	log.WithFields(log.Fields{
		"backend": rec.Backend.String(),
		"op":      rec.Op.String(),
		"shape":   fmt.Sprintf("%dx%d", rec.Rows, rec.Cols),
		"nnz":     rec.NonZeros,
		"took":    rec.Duration,
		"peak":    rec.TrackedPeakDelta,
		"live":    rec.TrackedLiveDelta,
	}).Info("measured")

	return rec
}

// transposedCopy returns mᵀ without consuming m.
func transposedCopy(m matrix.Matrix) (matrix.Matrix, error) {
	c, err := m.Clone()
	if err != nil {
		return nil, err
	}

	return c.Transposed()
}

// baseline holds the dense result of every requested op. It uses its own
// allocator so it never shows up in the harness counters.
type baseline struct {
	results map[Op]matrix.Matrix
}

func newBaseline(info matrix.Info, ops []Op, alpha float64) (*baseline, error) {
	withAlloc := matrix.WithAllocator(memtrack.New())
	a, err := matrix.FromInfo(matrix.KindDense, info, withAlloc)
	if err != nil {
		return nil, fmt.Errorf("bench: baseline: %w", err)
	}
	b := &baseline{results: map[Op]matrix.Matrix{OpBuild: a}}
	for _, op := range ops {
		var res matrix.Matrix
		switch op {
		case OpAdd:
			res, err = matrix.Add(a, a)
		case OpScale:
			res, err = matrix.Scale(a, alpha)
		case OpMul:
			var at matrix.Matrix
			if at, err = transposedCopy(a); err == nil {
				res, err = matrix.Mul(a, at)
				matrix.Release(at)
			}
		case OpTranspose:
			res, err = transposedCopy(a)
		default:
			continue
		}
		if err != nil {
			b.release()

			return nil, fmt.Errorf("bench: baseline %s: %w", op, err)
		}
		b.results[op] = res
	}

	return b, nil
}

func (b *baseline) release() {
	for _, m := range b.results {
		matrix.Release(m)
	}
}
