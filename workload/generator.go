// SPDX-License-Identifier: MIT

package workload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvsparse/matrix"
)

// Defaults (single source of truth).
const (
	DefaultDensity  = 0.01
	DefaultSeed     = 1
	DefaultMinValue = -1.0
	DefaultMaxValue = 1.0
)

var (
	// ErrBadDensity is returned when Density is outside [0, 1] or NaN.
	ErrBadDensity = errors.New("workload: density must be in [0, 1]")

	// ErrBadRange is returned when the value range is empty or not finite.
	ErrBadRange = errors.New("workload: value range must be finite with MinValue < MaxValue")
)

// Config describes one generated matrix.
type Config struct {
	Shape    matrix.Shape `json:"shape"`
	Density  float64      `json:"density"` // fraction of non-zero cells
	Seed     int64        `json:"seed"`
	MinValue float64      `json:"min_value"` // inclusive
	MaxValue float64      `json:"max_value"` // exclusive
}

// Option mutates a Config.
type Option func(*Config)

// WithDensity sets the fraction of non-zero cells.
func WithDensity(d float64) Option { return func(c *Config) { c.Density = d } }

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithRange sets the half-open value range [lo, hi).
func WithRange(lo, hi float64) Option {
	return func(c *Config) { c.MinValue, c.MaxValue = lo, hi }
}

// NewConfig returns the defaults for shape with opts applied in order.
func NewConfig(shape matrix.Shape, opts ...Option) Config {
	c := Config{
		Shape:    shape,
		Density:  DefaultDensity,
		Seed:     DefaultSeed,
		MinValue: DefaultMinValue,
		MaxValue: DefaultMaxValue,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if !c.Shape.Valid() {
		return fmt.Errorf("workload: shape %v: %w", c.Shape, matrix.ErrInvalidShape)
	}
	if math.IsNaN(c.Density) || c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("workload: density %g: %w", c.Density, ErrBadDensity)
	}
	if math.IsNaN(c.MinValue) || math.IsNaN(c.MaxValue) ||
		math.IsInf(c.MinValue, 0) || math.IsInf(c.MaxValue, 0) || c.MinValue >= c.MaxValue {
		return fmt.Errorf("workload: range [%g, %g): %w", c.MinValue, c.MaxValue, ErrBadRange)
	}

	return nil
}

// NonZeros is the number of entries Generate will produce: round(density*r*c).
func (c Config) NonZeros() int {
	return int(math.Round(c.Density * float64(c.Shape.Rows) * float64(c.Shape.Cols)))
}

// Generate builds a valid snapshot with exactly c.NonZeros() distinct entries
// in row-major order. Values are uniform in [MinValue, MaxValue), redrawn when 0.
//
// Implementation:
//   - Dense fill (more than half the cells): one selection-sampling pass over
//     all cells, keeping each with probability needed/remaining.
//   - Sparse fill: rejection sampling of flat cell indices into a set.
//
// Complexity: O(r*c) for dense fills, O(k log k) otherwise.
func Generate(c Config) (matrix.Info, error) {
	if err := c.Validate(); err != nil {
		return matrix.Info{}, err
	}
	rng := rand.New(rand.NewSource(c.Seed))
	cells := c.Shape.Cells()
	k := c.NonZeros()
	info := matrix.Info{Shape: c.Shape, Entries: make([]matrix.Entry, 0, k)}

	if k > cells/2 {
		need := k
		for idx := 0; idx < cells && need > 0; idx++ {
			if rng.Intn(cells-idx) < need {
				info.Entries = append(info.Entries, c.entry(idx, rng))
				need--
			}
		}

		return info, nil
	}

	picked := make(map[int]struct{}, k)
	order := make([]int, 0, k)
	var idx int
	for len(order) < k {
		idx = rng.Intn(cells)
		if _, dup := picked[idx]; dup {
			continue
		}
		picked[idx] = struct{}{}
		order = append(order, idx)
	}
	for _, idx = range order {
		info.Entries = append(info.Entries, c.entry(idx, rng))
	}

	return info.Sort(), nil
}

// entry turns a flat row-major index into an entry with a fresh value.
func (c Config) entry(idx int, rng *rand.Rand) matrix.Entry {
	return matrix.Entry{
		Position: matrix.Pos(idx/c.Shape.Cols, idx%c.Shape.Cols),
		Value:    c.value(rng),
	}
}

// value draws a non-zero value from [MinValue, MaxValue).
func (c Config) value(rng *rand.Rand) float64 {
	for {
		v := c.MinValue + rng.Float64()*(c.MaxValue-c.MinValue)
		if v != 0 {
			return v
		}
	}
}

// GenerateBatch runs Generate for every config concurrently. Results keep the
// order of cfgs; the first failure cancels the remaining work.
func GenerateBatch(ctx context.Context, cfgs []Config) ([]matrix.Info, error) {
	out := make([]matrix.Info, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := Generate(cfgs[i])
			if err != nil {
				return fmt.Errorf("config %d: %w", i, err)
			}
			out[i] = info

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Identity returns the snapshot of I_n.
func Identity(n int) (matrix.Info, error) {
	if n <= 0 {
		return matrix.Info{}, fmt.Errorf("workload: identity %d: %w", n, matrix.ErrInvalidShape)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = 1
	}

	return Diagonal(values)
}

// Diagonal returns the snapshot of the n×n matrix with values on the main
// diagonal. Zero values are skipped.
func Diagonal(values []float64) (matrix.Info, error) {
	n := len(values)
	if n == 0 {
		return matrix.Info{}, fmt.Errorf("workload: empty diagonal: %w", matrix.ErrInvalidShape)
	}
	info := matrix.Info{Shape: matrix.ShapeOf(n, n)}
	for i, v := range values {
		if v == 0 {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return matrix.Info{}, fmt.Errorf("workload: diagonal[%d]: %w", i, matrix.ErrNaNInf)
		}
		info.Entries = append(info.Entries, matrix.Entry{Position: matrix.Pos(i, i), Value: v})
	}

	return info, nil
}
