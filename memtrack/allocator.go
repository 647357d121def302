// SPDX-License-Identifier: MIT

// Package memtrack - live/peak byte counters.
//
// Purpose:
//   - Count bytes reported by storage owners (Alloc/Free).
//   - Track the high-water mark of the live counter (Peak) with an explicit reset.
//
// Concurrency:
//   - Counters are sync/atomic values; Alloc/Free may be called from any goroutine
//     (finalizers run on their own goroutine, so this is required, not optional).

package memtrack

import (
	"fmt"
	"sync/atomic"
)

// Allocator is an accounting allocator: it never hands out memory, it only
// records how much the caller says it allocated and freed.
// The zero value is ready to use.
type Allocator struct {
	live   atomic.Uint64 // bytes currently attributed
	peak   atomic.Uint64 // max(live) since the last ResetPeak/Reset
	allocs atomic.Uint64 // number of Alloc calls with n > 0
	frees  atomic.Uint64 // number of Free calls with n > 0
}

// Stats is a point-in-time copy of the allocator counters.
type Stats struct {
	Live   uint64 `json:"live"`
	Peak   uint64 `json:"peak"`
	Allocs uint64 `json:"allocs"`
	Frees  uint64 `json:"frees"`
}

// String renders the counters for logs.
func (s Stats) String() string {
	return fmt.Sprintf("live=%d peak=%d allocs=%d frees=%d", s.Live, s.Peak, s.Allocs, s.Frees)
}

// Default is the process-wide allocator used when no other is injected.
var Default = New()

// New returns an empty, independent Allocator.
func New() *Allocator { return &Allocator{} }

// Alloc adds n bytes to the live counter and raises the peak when exceeded.
// Complexity: O(1) amortized (CAS loop on peak only under contention).
func (a *Allocator) Alloc(n uint64) {
	if n == 0 {
		return
	}
	a.allocs.Add(1)
	now := a.live.Add(n)
	a.raisePeak(now)
}

// raisePeak lifts peak to at least v.
func (a *Allocator) raisePeak(v uint64) {
	for {
		p := a.peak.Load()
		if v <= p || a.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Free subtracts n bytes from the live counter.
// Freeing more than is live clamps the counter at zero instead of wrapping.
func (a *Allocator) Free(n uint64) {
	if n == 0 {
		return
	}
	a.frees.Add(1)
	for {
		cur := a.live.Load()
		next := uint64(0)
		if n < cur {
			next = cur - n
		}
		if a.live.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Live returns the bytes currently attributed.
func (a *Allocator) Live() uint64 { return a.live.Load() }

// Peak returns the high-water mark of Live since the last reset.
func (a *Allocator) Peak() uint64 { return a.peak.Load() }

// ResetPeak sets the peak to the current live count, so the next Peak()
// reports the maximum reached from "now" on.
func (a *Allocator) ResetPeak() {
	a.peak.Store(a.live.Load())
}

// Reset zeroes every counter. Leases still holding bytes will clamp at zero
// when they release.
func (a *Allocator) Reset() {
	a.live.Store(0)
	a.peak.Store(0)
	a.allocs.Store(0)
	a.frees.Store(0)
}

// Stats copies the counters. The fields are read independently, so under
// concurrent traffic the copy is not a single atomic cut.
func (a *Allocator) Stats() Stats {
	return Stats{
		Live:   a.live.Load(),
		Peak:   a.peak.Load(),
		Allocs: a.allocs.Load(),
		Frees:  a.frees.Load(),
	}
}

// CurrentLiveBytes reports Default.Live().
func CurrentLiveBytes() uint64 { return Default.Live() }

// PeakBytes reports Default.Peak().
func PeakBytes() uint64 { return Default.Peak() }

// ResetPeak resets the peak of the Default allocator.
func ResetPeak() { Default.ResetPeak() }
