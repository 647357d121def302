// SPDX-License-Identifier: MIT

package memtrack

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// Snapshot captures the runtime heap and the allocator counters at a point in
// time, so the movement of both can be reported after an operation.
type Snapshot struct {
	// wall clock at capture
	start time.Time
	// runtime.MemStats.HeapAlloc at capture
	heapAlloc uint64
	// runtime.MemStats.TotalAlloc at capture
	totalAlloc uint64
	// number of completed GC cycles at capture
	numGC uint32
	// allocator counters at capture (zero when no allocator was given)
	tracked Stats
	alloc   *Allocator
}

// Delta is the difference between a Snapshot and "now".
type Delta struct {
	Elapsed time.Duration `json:"elapsed"`
	// HeapDelta is HeapAlloc(now) - HeapAlloc(then); negative when a GC ran.
	HeapDelta int64 `json:"heap_delta"`
	// TotalAllocated counts every heap byte allocated in between, freed or not.
	TotalAllocated uint64 `json:"total_allocated"`
	GCs            uint32 `json:"gcs"`
	// TrackedLive is Live(now) - Live(then) of the allocator.
	TrackedLive int64 `json:"tracked_live"`
	// TrackedPeak is Peak(now) - Live(then): the high-water mark reached
	// above the starting live count, assuming ResetPeak was called at capture.
	TrackedPeak int64 `json:"tracked_peak"`
}

// TakeSnapshot captures the heap and the counters of a (may be nil).
func TakeSnapshot(a *Allocator) *Snapshot {
	var m runtime.MemStats

	start := time.Now()
	runtime.ReadMemStats(&m)

	s := &Snapshot{
		start:      start,
		heapAlloc:  m.HeapAlloc,
		totalAlloc: m.TotalAlloc,
		numGC:      m.NumGC,
		alloc:      a,
	}
	if a != nil {
		s.tracked = a.Stats()
	}

	return s
}

// Delta computes the movement since the snapshot was taken.
func (s *Snapshot) Delta() Delta {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)
	d := Delta{
		Elapsed:        time.Since(s.start),
		HeapDelta:      int64(m.HeapAlloc) - int64(s.heapAlloc),
		TotalAllocated: m.TotalAlloc - s.totalAlloc,
		GCs:            m.NumGC - s.numGC,
	}
	if s.alloc != nil {
		now := s.alloc.Stats()
		d.TrackedLive = int64(now.Live) - int64(s.tracked.Live)
		d.TrackedPeak = int64(now.Peak) - int64(s.tracked.Live)
	}

	return d
}

// Log logs the difference between the state now and as it was when the
// snapshot was taken.
func (s *Snapshot) Log(prefix string) {
	d := s.Delta()

	log.Debugf("%s took %0.4fs, heap %+d bytes (%d allocated, %d GC events), tracked live %+d peak %+d",
		prefix, d.Elapsed.Seconds(), d.HeapDelta, d.TotalAllocated, d.GCs, d.TrackedLive, d.TrackedPeak)
}
