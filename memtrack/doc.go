// SPDX-License-Identifier: MIT

// Package memtrack attributes live and peak byte counts to matrix storage.
//
// What & Why:
//
//	Go exposes no hook beneath the runtime allocator, so memtrack is an
//	instrumented accounting layer that storage owners report into at the
//	sites where they allocate and release their buffers. An Allocator keeps
//	two counters (live, peak) updated atomically; a Lease is the per-storage
//	account that grows and shrinks with the storage and releases whatever it
//	still holds when the storage becomes unreachable.
//
//	A process-wide Default allocator mirrors the "one global counter pair"
//	contract: CurrentLiveBytes, PeakBytes and ResetPeak read or reset it.
//	Harnesses that need isolation create their own Allocator with New and
//	inject it into the matrix constructors.
//
//	Snapshot complements the explicit counters with the runtime's own view of
//	the heap (runtime.MemStats), so a report can show both the attributed
//	bytes and the real heap movement around an operation.
//
// Complexity:
//
//	Alloc, Free, Live, Peak and ResetPeak are O(1) and never fail.
//	TakeSnapshot is as expensive as runtime.ReadMemStats (a short stop-the-world).
package memtrack
