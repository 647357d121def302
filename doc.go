// Package lvsparse is a test bench for matrix storage strategies: the same
// linear-algebra workload runs on a dense buffer, a hash-indexed sparse map
// and an ordered (B-tree) sparse map, and every byte each of them holds is
// accounted for.
//
// 🚀 What is inside?
//
//	• One capability set for every backend: new, get/set, add, mul, scale,
//	  a consuming transpose, and snapshots (shape + non-zero entries).
//	• O(1) transpose on the sparse backends: a flag flip, no data moved.
//	• A tracking allocator with live and peak byte counters.
//	• A harness that measures time and memory per operation and checks every
//	  sparse result against the dense baseline.
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/        Matrix interface, Dense / Hash / Ordered backends, kernels, gonum interop
//	memtrack/      Allocator (live/peak counters), Lease, heap Snapshot
//	workload/      reproducible random snapshots, identity and diagonal fixtures
//	bench/         Harness, Record, CSV / JSON / table writers
//	report/        bar charts of records (gonum/plot)
//	cmd/lvsparse/  the run and plot commands
//
// Quick ASCII example (3×3 diagonal, ×2):
//
//	[1 0 0]        [2 0 0]
//	[0 2 0]  ×2 →  [0 4 0]   dense holds 9 cells, hash/ordered hold 3 entries
//	[0 0 3]        [0 0 6]
//
//	go install github.com/katalvlaran/lvsparse/cmd/lvsparse@latest
package lvsparse
