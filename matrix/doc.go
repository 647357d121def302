// SPDX-License-Identifier: MIT

// Package matrix provides interchangeable float64 matrix backends behind one
// capability set, so the same workload can be run against each of them and
// compared on speed and memory.
//
// Backends (Kind):
//
//   - KindDense:   row-major []float64 of r*c cells; the correctness baseline.
//   - KindHash:    non-zeros only, in a Go map keyed by one encoded integer.
//   - KindOrdered: non-zeros only, in a B-tree (github.com/google/btree) with
//     ascending keys, so iteration and snapshots come out row-major.
//
// Capability set:
//
//   - New / NewDense / NewHashSparse / NewOrderedSparse: all-zero matrices.
//   - At / Set (and Get / Put by Position): bounds-checked element access.
//     Writing 0 to a sparse backend removes the entry.
//   - Transposed / Transpose: CONSUMING transpose. Dense copies; the sparse
//     backends flip a flag in O(1). The old handle then fails with ErrConsumed.
//   - Add, Mul, Scale: results take the left operand's kind and options.
//   - Info / FromInfo: a snapshot of shape plus non-zero entries, and back.
//   - Convert, Equal, AllClose: cross-backend helpers.
//   - ToGonum / FromGonum / AsGonum: interop with gonum.org/v1/gonum/mat.
//
// Memory accounting:
//
// Every backend charges its storage to a memtrack.Allocator (memtrack.Default
// unless WithAllocator is given): 8 bytes per dense cell, a fixed cost per
// sparse entry, plus a small per-matrix header. Peak bytes therefore reflect
// the real footprint ratio between backends.
//
// Errors are sentinels (errors.go) wrapped with call-site context; match them
// with errors.Is. Public operations never panic on user input, except
// option constructors given nonsensical values and the gonum view.
package matrix
