// SPDX-License-Identifier: MIT

// Package bench runs one workload against several matrix backends and records
// time and memory for each operation.
//
// A Harness owns a private memtrack.Allocator, so the tracked counters only
// ever reflect the matrices it builds. For every backend it loads the same
// snapshot, runs each requested Op, samples the allocator and the Go heap
// around the call, and checks the result against the dense baseline. Records
// can be written as CSV, JSON or an aligned text table.
package bench
