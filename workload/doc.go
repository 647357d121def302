// SPDX-License-Identifier: MIT

// Package workload generates reproducible matrix snapshots (matrix.Info) for
// benchmarking the backends against each other.
//
// A Config fixes shape, density, value range and seed; the same Config always
// yields the same entries, so a run can be repeated on every backend and on
// every machine. GenerateBatch fans a list of configs out over an errgroup.
package workload
