// SPDX-License-Identifier: MIT

package matrix

import (
	"unsafe"

	"github.com/katalvlaran/lvsparse/memtrack"
)

// entryStore is the associative map discipline a Sparse matrix runs on.
// Keys are encoded physical positions (row*physCols + col); values are never 0.
//
// Implementations: hashStore (Go map, no order) and orderedStore (B-tree,
// ascending keys). The sparse core never depends on anything else.
type entryStore interface {
	// get returns the value stored at key.
	get(key int) (float64, bool)
	// put inserts or overwrites; reports whether key was new.
	put(key int, v float64) bool
	// remove deletes key; reports whether it was present.
	remove(key int) bool
	// len is the number of stored entries.
	len() int
	// each visits entries until f returns false (ascending keys when ordered()).
	each(f func(key int, v float64) bool)
	// ordered reports whether each visits in ascending key order.
	ordered() bool
	// fresh returns an empty store of the same discipline and tuning.
	fresh() entryStore
	// entryBytes is the tracked cost of one stored entry.
	entryBytes() uint64
}

// sparseStorage couples an entry store with the lease tracking its bytes.
// It is the unit of ownership that Transposed moves between handles.
type sparseStorage struct {
	entries entryStore
	lease   *memtrack.Lease
}

// sparseHeaderBytes is the fixed bookkeeping charged per sparse matrix.
var sparseHeaderBytes = uint64(unsafe.Sizeof(Sparse{}) + unsafe.Sizeof(sparseStorage{}))

// newSparseStorage opens a lease holding just the header.
func newSparseStorage(entries entryStore, alloc *memtrack.Allocator) *sparseStorage {
	return &sparseStorage{
		entries: entries,
		lease:   memtrack.NewLease(alloc, sparseHeaderBytes),
	}
}

// set writes v at key keeping the sparse invariant: zero removes.
func (s *sparseStorage) set(key int, v float64) {
	if v == 0 {
		if s.entries.remove(key) {
			s.lease.Shrink(s.entries.entryBytes())
		}

		return
	}
	if s.entries.put(key, v) {
		s.lease.Grow(s.entries.entryBytes())
	}
}

// accumulate adds delta to the value at key; a sum of exactly 0 removes it.
func (s *sparseStorage) accumulate(key int, delta float64) {
	if delta == 0 {
		return
	}
	old, _ := s.entries.get(key)
	s.set(key, old+delta)
}

// release returns every tracked byte; the storage must not be used afterwards.
func (s *sparseStorage) release() {
	s.lease.Release()
}
