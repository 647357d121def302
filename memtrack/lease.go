// SPDX-License-Identifier: MIT

package memtrack

import (
	"runtime"
	"sync"
)

// Lease is the byte account of one storage owner (a dense buffer, a sparse
// entry map). Grow/Shrink forward to the Allocator; Release returns whatever
// the lease still holds. A finalizer calls Release when the lease becomes
// unreachable, which is how storage dropped by its owner is counted as freed.
//
// A Lease is owned by a single storage object; Grow/Shrink are not meant to be
// called concurrently with each other. Release is idempotent and may race with
// the finalizer only in the sense that one of them wins.
type Lease struct {
	mu    sync.Mutex
	alloc *Allocator
	bytes uint64
	done  bool
}

// NewLease opens a lease on a (Default when nil) holding n bytes.
func NewLease(a *Allocator, n uint64) *Lease {
	if a == nil {
		a = Default
	}
	l := &Lease{alloc: a}
	l.Grow(n)
	runtime.SetFinalizer(l, (*Lease).Release)

	return l
}

// Grow charges n more bytes to the lease.
// Growing a released lease is a no-op.
func (l *Lease) Grow(n uint64) {
	if n == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return
	}
	l.bytes += n
	l.alloc.Alloc(n)
}

// Shrink returns up to n bytes to the allocator (never more than held).
func (l *Lease) Shrink(n uint64) {
	if n == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return
	}
	if n > l.bytes {
		n = l.bytes
	}
	l.bytes -= n
	l.alloc.Free(n)
}

// Release frees every byte still held and closes the lease.
func (l *Lease) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return
	}
	l.done = true
	l.alloc.Free(l.bytes)
	l.bytes = 0
}

// Bytes reports what the lease currently holds.
func (l *Lease) Bytes() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bytes
}

// Allocator reports the allocator the lease charges.
func (l *Lease) Allocator() *Allocator { return l.alloc }
