// SPDX-License-Identifier: MIT

package matrix

import "github.com/google/btree"

// orderedEntryBytes estimates one B-tree item: the 16-byte cell plus the
// amortized node slack and child pointers at the default degree.
const orderedEntryBytes = 32

// cell is the B-tree item: an encoded key and its non-zero value.
type cell struct {
	key int
	val float64
}

// cellLess orders cells by key only; val never takes part in comparisons.
func cellLess(a, b cell) bool { return a.key < b.key }

// orderedStore is the ordered discipline: O(log k) get/put/remove and
// iteration in ascending key order (row-major for an untransposed matrix).
type orderedStore struct {
	t      *btree.BTreeG[cell]
	degree int
}

func newOrderedStore(degree int) *orderedStore {
	if degree < 2 {
		degree = DefaultBTreeDegree
	}

	return &orderedStore{t: btree.NewG[cell](degree, cellLess), degree: degree}
}

func (o *orderedStore) get(key int) (float64, bool) {
	c, ok := o.t.Get(cell{key: key})

	return c.val, ok
}

func (o *orderedStore) put(key int, v float64) bool {
	_, replaced := o.t.ReplaceOrInsert(cell{key: key, val: v})

	return !replaced
}

func (o *orderedStore) remove(key int) bool {
	_, ok := o.t.Delete(cell{key: key})

	return ok
}

func (o *orderedStore) len() int { return o.t.Len() }

func (o *orderedStore) each(f func(key int, v float64) bool) {
	o.t.Ascend(func(c cell) bool { return f(c.key, c.val) })
}

func (o *orderedStore) ordered() bool { return true }

func (o *orderedStore) fresh() entryStore { return newOrderedStore(o.degree) }

func (o *orderedStore) entryBytes() uint64 { return orderedEntryBytes }

// cells copies the entries into an ascending slice (merge input).
func (o *orderedStore) cells() []cell {
	out := make([]cell, 0, o.t.Len())
	o.t.Ascend(func(c cell) bool {
		out = append(out, c)

		return true
	})

	return out
}
