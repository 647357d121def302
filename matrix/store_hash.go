// SPDX-License-Identifier: MIT

package matrix

// hashEntryBytes estimates one map[int]float64 slot: 8 key + 8 value bytes
// plus control/tophash and load-factor slack.
const hashEntryBytes = 24

// hashStore is the unordered discipline: expected O(1) get/put/remove,
// iteration order unspecified.
type hashStore struct {
	m map[int]float64
}

func newHashStore() *hashStore {
	return &hashStore{m: make(map[int]float64)}
}

func (h *hashStore) get(key int) (float64, bool) {
	v, ok := h.m[key]

	return v, ok
}

func (h *hashStore) put(key int, v float64) bool {
	_, existed := h.m[key]
	h.m[key] = v

	return !existed
}

func (h *hashStore) remove(key int) bool {
	if _, ok := h.m[key]; !ok {
		return false
	}
	delete(h.m, key)

	return true
}

func (h *hashStore) len() int { return len(h.m) }

func (h *hashStore) each(f func(key int, v float64) bool) {
	for k, v := range h.m {
		if !f(k, v) {
			return
		}
	}
}

func (h *hashStore) ordered() bool { return false }

func (h *hashStore) fresh() entryStore { return newHashStore() }

func (h *hashStore) entryBytes() uint64 { return hashEntryBytes }
