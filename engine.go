package cbg

import (
	"fmt"

	"github.com/alainesp/cbg/shared"
)

// table is the core LSA_max insertion/rearrangement/lookup engine,
// written against the Storage interface so it works unmodified over
// any of the three bin layouts.
type table[K comparable, V any] struct {
	k          int
	storage    Storage[K, V]
	hasher     shared.HashFn[K]
	size       int
	maxLoad    float32
	growFactor float32
}

func validateBucketWidth(k int) {
	if k < shared.MinBucketWidth || k > shared.MaxBucketWidth {
		panic(fmt.Sprintf("cbg: bucket width %d out of range [%d,%d]", k, shared.MinBucketWidth, shared.MaxBucketWidth))
	}
}

func newTable[K comparable, V any](k int, storage Storage[K, V], hasher shared.HashFn[K]) *table[K, V] {
	validateBucketWidth(k)
	t := &table[K, V]{
		k:          k,
		storage:    storage,
		hasher:     hasher,
		maxLoad:    shared.DefaultMaxLoad,
		growFactor: shared.DefaultGrowFactor,
	}
	t.reserve(shared.DefaultSize)
	return t
}

// minCapacity is the smallest bucket count that lets the last k-1 bins
// be pre-reversed without the window straddling position 0.
func (t *table[K, V]) minCapacity() int {
	return 2*t.k - 2
}

func (t *table[K, V]) presetReversedTail(from, to int) {
	start := to - (t.k - 1)
	if start < from {
		start = from
	}
	for p := start; p < to; p++ {
		if p >= 0 {
			t.storage.SetBucketReversed(p)
		}
	}
}

// find probes the primary window and, depending on hint and the
// unlucky_bucket bit, the secondary window.
func (t *table[K, V]) find(key K, hint SearchHint) (int, bool) {
	if t.storage.Cap() == 0 {
		return 0, false
	}
	h := t.hasher(key)
	n := t.storage.Cap()
	a1 := shared.FastReduce(h, n)
	u1 := windowInit(a1, t.storage.BucketReversed(a1), t.k)
	unlucky := t.storage.Unlucky(a1)

	usePrefilter := hint != HintExpectPositive
	if p, ok := t.scanWindow(u1, key, h, usePrefilter); ok {
		return p, true
	}

	if hint == HintExpectPositive || unlucky {
		a2 := shared.FastReduce(shared.Rot64(h, 32), n)
		u2 := windowInit(a2, t.storage.BucketReversed(a2), t.k)
		if p, ok := t.scanWindow(u2, key, h, usePrefilter); ok {
			return p, true
		}
	}
	return 0, false
}

func (t *table[K, V]) scanWindow(u int, key K, hash uint64, usePrefilter bool) (int, bool) {
	for i := 0; i < t.k; i++ {
		p := u + i
		if t.storage.IsEmpty(p) {
			continue
		}
		if usePrefilter && !t.storage.ShortHashMaybeMatch(p, hash) {
			continue
		}
		if t.storage.Key(p) == key {
			return p, true
		}
	}
	return 0, false
}

func (t *table[K, V]) contains(key K) bool {
	_, ok := t.find(key, HintUnknown)
	return ok
}

func (t *table[K, V]) erase(key K) bool {
	p, ok := t.find(key, HintUnknown)
	if !ok {
		return false
	}
	t.storage.ClearOccupancy(p)
	t.size--
	return true
}

func (t *table[K, V]) clear() {
	n := t.storage.Cap()
	for i := 0; i < n; i++ {
		t.storage.ClearOccupancy(i)
		t.storage.ClearBucketReversed(i)
		t.storage.ClearUnlucky(i)
	}
	t.presetReversedTail(0, n)
	t.size = 0
}

func (t *table[K, V]) loadFactor() float32 {
	if t.storage.Cap() == 0 {
		return 0
	}
	return float32(t.size) / float32(t.storage.Cap())
}

func (t *table[K, V]) maxLoadFactor(f float32) error {
	if f <= 0 || f >= 1 {
		return fmt.Errorf("%f: %w", f, shared.ErrOutOfRange)
	}
	t.maxLoad = f
	return nil
}

func (t *table[K, V]) setGrowFactor(f float32) error {
	if f <= 1 {
		return fmt.Errorf("%f: %w", f, shared.ErrOutOfRange)
	}
	t.growFactor = f
	return nil
}

// placeAt writes key/val into an already-empty bin pos belonging to
// the window anchored at anchor, re-reading the bucket's current
// orientation so callers never need to track it across a rearrangement
// that may have just flipped it.
func (t *table[K, V]) placeAt(pos, anchor int, key K, val V, label uint8, hash uint64) {
	reversed := t.storage.BucketReversed(anchor)
	var dist uint8
	if reversed {
		dist = uint8(pos - anchor + (t.k - 1))
	} else {
		dist = uint8(pos - anchor)
	}
	t.storage.SaveElem(pos, key, val)
	t.storage.UpdateBin(pos, dist, reversed, label, hash)
	t.size++
}

func clampLabel(l uint8) uint8 {
	if l > shared.LabelMax {
		return shared.LabelMax
	}
	return l
}

// insertElement is the LSA_max insertion engine, iterated instead of
// recursed so a long eviction chain never grows the stack. It never
// grows the table itself; it reports failure so the caller can rehash
// and retry.
func (t *table[K, V]) insertElement(key K, val V) bool {
	curKey, curVal := key, val
	for {
		h := t.hasher(curKey)
		n := t.storage.Cap()
		a1 := shared.FastReduce(h, n)
		a2 := shared.FastReduce(shared.Rot64(h, 32), n)
		u1 := windowInit(a1, t.storage.BucketReversed(a1), t.k)
		u2 := windowInit(a2, t.storage.BucketReversed(a2), t.k)

		min1, p1 := t.windowMin(u1)
		min2, p2 := t.windowMin(u2)

		// Step 3: primary window has an empty bin.
		if min1 == 0 {
			t.placeAt(p1, a1, curKey, curVal, clampLabel(min2+1), h)
			return true
		}

		// Step 4: rearrange to free a bin in the primary window.
		if p, ok := t.findEmptySlot(a1, u1); ok {
			t.placeAt(p, a1, curKey, curVal, clampLabel(min2+1), h)
			return true
		}

		// Step 5: secondary window has an empty bin.
		if min2 == 0 {
			t.storage.SetUnlucky(a1)
			t.placeAt(p2, a2, curKey, curVal, clampLabel(min1+1), h)
			return true
		}

		// Step 6: rearrange to free a bin in the secondary window.
		if p, ok := t.findEmptySlot(a2, u2); ok {
			t.storage.SetUnlucky(a1)
			t.placeAt(p, a2, curKey, curVal, clampLabel(min1+1), h)
			return true
		}

		// Step 7: both windows saturated, give up.
		if min1 >= shared.LabelMax && min2 >= shared.LabelMax {
			return false
		}

		// Step 8: evict the minimum-label slot and loop on its victim.
		var victimPos, victimAnchor int
		var newLabel uint8
		if min1 <= min2 {
			victimPos, victimAnchor, newLabel = p1, a1, clampLabel(min2+1)
		} else {
			t.storage.SetUnlucky(a1)
			victimPos, victimAnchor, newLabel = p2, a2, clampLabel(min1+1)
		}

		victimKey := t.storage.Key(victimPos)
		victimVal := *t.storage.Value(victimPos)
		// Empty the victim's bin first: placeAt counts the element it
		// writes, and the victim is counted again once it is re-placed.
		t.storage.ClearOccupancy(victimPos)
		t.size--
		t.placeAt(victimPos, victimAnchor, curKey, curVal, newLabel, h)

		curKey, curVal = victimKey, victimVal
	}
}

// insert is the public entry point: it grows the table first if the
// load factor would be exceeded, then inserts, growing and retrying
// as many times as insertElement reports failure.
func (t *table[K, V]) insert(key K, val V) {
	if t.storage.Cap() == 0 || float32(t.size+1) > t.maxLoad*float32(t.storage.Cap()) {
		t.rehash()
	}
	for !t.insertElement(key, val) {
		t.rehash()
	}
}

func (t *table[K, V]) growSize() int {
	n := t.storage.Cap()
	byMin := n + t.minCapacity()
	byFactor := int(float32(n) * t.growFactor)
	return shared.Max(byMin, byFactor)
}

// rehash grows the table and migrates every existing element in
// place.
func (t *table[K, V]) rehash() {
	newCap := t.growSize()
	if newCap < t.minCapacity() {
		newCap = t.minCapacity()
	}
	t.migrateTo(newCap)
}

// reserve ensures the table holds at least n elements without
// exceeding its max load factor.
func (t *table[K, V]) reserve(n int) {
	needed := int(float32(n)/t.maxLoad) + 1
	target := shared.Max(t.minCapacity(), needed)
	if t.storage.Cap() >= target {
		return
	}
	t.migrateTo(target)
}

type displacedElem[K comparable, V any] struct {
	key K
	val V
}

// migrateTo enlarges storage to newCap and walks the old bins from the
// end down to index 0, placing each occupied element directly into its
// new primary window when that window lies entirely above the bin
// being read (so the write cannot clobber data not yet visited), and
// buffering everything else for a second pass through the standard
// insertion engine.
func (t *table[K, V]) migrateTo(newCap int) {
	oldCap := t.storage.Cap()
	if newCap <= oldCap {
		newCap = oldCap + 1
	}
	t.storage.Grow(newCap)

	// Every surviving position's bucket-level bits were meaningful
	// under the old capacity's hash-to-anchor mapping; under newCap the
	// same index can become a completely different anchor, so the old
	// orientation and unlucky bits must not leak forward. Only the last
	// k-1 buckets of the new capacity start reversed.
	for pos := 0; pos < oldCap; pos++ {
		t.storage.ClearBucketReversed(pos)
		t.storage.ClearUnlucky(pos)
	}
	t.presetReversedTail(0, newCap)

	t.size = 0
	var pending []displacedElem[K, V]

	for pos := oldCap - 1; pos >= 0; pos-- {
		if t.storage.IsEmpty(pos) {
			continue
		}
		key := t.storage.Key(pos)
		val := *t.storage.Value(pos)
		h := t.hasher(key)
		newA1 := shared.FastReduce(h, newCap)
		reversed := t.storage.BucketReversed(newA1)
		windowStart := windowInit(newA1, reversed, t.k)

		placed := false
		if windowStart > pos {
			if p := t.firstEmpty(windowStart); p >= 0 {
				t.storage.SaveElem(p, key, val)
				t.storage.UpdateBin(p, t.distanceOf(newA1, p, reversed), reversed, 1, h)
				t.size++
				placed = true
			}
		}
		t.storage.ClearOccupancy(pos)
		if !placed {
			pending = append(pending, displacedElem[K, V]{key, val})
		}
	}

	t.drainPending(pending)
}

// drainPending re-inserts elements that could not be placed directly
// during the migration walk, via the standard insertion engine. If an
// item still fails to place, storage is grown by a small increment and
// the same item is retried.
func (t *table[K, V]) drainPending(pending []displacedElem[K, V]) {
	i := 0
	for i < len(pending) {
		if t.insertElement(pending[i].key, pending[i].val) {
			i++
			continue
		}
		increment := shared.Max(1, t.storage.Cap()/32)
		oldCap := t.storage.Cap()
		newCap := oldCap + increment
		t.storage.Grow(newCap)
		t.presetReversedTail(oldCap, newCap)
	}
}

func (t *table[K, V]) distanceOf(anchor, pos int, reversed bool) uint8 {
	if reversed {
		return uint8(pos - anchor + (t.k - 1))
	}
	return uint8(pos - anchor)
}
