package cbg

// windowInit returns the lowest-addressed bin of the window anchored at
// a with the given orientation: a-(k-1) if reversed, else a.
func windowInit(a int, reversed bool, k int) int {
	if reversed {
		return a - (k - 1)
	}
	return a
}

// owner returns the entry bin of the window that bin pos currently
// belongs to, decoded purely from pos's own metadata (I1): the distance
// to the entry bin plus the item_in_reversed_window bit. Returns -1 for
// an empty bin.
func (t *table[K, V]) owner(pos int) int {
	if t.storage.IsEmpty(pos) {
		return -1
	}
	d := int(t.storage.Distance(pos))
	if t.storage.ItemReversed(pos) {
		return pos + (t.k - 1) - d
	}
	return pos - d
}

// windowMin scans the k bins of the window starting at u and returns
// the smallest label found together with a bin position attaining it,
// preferring the first such bin in scan order.
func (t *table[K, V]) windowMin(u int) (minLabel uint8, pos int) {
	minLabel = labelSentinel
	pos = u
	for i := 0; i < t.k; i++ {
		p := u + i
		l := t.storage.Label(p)
		if l < minLabel {
			minLabel = l
			pos = p
		}
	}
	return
}

// countEmpty counts empty bins in the k-bin window starting at u.
func (t *table[K, V]) countEmpty(u int) int {
	n := 0
	for i := 0; i < t.k; i++ {
		if t.storage.IsEmpty(u + i) {
			n++
		}
	}
	return n
}

// countOwned counts occupied bins in the k-bin window starting at u
// whose owner is anchor.
func (t *table[K, V]) countOwned(u, anchor int) int {
	n := 0
	for i := 0; i < t.k; i++ {
		p := u + i
		if !t.storage.IsEmpty(p) && t.owner(p) == anchor {
			n++
		}
	}
	return n
}

// countOwnedOutside counts occupied bins owned by anchor that fall
// outside the k-bin window starting at u, scanning anchor's own
// (forward) window for candidates.
func (t *table[K, V]) countOwnedOutside(anchor, u int) int {
	n := 0
	for i := 0; i < t.k; i++ {
		p := anchor + i
		if p < u || p >= u+t.k {
			if !t.storage.IsEmpty(p) && t.owner(p) == anchor {
				n++
			}
		}
	}
	return n
}

// labelSentinel is larger than any real label (L_MAX=7) and is used as
// the initial value when scanning for a minimum.
const labelSentinel = 255
