package cbg

// findEmptySlot runs the three rearrangement strategies in order and
// returns a bin index inside the window anchored at a (init u) that
// has been made empty, without evicting any element.
func (t *table[K, V]) findEmptySlot(a, u int) (int, bool) {
	if p, ok := t.tryReverseThisBucket(a); ok {
		return p, true
	}
	if p, ok := t.tryReverseNeighbor(a, u); ok {
		return p, true
	}
	return t.findEmptyHopscotch(u)
}

// canReverseBucket reports whether the forward window anchored at a
// can be flipped to its reversed window without losing any element:
// the reversed candidate range must have strictly more empty slots
// than the current window has elements owned by a, or the same number
// with a itself among them (the no-op relocation of the shared bin).
func (t *table[K, V]) canReverseBucket(a int) bool {
	if a < t.k || t.storage.BucketReversed(a) {
		return false
	}
	newU := a - (t.k - 1)
	emptiesNew := t.countEmpty(newU)
	ownedOld := t.countOwned(a, a)
	if emptiesNew > ownedOld {
		return true
	}
	return emptiesNew == ownedOld && !t.storage.IsEmpty(a) && t.owner(a) == a
}

// canReverseBucketFor is canReverseBucket's stricter sibling, used when
// the reversal of a is being considered only to free up a slot inside
// some other window targetU. It admits a only if canReverseBucket(a)
// holds, since doReverseBucket moves every element a owns, including
// those inside targetU, and it also requires a's owned elements outside
// targetU to fit the reversed window's empties.
func (t *table[K, V]) canReverseBucketFor(a, targetU int) bool {
	if !t.canReverseBucket(a) {
		return false
	}
	newU := a - (t.k - 1)
	emptiesNew := t.countEmpty(newU)
	outsideOld := t.countOwnedOutside(a, targetU)
	if emptiesNew > outsideOld {
		return true
	}
	return emptiesNew == outsideOld && !t.storage.IsEmpty(a) && t.owner(a) == a
}

// doReverseBucket flips the forward window anchored at a into its
// reversed window, relocating every element a owns into the new
// window and marking bucket_is_reversed(a).
func (t *table[K, V]) doReverseBucket(a int) {
	oldU := a
	newU := a - (t.k - 1)

	owned := make([]int, 0, t.k)
	for i := 0; i < t.k; i++ {
		p := oldU + i
		if !t.storage.IsEmpty(p) && t.owner(p) == a {
			owned = append(owned, p)
		}
	}

	for _, src := range owned {
		if src == a {
			// Already inside the new window; only its orientation bit
			// and (unchanged-value) distance need rewriting.
			t.relocate(src, src, a, true)
			continue
		}
		dst := t.firstEmpty(newU)
		t.relocate(src, dst, a, true)
	}

	t.storage.SetBucketReversed(a)
}

// tryReverseThisBucket is rearrangement strategy A.
func (t *table[K, V]) tryReverseThisBucket(a int) (int, bool) {
	if !t.canReverseBucket(a) {
		return 0, false
	}
	t.doReverseBucket(a)
	newU := a - (t.k - 1)
	p := t.firstEmpty(newU)
	if p < 0 {
		return 0, false
	}
	return p, true
}

// tryReverseNeighbor is rearrangement strategy B: reverse some other
// bucket a' that currently owns a forward-placed slot inside a's
// window, so that slot becomes free for a. The admission test,
// canReverseBucketFor, requires strategy A's canReverseBucket test to
// pass for a' and adds a check on a's elements outside a's window.
func (t *table[K, V]) tryReverseNeighbor(a, u int) (int, bool) {
	if t.size < 2*t.k {
		return 0, false
	}
	for i := 0; i < t.k; i++ {
		p := u + i
		if t.storage.IsEmpty(p) || t.storage.ItemReversed(p) {
			continue
		}
		aPrime := t.owner(p)
		if aPrime == a || !t.canReverseBucketFor(aPrime, u) {
			continue
		}
		t.doReverseBucket(aPrime)
		if t.storage.IsEmpty(p) {
			return p, true
		}
	}
	return 0, false
}

// findEmptyHopscotch is rearrangement strategy C: find the nearest
// empty bin past the window, then walk it back toward the window by
// repeatedly swapping it with a forward-placed element that still has
// enough distance budget to tolerate the shift.
//
// The forward scan's reach is not a fixed constant: it starts at the
// window's own width (k-1) and grows as each forward-placed bin it
// passes is found to have slack of its own — offset i from u plus
// that bin's own remaining distance budget (k-1)-Distance(pos). A bin
// with little slack keeps the bound tight; a run of bins each with
// plenty of slack lets the scan reach further before giving up and
// falling back to eviction, instead of capping the reach at an
// arbitrary hop-neighborhood size.
func (t *table[K, V]) findEmptyHopscotch(u int) (int, bool) {
	cap := t.storage.Cap()
	maxDist := t.k - 1

	free := -1
	for i := 0; i <= maxDist; i++ {
		b := u + i
		if b >= cap {
			break
		}
		if t.storage.IsEmpty(b) {
			free = b
			break
		}
		if t.storage.ItemReversed(b) {
			continue
		}
		d := int(t.storage.Distance(b))
		if slack := i + (t.k - 1) - d; slack > maxDist {
			maxDist = slack
		}
	}
	if free < 0 {
		return 0, false
	}

	for free >= u+t.k {
		moved := false
		for d := t.k - 1; d >= 1; d-- {
			cand := free - d
			if cand < 0 || t.storage.IsEmpty(cand) || t.storage.ItemReversed(cand) {
				continue
			}
			dist := int(t.storage.Distance(cand))
			if (t.k-1)-dist < d {
				continue // shifting by d would exceed the window
			}

			ownerPos := t.owner(cand)
			label := t.storage.Label(cand)
			hash := t.hasher(t.storage.Key(cand))
			t.storage.MoveElem(free, cand)
			t.storage.UpdateBin(free, uint8(free-ownerPos), false, label, hash)

			free = cand
			moved = true
			break
		}
		if !moved {
			return 0, false
		}
	}
	return free, true
}

// relocate moves the element at src to dst (a no-op move when
// dst == src) and rewrites dst's occupancy fields to reflect its new
// window: anchor newAnchor, orientation reversedNew. The label is
// carried unchanged, per the rearrangement engine's invariant.
func (t *table[K, V]) relocate(src, dst, newAnchor int, reversedNew bool) {
	label := t.storage.Label(src)
	key := t.storage.Key(src)
	hash := t.hasher(key)
	if dst != src {
		t.storage.MoveElem(dst, src)
	}

	var dist uint8
	if reversedNew {
		dist = uint8(dst - newAnchor + (t.k - 1))
	} else {
		dist = uint8(dst - newAnchor)
	}
	t.storage.UpdateBin(dst, dist, reversedNew, label, hash)
}

// firstEmpty returns the first empty bin in the k-bin window starting
// at u, or -1 if the window is full.
func (t *table[K, V]) firstEmpty(u int) int {
	for i := 0; i < t.k; i++ {
		p := u + i
		if t.storage.IsEmpty(p) {
			return p
		}
	}
	return -1
}
