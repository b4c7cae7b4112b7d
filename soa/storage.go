// Package soa implements the struct-of-arrays bin storage layout: keys,
// values and metadata each live in their own slice, with metadata
// carrying a short-hash prefilter byte alongside the codec byte. This
// trades extra memory per bin for fast negative lookups, since most
// misses are rejected on the short-hash byte without ever touching the
// key slice.
package soa

import "github.com/alainesp/cbg/shared"

type Storage[K comparable, V any] struct {
	keys      []K
	values    []V
	meta      []uint8
	shortHash []uint8
}

// New builds an empty SoA storage with no bins; the owning table grows
// it to an initial capacity via Grow on construction.
func New[K comparable, V any]() *Storage[K, V] {
	return &Storage[K, V]{}
}

func (s *Storage[K, V]) Cap() int { return len(s.meta) }

func (s *Storage[K, V]) Grow(newCap int) {
	keys := make([]K, newCap)
	values := make([]V, newCap)
	meta := make([]uint8, newCap)
	shortHash := make([]uint8, newCap)
	copy(keys, s.keys)
	copy(values, s.values)
	copy(meta, s.meta)
	copy(shortHash, s.shortHash)
	s.keys, s.values, s.meta, s.shortHash = keys, values, meta, shortHash
}

func (s *Storage[K, V]) Label(pos int) uint8        { return shared.MetaLabel(s.meta[pos]) }
func (s *Storage[K, V]) IsEmpty(pos int) bool       { return shared.MetaIsEmpty(s.meta[pos]) }
func (s *Storage[K, V]) Distance(pos int) uint8     { return shared.MetaDistance(s.meta[pos]) }
func (s *Storage[K, V]) ItemReversed(pos int) bool  { return shared.MetaItemReversed(s.meta[pos]) }
func (s *Storage[K, V]) BucketReversed(pos int) bool {
	return shared.MetaBucketReversed(s.meta[pos])
}
func (s *Storage[K, V]) Unlucky(pos int) bool { return shared.MetaUnlucky(s.meta[pos]) }

func (s *Storage[K, V]) SetBucketReversed(pos int) {
	s.meta[pos] = shared.MetaSetBucketReversed(s.meta[pos])
}
func (s *Storage[K, V]) ClearBucketReversed(pos int) {
	s.meta[pos] = shared.MetaClearBucketReversed(s.meta[pos])
}
func (s *Storage[K, V]) SetUnlucky(pos int) {
	s.meta[pos] = shared.MetaSetUnlucky(s.meta[pos])
}
func (s *Storage[K, V]) ClearUnlucky(pos int) {
	s.meta[pos] = shared.MetaClearUnlucky(s.meta[pos])
}

func (s *Storage[K, V]) ClearOccupancy(pos int) {
	s.meta[pos] = shared.MetaClearOccupancy(s.meta[pos])
	var zeroK K
	var zeroV V
	s.keys[pos] = zeroK
	s.values[pos] = zeroV
}

func (s *Storage[K, V]) UpdateBin(pos int, distance uint8, itemReversed bool, label uint8, hash uint64) {
	s.meta[pos] = shared.MetaUpdate(s.meta[pos], distance, itemReversed, label)
	s.shortHash[pos] = shared.ShortHash(hash)
}

func (s *Storage[K, V]) ShortHashMaybeMatch(pos int, hash uint64) bool {
	return s.shortHash[pos] == shared.ShortHash(hash)
}

func (s *Storage[K, V]) MoveElem(dst, src int) {
	s.keys[dst] = s.keys[src]
	s.values[dst] = s.values[src]
	s.shortHash[dst] = s.shortHash[src]
	s.meta[src] = shared.MetaClearOccupancy(s.meta[src])
	var zeroK K
	var zeroV V
	s.keys[src] = zeroK
	s.values[src] = zeroV
}

func (s *Storage[K, V]) Key(pos int) K    { return s.keys[pos] }
func (s *Storage[K, V]) Value(pos int) *V { return &s.values[pos] }

func (s *Storage[K, V]) SaveElem(pos int, key K, val V) {
	s.keys[pos] = key
	s.values[pos] = val
}
