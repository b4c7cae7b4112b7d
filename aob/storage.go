// Package aob implements the array-of-blocks bin storage layout: bins
// are grouped into fixed-size blocks, each a small array of
// {metadata, key, value} entries. This sits between soa and aos in
// memory layout and lookup speed: each entry has the same {meta, key,
// value} shape (and padding) as an aos bin, and blocks group blockSize
// entries together. No short-hash prefilter is carried, the same
// trade-off aos makes.
package aob

import "github.com/alainesp/cbg/shared"

// blockSize is a fixed block width; Go has no alignof for arbitrary
// generic types, and a fixed power-of-two block keeps the index math
// simple without measurably hurting locality for the key/value sizes
// this table is built for.
const blockSize = 8

type entry[K comparable, V any] struct {
	meta uint8
	key  K
	val  V
}

type block[K comparable, V any] struct {
	entries [blockSize]entry[K, V]
}

type Storage[K comparable, V any] struct {
	blocks []block[K, V]
	cap    int
}

func New[K comparable, V any]() *Storage[K, V] {
	return &Storage[K, V]{}
}

func (s *Storage[K, V]) Cap() int { return s.cap }

func (s *Storage[K, V]) Grow(newCap int) {
	newBlocks := (newCap + blockSize - 1) / blockSize
	blocks := make([]block[K, V], newBlocks)
	copy(blocks, s.blocks)
	s.blocks = blocks
	s.cap = newCap
}

func (s *Storage[K, V]) entry(pos int) *entry[K, V] {
	return &s.blocks[pos/blockSize].entries[pos%blockSize]
}

func (s *Storage[K, V]) Label(pos int) uint8       { return shared.MetaLabel(s.entry(pos).meta) }
func (s *Storage[K, V]) IsEmpty(pos int) bool      { return shared.MetaIsEmpty(s.entry(pos).meta) }
func (s *Storage[K, V]) Distance(pos int) uint8    { return shared.MetaDistance(s.entry(pos).meta) }
func (s *Storage[K, V]) ItemReversed(pos int) bool { return shared.MetaItemReversed(s.entry(pos).meta) }
func (s *Storage[K, V]) BucketReversed(pos int) bool {
	return shared.MetaBucketReversed(s.entry(pos).meta)
}
func (s *Storage[K, V]) Unlucky(pos int) bool { return shared.MetaUnlucky(s.entry(pos).meta) }

func (s *Storage[K, V]) SetBucketReversed(pos int) {
	e := s.entry(pos)
	e.meta = shared.MetaSetBucketReversed(e.meta)
}
func (s *Storage[K, V]) ClearBucketReversed(pos int) {
	e := s.entry(pos)
	e.meta = shared.MetaClearBucketReversed(e.meta)
}
func (s *Storage[K, V]) SetUnlucky(pos int) {
	e := s.entry(pos)
	e.meta = shared.MetaSetUnlucky(e.meta)
}
func (s *Storage[K, V]) ClearUnlucky(pos int) {
	e := s.entry(pos)
	e.meta = shared.MetaClearUnlucky(e.meta)
}

func (s *Storage[K, V]) ClearOccupancy(pos int) {
	e := s.entry(pos)
	e.meta = shared.MetaClearOccupancy(e.meta)
	var zeroK K
	var zeroV V
	e.key = zeroK
	e.val = zeroV
}

func (s *Storage[K, V]) UpdateBin(pos int, distance uint8, itemReversed bool, label uint8, hash uint64) {
	e := s.entry(pos)
	e.meta = shared.MetaUpdate(e.meta, distance, itemReversed, label)
}

// ShortHashMaybeMatch always answers true: this layout carries no
// prefilter, so every candidate falls through to a direct key compare.
func (s *Storage[K, V]) ShortHashMaybeMatch(pos int, hash uint64) bool { return true }

func (s *Storage[K, V]) MoveElem(dst, src int) {
	d, sr := s.entry(dst), s.entry(src)
	d.key = sr.key
	d.val = sr.val
	sr.meta = shared.MetaClearOccupancy(sr.meta)
	var zeroK K
	var zeroV V
	sr.key = zeroK
	sr.val = zeroV
}

func (s *Storage[K, V]) Key(pos int) K    { return s.entry(pos).key }
func (s *Storage[K, V]) Value(pos int) *V { return &s.entry(pos).val }

func (s *Storage[K, V]) SaveElem(pos int, key K, val V) {
	e := s.entry(pos)
	e.key = key
	e.val = val
}
