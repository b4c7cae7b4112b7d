package cbg

import "github.com/alainesp/cbg/shared"

// Set is a Cuckoo Breeding Ground set: it stores keys only, deduping
// on Insert, over one of the three bin storage layouts.
type Set[K comparable] struct {
	t *table[K, struct{}]
}

func newSet[K comparable](k int, storage Storage[K, struct{}], hasher shared.HashFn[K]) *Set[K] {
	return &Set[K]{t: newTable[K, struct{}](k, storage, hasher)}
}

// NewSetSoA builds a k-wide set over the struct-of-arrays layout,
// which carries a short-hash prefilter and is fastest on negative
// lookups (membership queries on keys known to be absent).
func NewSetSoA[K comparable](k int) *Set[K] {
	return NewSetSoAWithHasher[K](k, shared.GetHasher[K]())
}

func NewSetSoAWithHasher[K comparable](k int, hasher shared.HashFn[K]) *Set[K] {
	return newSet[K](k, newSoAStorage[K, struct{}](), hasher)
}

// NewSetAoS builds a k-wide set over the array-of-structs layout,
// which is fastest on positive lookups at the cost of negative ones.
func NewSetAoS[K comparable](k int) *Set[K] {
	return NewSetAoSWithHasher[K](k, shared.GetHasher[K]())
}

func NewSetAoSWithHasher[K comparable](k int, hasher shared.HashFn[K]) *Set[K] {
	return newSet[K](k, newAoSStorage[K, struct{}](), hasher)
}

// NewSetAoB builds a k-wide set over the array-of-blocks layout, a
// middle ground between SoA and AoS memory layout and lookup speed.
func NewSetAoB[K comparable](k int) *Set[K] {
	return NewSetAoBWithHasher[K](k, shared.GetHasher[K]())
}

func NewSetAoBWithHasher[K comparable](k int, hasher shared.HashFn[K]) *Set[K] {
	return newSet[K](k, newAoBStorage[K, struct{}](), hasher)
}

// Insert adds key if not already present, reporting whether the set
// grew. Re-inserting an existing key is a no-op.
func (s *Set[K]) Insert(key K) bool {
	if s.t.contains(key) {
		return false
	}
	s.t.insert(key, struct{}{})
	return true
}

// Contains reports whether key is a member of the set.
func (s *Set[K]) Contains(key K) bool {
	return s.t.contains(key)
}

// Count returns 1 if key is a member of the set, 0 otherwise. Since a
// Set never stores duplicates, this only ever mirrors Contains.
func (s *Set[K]) Count(key K) int {
	if s.t.contains(key) {
		return 1
	}
	return 0
}

// Erase removes key, reporting whether it was present.
func (s *Set[K]) Erase(key K) bool {
	return s.t.erase(key)
}

// Clear removes every element, resetting orientation and unlucky
// bits along with occupancy.
func (s *Set[K]) Clear() {
	s.t.clear()
}

// Size returns the number of elements currently stored.
func (s *Set[K]) Size() int {
	return s.t.size
}

// Capacity returns the current number of bins.
func (s *Set[K]) Capacity() int {
	return s.t.storage.Cap()
}

// LoadFactor returns Size()/Capacity().
func (s *Set[K]) LoadFactor() float32 {
	return s.t.loadFactor()
}

// MaxLoadFactor sets the load factor above which Insert triggers a
// grow-and-rehash, returning an error if f is outside (0, 1).
func (s *Set[K]) MaxLoadFactor(f float32) error {
	return s.t.maxLoadFactor(f)
}

// GrowFactor sets the multiplicative factor applied to capacity on
// each rehash, returning an error if f is not greater than 1.
func (s *Set[K]) GrowFactor(f float32) error {
	return s.t.setGrowFactor(f)
}

// Reserve grows the set, if needed, so it can hold n elements without
// exceeding its max load factor.
func (s *Set[K]) Reserve(n int) {
	s.t.reserve(n)
}
