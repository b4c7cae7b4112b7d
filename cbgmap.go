package cbg

import (
	"fmt"

	"github.com/alainesp/cbg/shared"
)

// Map is a Cuckoo Breeding Ground key/value map over one of the three
// bin storage layouts, with pointer-returning At/GetOrInsert accessors
// for in-place updates.
type Map[K comparable, V any] struct {
	t *table[K, V]
}

func newMap[K comparable, V any](k int, storage Storage[K, V], hasher shared.HashFn[K]) *Map[K, V] {
	return &Map[K, V]{t: newTable[K, V](k, storage, hasher)}
}

// NewMapSoA builds a k-wide map over the struct-of-arrays layout.
func NewMapSoA[K comparable, V any](k int) *Map[K, V] {
	return NewMapSoAWithHasher[K, V](k, shared.GetHasher[K]())
}

func NewMapSoAWithHasher[K comparable, V any](k int, hasher shared.HashFn[K]) *Map[K, V] {
	return newMap[K, V](k, newSoAStorage[K, V](), hasher)
}

// NewMapAoS builds a k-wide map over the array-of-structs layout.
func NewMapAoS[K comparable, V any](k int) *Map[K, V] {
	return NewMapAoSWithHasher[K, V](k, shared.GetHasher[K]())
}

func NewMapAoSWithHasher[K comparable, V any](k int, hasher shared.HashFn[K]) *Map[K, V] {
	return newMap[K, V](k, newAoSStorage[K, V](), hasher)
}

// NewMapAoB builds a k-wide map over the array-of-blocks layout.
func NewMapAoB[K comparable, V any](k int) *Map[K, V] {
	return NewMapAoBWithHasher[K, V](k, shared.GetHasher[K]())
}

func NewMapAoBWithHasher[K comparable, V any](k int, hasher shared.HashFn[K]) *Map[K, V] {
	return newMap[K, V](k, newAoBStorage[K, V](), hasher)
}

// Put inserts key with value val, overwriting the value in place if
// key is already present rather than creating a second entry.
func (m *Map[K, V]) Put(key K, val V) {
	if p, ok := m.t.find(key, HintExpectPositive); ok {
		*m.t.storage.Value(p) = val
		return
	}
	m.t.insert(key, val)
}

// Get returns the value stored for key and whether it was found.
func (m *Map[K, V]) Get(key K) (V, bool) {
	p, ok := m.t.find(key, HintUnknown)
	if !ok {
		var zero V
		return zero, false
	}
	return *m.t.storage.Value(p), true
}

// At returns a pointer to the value stored for key, or an error
// wrapping ErrKeyNotFound if key is absent. The pointer is only valid
// until the next mutating call, since a rehash may relocate the bin.
func (m *Map[K, V]) At(key K) (*V, error) {
	p, ok := m.t.find(key, HintUnknown)
	if !ok {
		return nil, fmt.Errorf("%v: %w", key, shared.ErrKeyNotFound)
	}
	return m.t.storage.Value(p), nil
}

// GetOrInsert returns a pointer to the value stored for key, inserting
// it with value zero first if key was absent.
func (m *Map[K, V]) GetOrInsert(key K, zero V) *V {
	if p, ok := m.t.find(key, HintUnknown); ok {
		return m.t.storage.Value(p)
	}
	m.t.insert(key, zero)
	p, _ := m.t.find(key, HintExpectPositive)
	return m.t.storage.Value(p)
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.t.contains(key)
}

// Count returns 1 if key is present, 0 otherwise. A Map never stores
// duplicate keys, so this only ever mirrors Contains.
func (m *Map[K, V]) Count(key K) int {
	if m.t.contains(key) {
		return 1
	}
	return 0
}

// Erase removes key, reporting whether it was present.
func (m *Map[K, V]) Erase(key K) bool {
	return m.t.erase(key)
}

// Clear removes every entry, resetting orientation and unlucky bits
// along with occupancy.
func (m *Map[K, V]) Clear() {
	m.t.clear()
}

// Size returns the number of entries currently stored.
func (m *Map[K, V]) Size() int {
	return m.t.size
}

// Capacity returns the current number of bins.
func (m *Map[K, V]) Capacity() int {
	return m.t.storage.Cap()
}

// LoadFactor returns Size()/Capacity().
func (m *Map[K, V]) LoadFactor() float32 {
	return m.t.loadFactor()
}

// MaxLoadFactor sets the load factor above which Put triggers a
// grow-and-rehash, returning an error if f is outside (0, 1).
func (m *Map[K, V]) MaxLoadFactor(f float32) error {
	return m.t.maxLoadFactor(f)
}

// GrowFactor sets the multiplicative factor applied to capacity on
// each rehash, returning an error if f is not greater than 1.
func (m *Map[K, V]) GrowFactor(f float32) error {
	return m.t.setGrowFactor(f)
}

// Reserve grows the map, if needed, so it can hold n entries without
// exceeding its max load factor.
func (m *Map[K, V]) Reserve(n int) {
	m.t.reserve(n)
}
