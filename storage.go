// Package cbg implements the Cuckoo Breeding Ground hash table: an
// open-addressed container that places each element in one of two
// overlapping, anchor-rooted windows of width k (k is 2, 3 or 4 bins),
// using a per-bin LSA_max label to decide, on collision, which element
// should move. Three storage layouts are available (SoA, AoS, AoB),
// trading negative-lookup speed for positive-lookup speed and memory
// overhead; see NewSetSoA/NewSetAoS/NewSetAoB and their Map equivalents.
package cbg

// Bins is the metadata-only view of a table's bin storage: every
// operation that only needs to read or update a bin's codec byte, not
// its key or value, is written against this interface so the
// rearrangement engine and window arithmetic don't need to be
// generic over K and V at all.
//
// Three concrete implementations (soa, aos, aob) back this interface,
// trading memory layout and prefilter support for lookup speed.
type Bins interface {
	// Cap returns the current number of bins.
	Cap() int

	// Grow reallocates the storage to hold newCap bins, preserving the
	// content of bins [0, Cap()) at the same index and leaving the new
	// tail bins empty.
	Grow(newCap int)

	Label(pos int) uint8
	IsEmpty(pos int) bool
	Distance(pos int) uint8
	ItemReversed(pos int) bool
	BucketReversed(pos int) bool
	Unlucky(pos int) bool

	// SetBucketReversed flips the bucket anchored at pos into its
	// reversed window.
	SetBucketReversed(pos int)
	// ClearBucketReversed flips the bucket anchored at pos back to its
	// forward window.
	ClearBucketReversed(pos int)
	// SetUnlucky marks the bucket anchored at pos as having placed an
	// element in its secondary window. Never cleared by Erase.
	SetUnlucky(pos int)
	// ClearUnlucky clears the unlucky_bucket bit. Only Clear and the
	// rehash migration use this: Erase and the insertion engine never
	// clear unlucky_bucket.
	ClearUnlucky(pos int)

	// ClearOccupancy marks pos empty, preserving its bucket-level bits.
	ClearOccupancy(pos int)
	// UpdateBin writes the occupancy fields of an occupied bin: its
	// distance to the bucket's entry bin, whether its element belongs
	// to a reversed window, its LSA_max label, and (layout permitting)
	// the short-hash prefilter derived from hash.
	UpdateBin(pos int, distance uint8, itemReversed bool, label uint8, hash uint64)

	// ShortHashMaybeMatch reports whether the bin at pos could hold an
	// element whose hash is hash. Layouts that store a short-hash
	// prefilter (SoA) answer precisely; layouts that don't (AoS, AoB)
	// always answer true, deferring to a full key comparison.
	ShortHashMaybeMatch(pos int, hash uint64) bool

	// MoveElem copies the key and value from src to dst and clears
	// src's occupancy fields, preserving src's own bucket-level bits.
	// It does not touch dst's codec byte (SoA does copy src's short-hash
	// byte to dst): dst may be an entry bin
	// with its own bucket_is_reversed/unlucky_bucket state that must
	// survive untouched, so the caller always follows MoveElem with an
	// UpdateBin(dst, ...) call to set dst's occupancy fields.
	MoveElem(dst, src int)
}

// Storage is Bins plus direct key/value access, used by the insertion
// and lookup engines which must compare and store K and V.
type Storage[K comparable, V any] interface {
	Bins

	Key(pos int) K
	Value(pos int) *V
	// SaveElem writes key/val into pos without touching metadata; the
	// caller updates the bin's metadata separately via UpdateBin.
	SaveElem(pos int, key K, val V)
}

// SearchHint tells the lookup engine which result is expected, letting
// it skip the short-hash prefilter when it would only add overhead
// (callers expecting a hit don't need a prefilter to avoid one).
type SearchHint uint8

const (
	// HintUnknown applies the short-hash prefilter and probes the
	// secondary window only if the bucket is marked unlucky.
	HintUnknown SearchHint = iota
	// HintExpectPositive skips the prefilter and always probes both
	// windows, since a miss is assumed to be the rare case.
	HintExpectPositive
	// HintExpectNegative behaves like HintUnknown; kept distinct for
	// callers that want to document intent.
	HintExpectNegative
)
