package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alainesp/cbg/shared"
)

func TestMetaEmptyByDefault(t *testing.T) {
	var m uint8
	assert.True(t, shared.MetaIsEmpty(m))
}

// TestMetaQuintupleRoundTrip exhaustively checks that every combination
// of the five bin-state fields (label, distance, item_in_reversed_window,
// bucket_is_reversed, unlucky_bucket) survives a full encode/decode
// round trip packed into one byte.
func TestMetaQuintupleRoundTrip(t *testing.T) {
	for label := uint8(1); label <= 7; label++ {
		for distance := uint8(0); distance <= 3; distance++ {
			for _, itemReversed := range []bool{false, true} {
				for _, bucketReversed := range []bool{false, true} {
					for _, unlucky := range []bool{false, true} {
						var m uint8
						if bucketReversed {
							m = shared.MetaSetBucketReversed(m)
						}
						if unlucky {
							m = shared.MetaSetUnlucky(m)
						}
						m = shared.MetaUpdate(m, distance, itemReversed, label)

						assert.False(t, shared.MetaIsEmpty(m))
						assert.Equal(t, label, shared.MetaLabel(m))
						assert.Equal(t, distance, shared.MetaDistance(m))
						assert.Equal(t, itemReversed, shared.MetaItemReversed(m))
						assert.Equal(t, bucketReversed, shared.MetaBucketReversed(m))
						assert.Equal(t, unlucky, shared.MetaUnlucky(m))
					}
				}
			}
		}
	}
}

func TestMetaBucketBitsSurviveOccupancyClear(t *testing.T) {
	var m uint8
	m = shared.MetaSetBucketReversed(m)
	m = shared.MetaSetUnlucky(m)
	m = shared.MetaUpdate(m, 1, false, 3)

	m = shared.MetaClearOccupancy(m)

	assert.True(t, shared.MetaIsEmpty(m))
	assert.True(t, shared.MetaBucketReversed(m))
	assert.True(t, shared.MetaUnlucky(m))
}

func TestMetaBucketReversedToggle(t *testing.T) {
	var m uint8
	m = shared.MetaSetBucketReversed(m)
	assert.True(t, shared.MetaBucketReversed(m))
	m = shared.MetaClearBucketReversed(m)
	assert.False(t, shared.MetaBucketReversed(m))
}

func TestMetaUnluckyClear(t *testing.T) {
	var m uint8
	m = shared.MetaSetUnlucky(m)
	m = shared.MetaClearUnlucky(m)
	assert.False(t, shared.MetaUnlucky(m))
}

func TestShortHashIsTopByte(t *testing.T) {
	var h uint64 = 0xAB << 56
	assert.Equal(t, uint8(0xAB), shared.ShortHash(h))
}

func TestMaxMin(t *testing.T) {
	assert.Equal(t, 5, shared.Max(3, 5))
	assert.Equal(t, 3, shared.Min(3, 5))
}
