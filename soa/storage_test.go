package soa

import "testing"

func TestGrowPreservesContent(t *testing.T) {
	s := New[int, string]()
	s.Grow(4)
	s.SaveElem(1, 42, "hi")
	s.UpdateBin(1, 0, false, 3, 0xABCD000000000000)

	s.Grow(8)

	if s.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", s.Cap())
	}
	if s.IsEmpty(1) {
		t.Fatal("bin 1 should still be occupied after Grow")
	}
	if s.Key(1) != 42 || *s.Value(1) != "hi" {
		t.Fatal("key/value not preserved across Grow")
	}
	if s.Label(1) != 3 {
		t.Fatalf("label = %d, want 3", s.Label(1))
	}
}

func TestShortHashPrefilter(t *testing.T) {
	s := New[int, int]()
	s.Grow(4)
	s.SaveElem(0, 1, 1)
	s.UpdateBin(0, 0, false, 1, 0xAB00000000000000)

	if !s.ShortHashMaybeMatch(0, 0xAB00000000000000) {
		t.Fatal("expected short hash match")
	}
	if s.ShortHashMaybeMatch(0, 0xCD00000000000000) {
		t.Fatal("expected short hash mismatch to be rejected")
	}
}

func TestMoveElemClearsSource(t *testing.T) {
	s := New[int, int]()
	s.Grow(4)
	s.SetBucketReversed(2)
	s.SaveElem(0, 7, 70)
	s.UpdateBin(0, 0, false, 2, 1)

	s.MoveElem(1, 0)

	if s.Key(1) != 7 || *s.Value(1) != 70 {
		t.Fatal("MoveElem did not copy key/value to dst")
	}
	if !s.IsEmpty(0) {
		t.Fatal("MoveElem should leave src empty")
	}
}

func TestClearOccupancyPreservesBucketBits(t *testing.T) {
	s := New[int, int]()
	s.Grow(4)
	s.SetBucketReversed(0)
	s.SetUnlucky(0)
	s.SaveElem(0, 1, 1)
	s.UpdateBin(0, 0, false, 1, 1)

	s.ClearOccupancy(0)

	if !s.IsEmpty(0) {
		t.Fatal("expected bin empty after ClearOccupancy")
	}
	if !s.BucketReversed(0) || !s.Unlucky(0) {
		t.Fatal("bucket-level bits should survive ClearOccupancy")
	}
}
