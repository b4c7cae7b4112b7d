package cbg_test

import (
	"math/rand"
	"testing"

	"github.com/alainesp/cbg"
)

func setupMaps(k int) []*cbg.Map[uint64, uint32] {
	return []*cbg.Map[uint64, uint32]{
		cbg.NewMapSoA[uint64, uint32](k),
		cbg.NewMapAoS[uint64, uint32](k),
		cbg.NewMapAoB[uint64, uint32](k),
	}
}

func TestCrossCheckMapInt(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		for _, m := range setupMaps(k) {
			stdm := make(map[uint64]uint32)
			const nops = 3000
			for i := 0; i < nops; i++ {
				key := uint64(rand.Intn(500)) + 1
				val := rand.Uint32()
				op := rand.Intn(4)

				switch op {
				case 0:
					v1, ok1 := m.Get(key)
					v2, ok2 := stdm[key]
					if ok1 != ok2 || v1 != v2 {
						t.Fatalf("k=%d lookup mismatch for key %d", k, key)
					}
				case 1, 2:
					stdm[key] = val
					m.Put(key, val)

					v, found := m.Get(key)
					if !found || v != val {
						t.Fatalf("k=%d lookup failed after Put for key %d", k, key)
					}
				case 3:
					if len(stdm) == 0 {
						break
					}
					var del uint64
					for kk := range stdm {
						del = kk
						break
					}
					delete(stdm, del)
					if !m.Erase(del) {
						t.Fatalf("k=%d erase reported missing for key %d", k, del)
					}
					if m.Contains(del) {
						t.Fatalf("k=%d key %d still present after erase", k, del)
					}
				}

				if m.Size() != len(stdm) {
					t.Fatalf("k=%d size mismatch: map=%d std=%d", k, m.Size(), len(stdm))
				}
			}

			for key, val := range stdm {
				v, found := m.Get(key)
				if !found || v != val {
					t.Fatalf("k=%d final check failed for key %d", k, key)
				}
			}
		}
	}
}

func TestCrossCheckMapString(t *testing.T) {
	letters := "abcdefghijklmnopqrstuvwxyz"
	randString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = letters[rand.Intn(len(letters))]
		}
		return string(b)
	}

	for _, k := range []int{2, 3, 4} {
		m := map[string]*cbg.Map[string, string]{
			"soa": cbg.NewMapSoA[string, string](k),
			"aos": cbg.NewMapAoS[string, string](k),
			"aob": cbg.NewMapAoB[string, string](k),
		}
		for name, cm := range m {
			stdm := make(map[string]string)
			const nops = 600
			for i := 0; i < nops; i++ {
				key := randString(rand.Intn(12) + 3)
				op := rand.Intn(3)
				switch op {
				case 0, 1:
					stdm[key] = key
					cm.Put(key, key)
				case 2:
					delete(stdm, key)
					cm.Erase(key)
				}
				if cm.Size() != len(stdm) {
					t.Fatalf("k=%d layout=%s size mismatch: map=%d std=%d", k, name, cm.Size(), len(stdm))
				}
			}
			for key, val := range stdm {
				v, found := cm.Get(key)
				if !found || v != val {
					t.Fatalf("k=%d layout=%s final check failed for key %q", k, name, key)
				}
			}
		}
	}
}

func TestMapAt(t *testing.T) {
	m := cbg.NewMapSoA[string, int](3)
	m.Put("a", 1)

	v, err := m.At("a")
	if err != nil || *v != 1 {
		t.Fatalf("At returned %v, %v", v, err)
	}

	if _, err := m.At("missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestMapGetOrInsert(t *testing.T) {
	m := cbg.NewMapSoA[string, int](2)
	p := m.GetOrInsert("a", 7)
	if *p != 7 {
		t.Fatalf("expected 7, got %d", *p)
	}
	*p = 9
	p2 := m.GetOrInsert("a", 0)
	if *p2 != 9 {
		t.Fatalf("expected 9, got %d", *p2)
	}
}

func TestMapClear(t *testing.T) {
	m := cbg.NewMapAoS[int, int](4)
	for i := 0; i < 50; i++ {
		m.Put(i, i*i)
	}
	m.Clear()
	if m.Size() != 0 {
		t.Fatalf("expected size 0 after Clear, got %d", m.Size())
	}
	for i := 0; i < 50; i++ {
		if m.Contains(i) {
			t.Fatalf("key %d survived Clear", i)
		}
	}
	m.Put(1, 1)
	if v, ok := m.Get(1); !ok || v != 1 {
		t.Fatal("map unusable after Clear")
	}
}

func TestMapGrowth(t *testing.T) {
	m := cbg.NewMapSoA[int, int](2)
	const n = 5000
	for i := 0; i < n; i++ {
		m.Put(i, i)
	}
	if m.Size() != n {
		t.Fatalf("expected size %d, got %d", n, m.Size())
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if !ok || v != i {
			t.Fatalf("lost key %d after growth", i)
		}
	}
}

func TestSetBasics(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		sets := []*cbg.Set[uint64]{
			cbg.NewSetSoA[uint64](k),
			cbg.NewSetAoS[uint64](k),
			cbg.NewSetAoB[uint64](k),
		}
		for _, s := range sets {
			stdset := make(map[uint64]struct{})
			const nops = 2000
			for i := 0; i < nops; i++ {
				key := uint64(rand.Intn(400))
				op := rand.Intn(3)
				switch op {
				case 0, 1:
					_, wasIn := stdset[key]
					stdset[key] = struct{}{}
					isNew := s.Insert(key)
					if isNew == wasIn {
						t.Fatalf("k=%d Insert returned wrong state for key %d", k, key)
					}
				case 2:
					delete(stdset, key)
					s.Erase(key)
				}
				if _, want := stdset[key]; s.Contains(key) != want {
					t.Fatalf("k=%d key %d membership wrong right after insert/erase", k, key)
				}
				_ = stdset
			}
			if s.Size() != len(stdset) {
				t.Fatalf("k=%d size mismatch: set=%d std=%d", k, s.Size(), len(stdset))
			}
			for key := range stdset {
				if !s.Contains(key) {
					t.Fatalf("k=%d key %d should be present", k, key)
				}
			}
		}
	}
}

func TestSetInsertDedups(t *testing.T) {
	s := cbg.NewSetAoB[int](3)
	if !s.Insert(1) {
		t.Fatal("first insert should report new")
	}
	if s.Insert(1) {
		t.Fatal("second insert of same key should report not new")
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}
}

func TestMaxLoadFactorValidation(t *testing.T) {
	m := cbg.NewMapSoA[int, int](2)
	if err := m.MaxLoadFactor(0); err == nil {
		t.Fatal("expected error for load factor 0")
	}
	if err := m.MaxLoadFactor(1); err == nil {
		t.Fatal("expected error for load factor 1")
	}
	if err := m.MaxLoadFactor(0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGrowFactorValidation(t *testing.T) {
	m := cbg.NewMapSoA[int, int](2)
	if err := m.GrowFactor(1); err == nil {
		t.Fatal("expected error for grow factor 1")
	}
	if err := m.GrowFactor(1.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReserve(t *testing.T) {
	m := cbg.NewMapSoA[int, int](3)
	m.Reserve(1000)
	if m.Capacity() < 1000 {
		t.Fatalf("expected capacity >= 1000, got %d", m.Capacity())
	}
	for i := 0; i < 800; i++ {
		m.Put(i, i)
	}
	if m.Size() != 800 {
		t.Fatalf("expected size 800, got %d", m.Size())
	}
}
