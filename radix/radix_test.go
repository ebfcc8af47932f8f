package radix

import (
	"math/rand"
	"sort"
	"testing"
)

func TestSortUint64s(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	keys := make([]uint64, 20000)
	for i := range keys {
		keys[i] = rng.Uint64()
	}
	expected := make([]uint64, len(keys))
	copy(expected, keys)
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })

	SortUint64s(keys)
	for i := range keys {
		if keys[i] != expected[i] {
			t.Fatalf("expected keys[%d] = %d; got %d", i, expected[i], keys[i])
		}
	}
}

func TestSortNarrowKeys(t *testing.T) {
	// Small keys leave the high-byte passes with nothing to do; the
	// result must still land back in the caller's slice.
	rng := rand.New(rand.NewSource(23))

	keys := make([]uint64, 5000)
	for i := range keys {
		keys[i] = uint64(rng.Intn(256))
	}
	SortUint64s(keys)
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("expected sorted order at index %d; got %d > %d", i, keys[i-1], keys[i])
		}
	}
}

func TestSortByKeyIsStable(t *testing.T) {
	type record struct {
		key uint64
		seq int
	}

	rng := rand.New(rand.NewSource(31))
	records := make([]record, 2000)
	for i := range records {
		records[i] = record{key: uint64(rng.Intn(8)), seq: i}
	}

	Sort(records, func(r record) uint64 { return r.key })

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.key > cur.key {
			t.Fatalf("expected sorted order at index %d; got key %d > %d", i, prev.key, cur.key)
		}
		if prev.key == cur.key && prev.seq > cur.seq {
			t.Fatalf("expected stable order for equal keys at index %d; got seq %d > %d", i, prev.seq, cur.seq)
		}
	}
}

func TestSortTrivialInputs(t *testing.T) {
	SortUint64s(nil)
	SortUint64s([]uint64{})

	single := []uint64{42}
	SortUint64s(single)
	if single[0] != 42 {
		t.Fatalf("expected single element sort to be a no-op; got %d", single[0])
	}
}
