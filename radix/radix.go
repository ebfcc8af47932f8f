// Package radix implements a least-significant-digit radix sort for
// element types with an unsigned integer sort key. Keys are consumed
// one byte at a time, so a full sort costs at most eight counting
// passes over the input regardless of its size.
package radix

const (
	groupBits   = 8
	groupPasses = 64 / groupBits
	counterSize = 1 << groupBits
)

// Sort sorts items in ascending key order. The key function is invoked
// once per element per pass and must return the same key for an element
// throughout the sort. Passes where every pending key carries the same
// byte are skipped, so narrow keys (element counts, object ids) cost
// far fewer than the worst-case eight passes. The sort is stable.
func Sort[T any](items []T, key func(T) uint64) {
	if len(items) < 2 {
		return
	}

	pool := make([]T, len(items))
	indices := make([]uint8, len(items))

	in := items
	out := pool

	for pass := 0; pass < groupPasses; pass++ {
		shift := uint(pass * groupBits)

		var counter [counterSize]int
		for i, item := range in {
			index := uint8(key(item) >> shift)
			indices[i] = index
			counter[index]++
		}

		// Nothing to reorder when the whole pass lands in one bucket.
		if counter[indices[0]] == len(in) {
			continue
		}

		var sum [counterSize]int
		for index := 1; index < counterSize; index++ {
			sum[index] = sum[index-1] + counter[index-1]
		}

		for i, item := range in {
			out[sum[indices[i]]] = item
			sum[indices[i]]++
		}

		in, out = out, in
	}

	if &in[0] != &items[0] {
		copy(items, pool)
	}
}

// SortUint64s sorts keys in ascending order.
func SortUint64s(keys []uint64) {
	Sort(keys, func(k uint64) uint64 { return k })
}
