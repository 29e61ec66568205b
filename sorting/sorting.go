// Package sorting holds the two algorithms the layout benchmarks are compared
// against: an O(n²) bubble sort and an O(n log n) merge sort.
//
// Both sort in place, are stable, and leave already sorted input untouched.
package sorting

import (
	"cmp"
	"math/rand/v2"
)

// BubbleSort sorts s in place. It stops after the first pass that swaps
// nothing, so sorted input costs a single pass.
func BubbleSort[T cmp.Ordered](s []T) {
	BubbleSortFunc(s, cmp.Compare[T])
}

// BubbleSortFunc is BubbleSort ordered by compare, in the convention of
// slices.SortStableFunc.
func BubbleSortFunc[T any](s []T, compare func(a, b T) int) {
	for n := len(s); n > 1; n-- {
		swapped := false
		for i := 1; i < n; i++ {
			if compare(s[i], s[i-1]) < 0 {
				s[i], s[i-1] = s[i-1], s[i]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// MergeSort sorts s in place, top down. It allocates one scratch buffer of
// len(s) per call and reuses it at every level.
func MergeSort[T cmp.Ordered](s []T) {
	MergeSortFunc(s, cmp.Compare[T])
}

// MergeSortFunc is MergeSort ordered by compare.
func MergeSortFunc[T any](s []T, compare func(a, b T) int) {
	if len(s) < 2 {
		return
	}
	scratch := make([]T, len(s))
	mergeSort(s, scratch, compare)
}

func mergeSort[T any](s, scratch []T, compare func(a, b T) int) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], scratch[:mid], compare)
	mergeSort(s[mid:], scratch[mid:], compare)
	// Halves already in order.
	if compare(s[mid-1], s[mid]) <= 0 {
		return
	}
	merge(s, mid, scratch, compare)
}

func merge[T any](s []T, mid int, scratch []T, compare func(a, b T) int) {
	copy(scratch, s)
	left, right := scratch[:mid], scratch[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if compare(right[j], left[i]) < 0 {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}

// Shuffle permutes s uniformly using rng.
func Shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// Sequence returns 0, 1, ..., n-1.
func Sequence(n int) []uint32 {
	s := make([]uint32, n)
	for i := range s {
		s[i] = uint32(i)
	}
	return s
}

// Func is the signature shared by BubbleSort and MergeSort.
type Func func([]uint32)

// Algorithms names the sorts the benchmarks sweep over.
var Algorithms = map[string]Func{
	"bubble": BubbleSort[uint32],
	"merge":  MergeSort[uint32],
}
