package internal

import (
	"cmp"
	"iter"
	"slices"
)

// Concat2 concatenates multiple key/value iterators into a single sequence.
// A key is yielded once; the first sequence to provide it wins.
func Concat2[K comparable, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		seen := map[K]bool{}
		for _, seq := range seqs {
			for key, val := range seq {
				if seen[key] {
					continue
				}
				seen[key] = true
				if !yield(key, val) {
					return
				}
			}
		}
	}
}

// Sorted yields the pairs of a key/value iterator in key order.
func Sorted[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		type pair struct {
			key K
			val V
		}
		var pairs []pair
		for key, val := range seq {
			pairs = append(pairs, pair{key, val})
		}
		slices.SortStableFunc(pairs, func(a, b pair) int {
			return cmp.Compare(a.key, b.key)
		})
		for _, p := range pairs {
			if !yield(p.key, p.val) {
				return
			}
		}
	}
}
