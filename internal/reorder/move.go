package reorder

import (
	"cmp"
	"fmt"
	"slices"
)

// Move returns a copy of items rearranged around the item at index target.
// The insertion point T is target when after is false and target+1 when it
// is true.
//
// Items whose original index is below T (the upper group) keep their
// positions and relative order, whether selected or not. Items at or past T
// (the lower group) follow them, selected ones first and unselected ones
// after, each keeping its original relative order. Remaining ties fall back
// to the original index so the sort key is a strict total order.
//
// Move panics if target is out of range.
func Move[T any](items []T, target int, after bool, selected func(T) bool) []T {
	if target < 0 || target >= len(items) {
		panic(fmt.Sprintf("reorder: target index %d out of range [0,%d)", target, len(items)))
	}

	insertAt := target
	if after {
		insertAt++
	}

	keyed := make([]key, len(items))
	for i, it := range items {
		k := key{index: i}
		if i >= insertAt {
			k.group = 1
			if !selected(it) {
				k.rank = 1
			}
		}
		keyed[i] = k
	}

	slices.SortFunc(keyed, func(a, b key) int {
		if c := cmp.Compare(a.group, b.group); c != 0 {
			return c
		}
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]T, len(items))
	for i, k := range keyed {
		out[i] = items[k.index]
	}
	return out
}

// key orders one item: group 0 is upper and 1 is lower, rank 0 is selected
// and 1 is unselected (always 0 in the upper group), index is the original
// position.
type key struct {
	group int
	rank  int
	index int
}
