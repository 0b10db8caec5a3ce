// Package ordering keeps the Order field of a sibling group dense.
//
// A sibling group is every column of one board, or every task of one column.
// After any operation in this package the orders of the group are exactly
// 0..n-1 in list position. Functions never touch storage: they renumber the
// items in memory and return the ones whose Order changed so the caller can
// persist only those rows.
package ordering

import (
	"fmt"
	"sort"
)

// Sortable is an item that carries a position within its sibling group.
type Sortable interface {
	GetOrder() int
	SetOrder(int)
}

// Sort orders items by their current Order. Ties keep their input order.
func Sort[T Sortable](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GetOrder() < items[j].GetOrder()
	})
}

// ClampTarget maps a requested position onto [0, n].
// Negative targets become 0; targets at or past n append.
func ClampTarget(target, n int) int {
	if target < 0 {
		return 0
	}
	if target > n {
		return n
	}
	return target
}

// Insert splices item into siblings at target and renumbers the group.
//
// siblings must not contain item. They are sorted by current Order first, so
// callers may pass them in any order. The returned slice is the full group in
// its new order; changed holds the items whose Order differs from before,
// always including item itself.
func Insert[T Sortable](siblings []T, item T, target int) (group []T, changed []T) {
	sorted := make([]T, len(siblings))
	copy(sorted, siblings)
	Sort(sorted)

	pos := ClampTarget(target, len(sorted))

	group = make([]T, 0, len(sorted)+1)
	group = append(group, sorted[:pos]...)
	group = append(group, item)
	group = append(group, sorted[pos:]...)

	changed = renumber(group)
	if !containsItem(changed, item) {
		changed = append(changed, item)
	}
	return group, changed
}

// Compact renumbers the group that remains after an item was removed.
// remaining must not contain the removed item. Items ahead of the removed
// one keep their order and are not reported as changed. It also repairs
// groups left sparse or duplicated.
func Compact[T Sortable](remaining []T) (group []T, changed []T) {
	group = make([]T, len(remaining))
	copy(group, remaining)
	Sort(group)
	return group, renumber(group)
}

// Move relocates item within its own group. group may or may not contain
// item; same identifies it. target is a position in the group as it will be
// after the move.
func Move[T Sortable](group []T, item T, target int, same func(a, b T) bool) (result []T, changed []T) {
	siblings := make([]T, 0, len(group))
	for _, g := range group {
		if !same(g, item) {
			siblings = append(siblings, g)
		}
	}
	return Insert(siblings, item, target)
}

// IsDense reports whether the orders of items are exactly 0..n-1.
func IsDense[T Sortable](items []T) bool {
	return Validate(items) == nil
}

// Validate returns an error describing the first gap or duplicate found.
func Validate[T Sortable](items []T) error {
	seen := make([]bool, len(items))
	for _, it := range items {
		o := it.GetOrder()
		if o < 0 || o >= len(items) {
			return fmt.Errorf("order %d out of range [0,%d)", o, len(items))
		}
		if seen[o] {
			return fmt.Errorf("order %d used more than once", o)
		}
		seen[o] = true
	}
	return nil
}

func renumber[T Sortable](group []T) []T {
	var changed []T
	for i, it := range group {
		if it.GetOrder() != i {
			it.SetOrder(i)
			changed = append(changed, it)
		}
	}
	return changed
}

func containsItem[T Sortable](items []T, item T) bool {
	for _, it := range items {
		if any(it) == any(item) {
			return true
		}
	}
	return false
}
