// Package ordering implements the pure list manipulation behind event type
// reordering: neighbor swaps and permutation checks. It has no I/O; the
// editor and the server both build on it.
package ordering

import "github.com/schedulist/schedulist/internal/models"

// Direction of a move within an ordered collection.
type Direction int

const (
	Up   Direction = -1
	Down Direction = +1
)

// Swap returns a copy of items with the element at index exchanged with its
// neighbor in the given direction. When the neighbor index falls outside the
// collection the input is returned unchanged and ok is false; callers must
// not issue a reorder request in that case.
func Swap(items []models.EventType, index int, dir Direction) ([]models.EventType, bool) {
	if index < 0 || index >= len(items) {
		return items, false
	}
	neighbor := index + int(dir)
	if neighbor < 0 || neighbor >= len(items) {
		return items, false
	}

	out := make([]models.EventType, len(items))
	copy(out, items)
	out[index], out[neighbor] = out[neighbor], out[index]
	return out, true
}

// IDs returns the identifiers of items in sequence order. This is the exact
// payload a reorder request carries.
func IDs(items []models.EventType) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// SamePermutation reports whether a and b contain exactly the same set of
// identifiers, in any order. A reorder that is not a permutation of the
// stored collection would silently drop or invent items and must be rejected.
func SamePermutation(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int64]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}

// Unique reports whether every identifier appears at most once.
func Unique(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
