// Package subdoc holds the id-keyed algorithms shared by every embedded
// sub-collection (experience, education, comments, likes). Items are
// addressed by their own stable id, never by position.
package subdoc

import "github.com/google/uuid"

type Item interface {
	ItemID() uuid.UUID
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf[T Item](items []T, id uuid.UUID) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// Remove deletes the item with the given id, preserving the relative order
// of the remaining items. The second return value reports whether a match
// was found; callers must treat false as not-found and leave the parent
// untouched.
func Remove[T Item](items []T, id uuid.UUID) ([]T, bool) {
	idx := IndexOf(items, id)
	if idx < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out, true
}
