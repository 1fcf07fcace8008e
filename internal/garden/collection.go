package garden

import (
	"encoding/json"
	"slices"
)

// Collection holds records related to a plant that may or may not have
// been loaded. The zero value is "not loaded".
type Collection[T any] struct {
	items  []T
	loaded bool
}

// Loaded returns a loaded collection holding a copy of items.
// Loaded() with no items is a loaded, empty collection.
func Loaded[T any](items ...T) Collection[T] {
	return Collection[T]{items: slices.Clone(items), loaded: true}
}

// IsLoaded reports whether the records were loaded at all.
func (c Collection[T]) IsLoaded() bool {
	return c.loaded
}

// IsEmpty reports whether there is no data, either because the records
// were not loaded or because there are none.
func (c Collection[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of loaded records.
func (c Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the records. Nil when not loaded.
func (c Collection[T]) Items() []T {
	if !c.loaded {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// MarshalJSON encodes an unloaded collection as null and a loaded one as
// an array (possibly empty).
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	if !c.loaded {
		return []byte("null"), nil
	}
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Collection[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = Loaded(items...)
	return nil
}
