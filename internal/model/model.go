package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Item is the domain model for one tracked book or movie.
// Kept minimal on purpose; it’s easy to evolve.
type Item struct {
	Title  string `json:"title"`
	Rating int    `json:"rating"`
	Done   bool   `json:"done"`
}

// Rating bounds for items added through the form or CLI.
// The seed importer bypasses validation and always assigns SeedRating.
const (
	MinRating  = 1
	MaxRating  = 5
	SeedRating = 4
)

// Shelf names one of the two tracked collections. Both share the Item
// shape and differ only in storage key and label.
type Shelf string

const (
	Books  Shelf = "books"
	Movies Shelf = "movies"
)

// Shelves returns the shelves in display order.
func Shelves() []Shelf { return []Shelf{Books, Movies} }

// Key returns the storage key the shelf's list is persisted under.
func (s Shelf) Key() string {
	switch s {
	case Movies:
		return "pp.movies"
	default:
		return "pp.books"
	}
}

// Label returns the human-readable shelf name.
func (s Shelf) Label() string {
	switch s {
	case Movies:
		return "Movies"
	default:
		return "Books"
	}
}

// ParseShelf resolves a user-supplied shelf name.
func ParseShelf(raw string) (Shelf, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "books", "book":
		return Books, nil
	case "movies", "movie":
		return Movies, nil
	}
	return "", fmt.Errorf("unknown shelf %q (want books or movies)", raw)
}

// ValidationError reports a rejected add. The list is never modified
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NewItem validates the raw form fields and builds a not-done item.
func NewItem(title, rating string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return Item{}, &ValidationError{Field: "rating", Reason: "not a number: " + rating}
	}
	if r < MinRating || r > MaxRating {
		return Item{}, &ValidationError{Field: "rating", Reason: fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)}
	}
	return Item{Title: title, Rating: r}, nil
}

// Add appends one validated item to the end of the list. On validation
// failure the input list is returned unchanged alongside the error.
func Add(items []Item, title, rating string) ([]Item, error) {
	it, err := NewItem(title, rating)
	if err != nil {
		return items, err
	}
	out := make([]Item, 0, len(items)+1)
	out = append(out, items...)
	return append(out, it), nil
}

// ToggleDone flips the done flag of the item at i, leaving every other
// item and the order untouched. Out-of-range indexes are a no-op.
func ToggleDone(items []Item, i int) []Item {
	if i < 0 || i >= len(items) {
		return items
	}
	out := make([]Item, len(items))
	copy(out, items)
	out[i].Done = !out[i].Done
	return out
}

// Filter projects the list for display. hideDone=true keeps only the
// not-done items in their relative order; false returns the list as-is.
// Never persisted.
func Filter(items []Item, hideDone bool) []Item {
	if !hideDone {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Done {
			out = append(out, it)
		}
	}
	return out
}

// Stats counts done and pending items for headers.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
