package model

import (
	"errors"
	"testing"
)

func TestAddAppendsOneItem(t *testing.T) {
	prior := []Item{
		{Title: "Solaris", Rating: 5, Done: true},
		{Title: "Alien", Rating: 3},
	}

	got, err := Add(prior, "Dune", "4")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i, want := range prior {
		if got[i] != want {
			t.Errorf("prior item %d changed: got %+v, want %+v", i, got[i], want)
		}
	}
	last := got[2]
	if last.Title != "Dune" || last.Rating != 4 || last.Done {
		t.Errorf("appended item wrong: %+v", last)
	}
}

func TestAddTrimsTitle(t *testing.T) {
	got, err := Add(nil, "  Dune  ", "4")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got[0].Title != "Dune" {
		t.Errorf("title not trimmed: %q", got[0].Title)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	prior := []Item{{Title: "Solaris", Rating: 5}}

	cases := []struct {
		name   string
		title  string
		rating string
	}{
		{"empty title", "", "3"},
		{"whitespace title", "   ", "3"},
		{"rating zero", "Dune", "0"},
		{"rating six", "Dune", "6"},
		{"rating negative", "Dune", "-1"},
		{"rating not a number", "Dune", "four"},
		{"rating empty", "Dune", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Add(prior, tc.title, tc.rating)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(got) != len(prior) || got[0] != prior[0] {
				t.Errorf("list changed on failed add: %+v", got)
			}
		})
	}
}

func TestToggleDoneFlipsOnlyTarget(t *testing.T) {
	items := []Item{
		{Title: "a", Rating: 1},
		{Title: "b", Rating: 2, Done: true},
		{Title: "c", Rating: 3},
	}

	got := ToggleDone(items, 0)
	if !got[0].Done {
		t.Errorf("item 0 not flipped")
	}
	if got[1] != items[1] || got[2] != items[2] {
		t.Errorf("other items changed: %+v", got)
	}

	// Applying the toggle twice restores the original.
	back := ToggleDone(got, 0)
	for i := range items {
		if back[i] != items[i] {
			t.Errorf("double toggle diverged at %d: got %+v, want %+v", i, back[i], items[i])
		}
	}
}

func TestToggleDoneOutOfRange(t *testing.T) {
	items := []Item{{Title: "a", Rating: 1}}
	if got := ToggleDone(items, -1); len(got) != 1 || got[0] != items[0] {
		t.Errorf("negative index changed list")
	}
	if got := ToggleDone(items, 1); len(got) != 1 || got[0] != items[0] {
		t.Errorf("past-end index changed list")
	}
}

func TestFilterProjection(t *testing.T) {
	items := []Item{
		{Title: "a", Rating: 1, Done: true},
		{Title: "b", Rating: 2},
		{Title: "c", Rating: 3, Done: true},
		{Title: "d", Rating: 4},
	}

	visible := Filter(items, true)
	if len(visible) != 2 || visible[0].Title != "b" || visible[1].Title != "d" {
		t.Errorf("hideDone projection wrong: %+v", visible)
	}

	all := Filter(items, false)
	if len(all) != len(items) {
		t.Fatalf("hideDone=false changed length")
	}
	for i := range items {
		if all[i] != items[i] {
			t.Errorf("hideDone=false changed item %d", i)
		}
	}
}

// End-to-end over the pure operations: add, toggle, filter.
func TestAddToggleFilterScenario(t *testing.T) {
	items, err := Add(nil, "Dune", "4")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(items) != 1 || items[0] != (Item{Title: "Dune", Rating: 4, Done: false}) {
		t.Fatalf("unexpected list after add: %+v", items)
	}

	items = ToggleDone(items, 0)
	if !items[0].Done {
		t.Fatalf("item not done after toggle: %+v", items[0])
	}

	if visible := Filter(items, true); len(visible) != 0 {
		t.Fatalf("expected empty projection, got %+v", visible)
	}
}

func TestShelfKeysAndLabels(t *testing.T) {
	if Books.Key() != "pp.books" || Movies.Key() != "pp.movies" {
		t.Errorf("wrong storage keys: %q %q", Books.Key(), Movies.Key())
	}
	if Books.Label() != "Books" || Movies.Label() != "Movies" {
		t.Errorf("wrong labels")
	}
}

func TestParseShelf(t *testing.T) {
	for raw, want := range map[string]Shelf{
		"books": Books, "Book": Books, " MOVIES ": Movies, "movie": Movies,
	} {
		got, err := ParseShelf(raw)
		if err != nil || got != want {
			t.Errorf("ParseShelf(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseShelf("records"); err == nil {
		t.Errorf("expected error for unknown shelf")
	}
}
