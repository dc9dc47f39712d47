package tui

import "github.com/idilsaglam/pagepal/internal/model"

// loadedMsg carries a list read back from the store (initial mount
// baseline, or a reload after an external file change).
type loadedMsg struct {
	shelf model.Shelf
	items []model.Item
	err   error
}

// seedResultMsg is the completion of one seed fetch. gen ties it to the
// mount that started it; stale completions are dropped.
type seedResultMsg struct {
	shelf model.Shelf
	gen   int
	items []model.Item
	err   error
}

// delayDoneMsg fires when the minimum spinner time for a mount elapsed.
type delayDoneMsg struct {
	shelf model.Shelf
	gen   int
}

// savedMsg reports the outcome of an asynchronous durable write.
type savedMsg struct {
	shelf model.Shelf
	err   error
}

// fileChangedMsg reports an on-disk change to a shelf's JSON file.
type fileChangedMsg struct {
	key string
}
