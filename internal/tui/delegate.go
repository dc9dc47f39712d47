package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pagepal/internal/model"
	"github.com/idilsaglam/pagepal/internal/ui"
)

// shelfItem adapts one Item to bubbles/list.Item. idx is the item's
// position in the full (unfiltered) list, so toggling works while the
// hide-done projection is active.
type shelfItem struct {
	item model.Item
	idx  int
}

func (i shelfItem) Title() string       { return i.item.Title }
func (i shelfItem) Description() string { return "" }
func (i shelfItem) FilterValue() string { return i.item.Title }

// itemDelegate renders one item per line: checkbox, title, stars. It
// reads the theme through the app so a runtime theme cycle takes
// effect without rebuilding lists.
type itemDelegate struct {
	app *App
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(shelfItem)
	if !ok {
		return
	}
	t := d.app.theme

	title := ui.Truncate(it.item.Title, 60)
	if it.item.Done {
		title = t.Done.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", t.Checkbox(it.item.Done), title, t.Pending.Render(t.Stars(it.item.Rating)))
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}
