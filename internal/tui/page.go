package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/idilsaglam/pagepal/internal/model"
	"github.com/idilsaglam/pagepal/internal/ui"
)

type pagePhase int

const (
	pageIdle pagePhase = iota
	pageLoading
	pageReady
	pageError
)

// page is the state of one shelf screen. Ready and Error differ only
// in whether an inline message is shown; both allow add/toggle/filter.
type page struct {
	shelf model.Shelf

	items   []model.Item
	phase   pagePhase
	loadErr string

	// Loading finishes when both the fetch completed and the minimum
	// spinner time elapsed. gen guards against completions from a
	// previous mount.
	fetchDone bool
	delayDone bool
	gen       int

	hideDone bool
	list     list.Model
}

func newPage(shelf model.Shelf, d itemDelegate) *page {
	l := list.New(nil, d, 0, 0)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	return &page{shelf: shelf, list: l}
}

// rebuild projects items into the visible list, carrying each item's
// position in the full list so toggles land on the right element.
func (p *page) rebuild() {
	li := make([]list.Item, 0, len(p.items))
	for i, it := range p.items {
		if p.hideDone && it.Done {
			continue
		}
		li = append(li, shelfItem{item: it, idx: i})
	}
	p.list.SetItems(li)
}

// header renders the shelf title with live counts and a progress bar.
func (p *page) header(t ui.Theme, width int) string {
	done, pending := model.Stats(p.items)
	title := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render(p.shelf.Label()),
		t.Success.Render(t.SymOK), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Total"), len(p.items),
	)
	barWidth := 28
	if width > 0 && width < 40 {
		barWidth = width - 12
	}
	return title + "\n" + t.Muted.Render(ui.ProgressBar(done, done+pending, barWidth))
}
