package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/pagepal/internal/config"
	"github.com/idilsaglam/pagepal/internal/model"
	"github.com/idilsaglam/pagepal/internal/store"
)

type stubFetcher struct {
	items map[model.Shelf][]model.Item
	err   error
}

func (f stubFetcher) Fetch(_ context.Context, shelf model.Shelf) ([]model.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[shelf], nil
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, model.Shelf) ([]model.Item, error) {
	return nil, context.DeadlineExceeded
}

func newTestApp(t *testing.T, fetcher Fetcher) (*App, store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Theme = "classic"
	cfg.Seed.MinLoading = "1ms"
	st := store.NewJSONStore(t.TempDir(), nil)
	return New(cfg, st, fetcher, nil, zap.NewNop()), st
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// finishMount walks one shelf through a successful mount.
func finishMount(t *testing.T, a *App, shelf model.Shelf, seeded []model.Item) {
	t.Helper()
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	p := a.pageFor(shelf)
	if p.phase != pageLoading {
		t.Fatalf("shelf %s not loading, phase %d", shelf, p.phase)
	}
	_, cmd := a.Update(seedResultMsg{shelf: shelf, gen: p.gen, items: seeded})
	if cmd != nil {
		cmd() // run the scheduled durable write
	}
	a.Update(delayDoneMsg{shelf: shelf, gen: p.gen})
}

func TestMountSeedSuccessOverwritesStore(t *testing.T) {
	seeded := []model.Item{
		{Title: "Dune", Rating: 4},
		{Title: "Solaris", Rating: 4},
	}
	a, st := newTestApp(t, stubFetcher{items: map[model.Shelf][]model.Item{model.Books: seeded}})

	// Something the seed import is expected to discard.
	if err := st.Save(context.Background(), model.Books.Key(), []model.Item{{Title: "old", Rating: 1}}); err != nil {
		t.Fatal(err)
	}

	a.Init()
	finishMount(t, a, model.Books, seeded)

	p := a.pageFor(model.Books)
	if p.phase != pageReady {
		t.Fatalf("expected ready phase, got %d", p.phase)
	}
	if len(p.items) != 2 || p.items[0].Title != "Dune" {
		t.Errorf("in-memory list not overwritten: %+v", p.items)
	}

	stored, err := st.Load(context.Background(), model.Books.Key())
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0].Title != "Dune" {
		t.Errorf("stored list not overwritten: %+v", stored)
	}
}

func TestMountNotReadyBeforeDelayElapses(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()

	p := a.pageFor(model.Books)
	a.Update(seedResultMsg{shelf: model.Books, gen: p.gen, items: nil})
	if p.phase != pageLoading {
		t.Errorf("shelf became ready before the minimum spinner time elapsed")
	}
	a.Update(delayDoneMsg{shelf: model.Books, gen: p.gen})
	if p.phase != pageReady {
		t.Errorf("shelf not ready after fetch and delay, phase %d", p.phase)
	}
}

func TestSeedFailureKeepsPreviousList(t *testing.T) {
	a, _ := newTestApp(t, failingFetcher{})
	a.Init()

	prior := []model.Item{{Title: "kept", Rating: 3}}
	a.Update(loadedMsg{shelf: model.Books, items: prior})

	p := a.pageFor(model.Books)
	a.Update(seedResultMsg{shelf: model.Books, gen: p.gen, err: context.DeadlineExceeded})
	a.Update(delayDoneMsg{shelf: model.Books, gen: p.gen})

	if p.phase != pageError {
		t.Fatalf("expected error phase, got %d", p.phase)
	}
	if len(p.items) != 1 || p.items[0].Title != "kept" {
		t.Errorf("previous list not preserved on seed failure: %+v", p.items)
	}
	if p.loadErr == "" {
		t.Errorf("expected inline error message")
	}
}

func TestSeedFailureBeforeBaselineLoadKeepsPreviousList(t *testing.T) {
	a, _ := newTestApp(t, failingFetcher{})
	a.Init()

	// An instant connection refusal can beat the disk read, so the
	// failure arrives first and the baseline second.
	p := a.pageFor(model.Books)
	a.Update(seedResultMsg{shelf: model.Books, gen: p.gen, err: context.DeadlineExceeded})

	prior := []model.Item{{Title: "kept", Rating: 3}}
	a.Update(loadedMsg{shelf: model.Books, items: prior})
	a.Update(delayDoneMsg{shelf: model.Books, gen: p.gen})

	if p.phase != pageError {
		t.Fatalf("expected error phase, got %d", p.phase)
	}
	if len(p.items) != 1 || p.items[0].Title != "kept" {
		t.Errorf("previous list lost on fast seed failure: %+v", p.items)
	}
}

func TestStaleSeedResultIsDropped(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()

	p := a.pageFor(model.Books)
	a.Update(seedResultMsg{shelf: model.Books, gen: p.gen - 1, items: []model.Item{{Title: "stale", Rating: 1}}})

	if p.fetchDone {
		t.Errorf("stale completion marked the fetch done")
	}
	if len(p.items) != 0 {
		t.Errorf("stale completion replaced the list: %+v", p.items)
	}
}

func TestSpaceTogglesSelectedItem(t *testing.T) {
	seeded := []model.Item{{Title: "Dune", Rating: 4}}
	a, st := newTestApp(t, stubFetcher{items: map[model.Shelf][]model.Item{model.Books: seeded}})
	a.Init()
	finishMount(t, a, model.Books, seeded)

	_, cmd := a.Update(keyMsg(" "))
	if cmd != nil {
		cmd()
	}

	p := a.pageFor(model.Books)
	if !p.items[0].Done {
		t.Errorf("item not toggled: %+v", p.items[0])
	}
	stored, _ := st.Load(context.Background(), model.Books.Key())
	if len(stored) != 1 || !stored[0].Done {
		t.Errorf("toggle not persisted: %+v", stored)
	}
}

func TestHideDoneFiltersView(t *testing.T) {
	seeded := []model.Item{
		{Title: "done", Rating: 4, Done: true},
		{Title: "pending", Rating: 4},
	}
	a, _ := newTestApp(t, stubFetcher{items: map[model.Shelf][]model.Item{model.Books: seeded}})
	a.Init()
	finishMount(t, a, model.Books, seeded)

	p := a.pageFor(model.Books)
	if len(p.list.Items()) != 2 {
		t.Fatalf("expected 2 visible items, got %d", len(p.list.Items()))
	}

	a.Update(keyMsg("h"))
	if len(p.list.Items()) != 1 {
		t.Fatalf("hide-done left %d items visible", len(p.list.Items()))
	}
	it := p.list.Items()[0].(shelfItem)
	if it.item.Title != "pending" || it.idx != 1 {
		t.Errorf("wrong visible item: %+v", it)
	}

	// Toggling through the projection must hit the original index.
	_, cmd := a.Update(keyMsg(" "))
	if cmd != nil {
		cmd()
	}
	if !p.items[1].Done || len(p.items) != 2 {
		t.Errorf("toggle through projection hit wrong item: %+v", p.items)
	}

	a.Update(keyMsg("h"))
	if len(p.list.Items()) != 2 {
		t.Errorf("show-done did not restore the full view")
	}
}

func TestAddFormFlow(t *testing.T) {
	a, st := newTestApp(t, stubFetcher{})
	a.Init()
	finishMount(t, a, model.Books, nil)

	a.Update(keyMsg("a"))
	if a.stage != stageTitle {
		t.Fatalf("add form not open")
	}

	a.Update(keyMsg("Dune"))
	a.Update(keyMsg("enter"))
	if a.stage != stageRating {
		t.Fatalf("form did not advance to rating, err %q", a.formErr)
	}

	// Invalid rating first: list must stay unchanged.
	a.Update(keyMsg("9"))
	a.Update(keyMsg("enter"))
	if a.formErr == "" {
		t.Fatalf("expected validation error for rating 9")
	}
	p := a.pageFor(model.Books)
	if len(p.items) != 0 {
		t.Fatalf("list changed on failed add: %+v", p.items)
	}

	// Correct the rating.
	a.ti.SetValue("")
	a.Update(keyMsg("4"))
	_, cmd := a.Update(keyMsg("enter"))
	if cmd != nil {
		cmd()
	}

	if a.stage != stageNone {
		t.Errorf("form not closed after add")
	}
	if len(p.items) != 1 || p.items[0] != (model.Item{Title: "Dune", Rating: 4, Done: false}) {
		t.Errorf("unexpected list after add: %+v", p.items)
	}
	stored, _ := st.Load(context.Background(), model.Books.Key())
	if len(stored) != 1 {
		t.Errorf("add not persisted")
	}
}

func TestEmptyTitleRejected(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()
	finishMount(t, a, model.Books, nil)

	a.Update(keyMsg("a"))
	a.Update(keyMsg("   "))
	a.Update(keyMsg("enter"))
	if a.stage != stageTitle || a.formErr == "" {
		t.Errorf("whitespace title accepted")
	}
}

func TestSwitchShelfShowsOneTimeNotice(t *testing.T) {
	seeded := []model.Item{
		{Title: "a", Rating: 4, Done: true},
		{Title: "b", Rating: 4, Done: true},
		{Title: "c", Rating: 4},
	}
	a, _ := newTestApp(t, stubFetcher{items: map[model.Shelf][]model.Item{model.Books: seeded}})
	a.Init()
	finishMount(t, a, model.Books, seeded)

	a.Update(keyMsg("tab"))
	if a.active != 1 {
		t.Fatalf("did not switch to movies")
	}
	if a.notice != "You have read 2 books this year!" {
		t.Errorf("wrong notice: %q", a.notice)
	}
	if a.pageFor(model.Movies).phase != pageLoading {
		t.Errorf("movies shelf did not mount on first visit")
	}

	// Second round trip: the notice is one-time.
	a.Update(keyMsg("tab"))
	a.Update(keyMsg("tab"))
	if a.notice != "" {
		t.Errorf("notice shown twice: %q", a.notice)
	}
}

func TestThemeCycleKey(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()

	if a.theme.Name != "classic" {
		t.Fatalf("unexpected initial theme %q", a.theme.Name)
	}
	a.Update(keyMsg("t"))
	if a.theme.Name != "neon" {
		t.Errorf("theme did not cycle, got %q", a.theme.Name)
	}
}

func TestSaveFailureFlashClearsOnNextKey(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()
	finishMount(t, a, model.Books, nil)

	a.Update(savedMsg{shelf: model.Books, err: context.DeadlineExceeded})
	if a.flash == "" {
		t.Fatalf("save failure did not set a status line")
	}
	if v := a.View(); !strings.Contains(v, "save failed") {
		t.Errorf("view missing save failure:\n%s", v)
	}

	a.Update(keyMsg("h"))
	if a.flash != "" {
		t.Errorf("status line not cleared on key press: %q", a.flash)
	}
}

func TestViewShowsLoadingSpinnerText(t *testing.T) {
	a, _ := newTestApp(t, stubFetcher{})
	a.Init()

	if v := a.View(); !strings.Contains(v, "Loading books") {
		t.Errorf("loading view missing spinner text:\n%s", v)
	}
}
