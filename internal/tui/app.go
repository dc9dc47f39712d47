package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/pagepal/internal/config"
	"github.com/idilsaglam/pagepal/internal/model"
	"github.com/idilsaglam/pagepal/internal/store"
	"github.com/idilsaglam/pagepal/internal/ui"
)

// Fetcher is the seed source a shelf screen pulls from on mount.
type Fetcher interface {
	Fetch(ctx context.Context, shelf model.Shelf) ([]model.Item, error)
}

type inputStage int

const (
	stageNone inputStage = iota
	stageTitle
	stageRating
)

// App is the Bubble Tea model for the whole program: two shelf screens
// behind tabs, an inline add form, and a cycling theme.
type App struct {
	st      store.Store
	fetcher Fetcher
	watcher *store.Watcher
	log     *zap.Logger

	theme      ui.Theme
	minLoading time.Duration

	pages  [2]*page
	active int

	spin spinner.Model
	ti   textinput.Model

	stage        inputStage
	pendingTitle string
	formErr      string

	// One-time notice passed from the books screen to the movies
	// screen on first switch.
	notice      string
	noticeShown bool

	flash string // last transient status (e.g. failed save)

	width  int
	height int
}

func New(cfg *config.Config, st store.Store, fetcher Fetcher, watcher *store.Watcher, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		st:         st,
		fetcher:    fetcher,
		watcher:    watcher,
		log:        log,
		theme:      ui.ByName(cfg.Theme),
		minLoading: cfg.Seed.MinLoadingDuration(),
	}

	d := itemDelegate{app: a}
	a.pages[0] = newPage(model.Books, d)
	a.pages[1] = newPage(model.Movies, d)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = a.theme.Accent
	a.spin = sp

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	a.ti = ti

	return a
}

// Run starts the program in the alternate screen.
func Run(a *App) error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.mountPage(0), a.waitForChange())
}

// mountPage puts a shelf into its loading phase: baseline load from
// the store, the one-shot seed fetch, and the minimum spinner timer.
func (a *App) mountPage(i int) tea.Cmd {
	p := a.pages[i]
	p.phase = pageLoading
	p.gen++
	p.fetchDone = false
	p.delayDone = false
	p.loadErr = ""
	return tea.Batch(
		a.loadCmd(p.shelf),
		a.seedCmd(p.shelf, p.gen),
		a.delayCmd(p.shelf, p.gen),
		a.spin.Tick,
	)
}

func (a *App) loadCmd(shelf model.Shelf) tea.Cmd {
	return func() tea.Msg {
		items, err := a.st.Load(context.Background(), shelf.Key())
		return loadedMsg{shelf: shelf, items: items, err: err}
	}
}

func (a *App) seedCmd(shelf model.Shelf, gen int) tea.Cmd {
	return func() tea.Msg {
		items, err := a.fetcher.Fetch(context.Background(), shelf)
		return seedResultMsg{shelf: shelf, gen: gen, items: items, err: err}
	}
}

func (a *App) delayCmd(shelf model.Shelf, gen int) tea.Cmd {
	return tea.Tick(a.minLoading, func(time.Time) tea.Msg {
		return delayDoneMsg{shelf: shelf, gen: gen}
	})
}

// saveCmd schedules the durable write for an in-memory update that
// already happened. A crash before it runs loses the update silently.
func (a *App) saveCmd(shelf model.Shelf, items []model.Item) tea.Cmd {
	snapshot := make([]model.Item, len(items))
	copy(snapshot, items)
	return func() tea.Msg {
		err := a.st.Save(context.Background(), shelf.Key(), snapshot)
		return savedMsg{shelf: shelf, err: err}
	}
}

func (a *App) waitForChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-a.watcher.Events
		if !ok {
			return nil
		}
		return fileChangedMsg{key: key}
	}
}

func (a *App) pageFor(shelf model.Shelf) *page {
	for _, p := range a.pages {
		if p.shelf == shelf {
			return p
		}
	}
	return a.pages[0]
}

func (a *App) anyLoading() bool {
	for _, p := range a.pages {
		if p.phase == pageLoading {
			return true
		}
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		for _, p := range a.pages {
			p.list.SetSize(msg.Width-4, msg.Height-10)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.anyLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case loadedMsg:
		p := a.pageFor(msg.shelf)
		if msg.err != nil {
			a.log.Warn("load failed", zap.String("shelf", string(msg.shelf)), zap.Error(msg.err))
			return a, nil
		}
		if p.phase == pageLoading && p.fetchDone && p.loadErr == "" {
			// The seed result already replaced the list; the baseline
			// read lost the race and must not clobber it. A failed
			// fetch replaced nothing, so the baseline still applies.
			return a, nil
		}
		p.items = msg.items
		if p.phase == pageReady || p.phase == pageError {
			p.rebuild()
		}
		return a, nil

	case seedResultMsg:
		p := a.pageFor(msg.shelf)
		if msg.gen != p.gen {
			// Completion from a previous mount; drop it.
			return a, nil
		}
		p.fetchDone = true
		var cmd tea.Cmd
		if msg.err != nil {
			a.log.Warn("seed fetch failed", zap.String("shelf", string(msg.shelf)), zap.Error(msg.err))
			p.loadErr = "Could not load " + strings.ToLower(p.shelf.Label()) + " — showing what you have."
		} else {
			// Wholesale overwrite, discarding the stored list.
			p.items = msg.items
			cmd = a.saveCmd(p.shelf, p.items)
		}
		a.maybeFinishLoading(p)
		return a, cmd

	case delayDoneMsg:
		p := a.pageFor(msg.shelf)
		if msg.gen != p.gen {
			return a, nil
		}
		p.delayDone = true
		a.maybeFinishLoading(p)
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.log.Warn("save failed", zap.String("shelf", string(msg.shelf)), zap.Error(msg.err))
			a.flash = "save failed: " + msg.err.Error()
		}
		return a, nil

	case fileChangedMsg:
		var cmd tea.Cmd
		for _, p := range a.pages {
			if p.shelf.Key() == msg.key && (p.phase == pageReady || p.phase == pageError) {
				cmd = a.loadCmd(p.shelf)
			}
		}
		return a, tea.Batch(cmd, a.waitForChange())

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateActiveList(msg)
}

// maybeFinishLoading moves a shelf out of the loading phase once the
// fetch completed and the minimum spinner time elapsed.
func (a *App) maybeFinishLoading(p *page) {
	if !p.fetchDone || !p.delayDone {
		return
	}
	if p.loadErr != "" {
		p.phase = pageError
	} else {
		p.phase = pageReady
	}
	p.rebuild()
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.flash = ""

	if a.stage != stageNone {
		return a.handleFormKey(msg)
	}

	p := a.pages[a.active]

	// Let the list's own fuzzy filter consume keys while active.
	if p.list.FilterState() == list.Filtering {
		return a.updateActiveList(msg)
	}

	hadNotice := a.notice != ""

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab", "right", "left":
		a.switchShelf()
		return a, a.mountIfIdle()

	case " ":
		if it, ok := p.list.SelectedItem().(shelfItem); ok {
			p.items = model.ToggleDone(p.items, it.idx)
			p.rebuild()
			a.clearNotice(hadNotice)
			return a, a.saveCmd(p.shelf, p.items)
		}

	case "a":
		if p.phase == pageReady || p.phase == pageError {
			a.stage = stageTitle
			a.formErr = ""
			a.pendingTitle = ""
			a.ti.SetValue("")
			a.ti.Placeholder = "Title..."
			a.ti.Focus()
		}
		a.clearNotice(hadNotice)
		return a, nil

	case "h":
		p.hideDone = !p.hideDone
		p.rebuild()
		a.clearNotice(hadNotice)
		return a, nil

	case "t":
		a.theme = a.theme.Next()
		a.spin.Style = a.theme.Accent
		return a, nil
	}

	a.clearNotice(hadNotice)
	return a.updateActiveList(msg)
}

func (a *App) clearNotice(hadNotice bool) {
	if hadNotice {
		a.notice = ""
	}
}

func (a *App) switchShelf() {
	a.notice = ""
	a.active = (a.active + 1) % len(a.pages)
	if a.active == 1 && !a.noticeShown {
		done, _ := model.Stats(a.pages[0].items)
		a.notice = fmt.Sprintf("You have read %d books this year!", done)
		a.noticeShown = true
	}
}

func (a *App) mountIfIdle() tea.Cmd {
	if a.pages[a.active].phase == pageIdle {
		return a.mountPage(a.active)
	}
	return nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.pages[a.active]

	switch msg.String() {
	case "esc":
		a.stage = stageNone
		a.formErr = ""
		a.ti.Blur()
		return a, nil

	case "enter":
		switch a.stage {
		case stageTitle:
			title := strings.TrimSpace(a.ti.Value())
			if title == "" {
				a.formErr = "Title cannot be empty"
				return a, nil
			}
			a.pendingTitle = title
			a.formErr = ""
			a.stage = stageRating
			a.ti.SetValue("")
			a.ti.Placeholder = "Rating (1-5)"
			return a, nil

		case stageRating:
			items, err := model.Add(p.items, a.pendingTitle, a.ti.Value())
			if err != nil {
				a.formErr = err.Error()
				return a, nil
			}
			p.items = items
			p.rebuild()
			a.stage = stageNone
			a.formErr = ""
			a.ti.SetValue("")
			a.ti.Blur()
			return a, a.saveCmd(p.shelf, p.items)
		}
	}

	var cmd tea.Cmd
	a.ti, cmd = a.ti.Update(msg)
	return a, cmd
}

func (a *App) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := a.pages[a.active]
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	t := a.theme
	p := a.pages[a.active]

	var b strings.Builder

	// Shelf tabs
	var tabs []string
	for i, pg := range a.pages {
		label := pg.shelf.Label()
		if i == a.active {
			tabs = append(tabs, t.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, t.Muted.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch p.phase {
	case pageLoading:
		b.WriteString(fmt.Sprintf("%s Loading %s...\n", a.spin.View(), strings.ToLower(p.shelf.Label())))
	case pageIdle:
		b.WriteString(t.Muted.Render("press tab to open this shelf") + "\n")
	default:
		b.WriteString(p.header(t, a.width))
		b.WriteString("\n\n")
		b.WriteString(p.list.View())
		if p.phase == pageError && p.loadErr != "" {
			b.WriteString("\n" + t.Error.Render(p.loadErr))
		}
	}

	if a.notice != "" {
		b.WriteString("\n" + t.Accent.Render(a.notice))
	}
	if a.flash != "" {
		b.WriteString("\n" + t.Error.Render(a.flash))
	}

	if a.stage != stageNone {
		title := "Add new item"
		if a.stage == stageRating {
			title = fmt.Sprintf("Rate %q", a.pendingTitle)
		}
		if a.formErr != "" {
			title += " — " + t.Error.Render(a.formErr)
		}
		b.WriteString("\n" + t.Border.Render(title+"\n"+a.ti.View()))
	}

	hide := "hide done"
	if p.hideDone {
		hide = "show done"
	}
	help := fmt.Sprintf("tab shelves • space done • a add • h %s • t theme • q quit", hide)
	b.WriteString("\n" + t.Help.Render(help))

	return t.Panel([]string{b.String()})
}
