package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols. Renderers take a Theme value rather
// than reading ambient globals, so the TUI can cycle themes at runtime.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style
	Border   lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
	StarFull     string
	StarEmpty    string
	SymOK        string
	SymFail      string
}

func Classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:    lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
		StarFull:     "★",
		StarEmpty:    "☆",
		SymOK:        "✔",
		SymFail:      "✖",
	}
}

func Neon() Theme {
	t := Classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	t.Border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("201")).
		Padding(0, 1)
	t.BoxChecked = "◼"
	t.BoxUnchecked = "◻"
	return t
}

func Mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:     "mono",
		Title:    plain,
		Accent:   plain,
		Success:  plain,
		Pending:  plain,
		Muted:    plain,
		Error:    plain,
		Selected: plain,
		Done:     plain,
		Help:     plain,
		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),
		BoxChecked:   "[x]",
		BoxUnchecked: "[ ]",
		StarFull:     "*",
		StarEmpty:    "-",
		SymOK:        "ok",
		SymFail:      "x",
	}
}

// Names lists the themes in cycle order.
func Names() []string { return []string{"classic", "neon", "mono"} }

// ByName resolves a theme name, defaulting to classic.
func ByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Neon()
	case "mono":
		return Mono()
	default:
		return Classic()
	}
}

// Next returns the following theme in the cycle. Bound to a key in the
// TUI as the stand-in for shake-to-change.
func (t Theme) Next() Theme {
	names := Names()
	for i, n := range names {
		if n == t.Name {
			return ByName(names[(i+1)%len(names)])
		}
	}
	return Classic()
}
