package ui

import (
	"fmt"
	"os"
	"strings"
)

// Checkbox renders the done marker for an item.
func (t Theme) Checkbox(done bool) string {
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// Stars renders a 1-5 rating as filled/empty stars.
func (t Theme) Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat(t.StarFull, rating) + strings.Repeat(t.StarEmpty, 5-rating)
}

// ProgressBar renders a completion bar for the shelf header.
func ProgressBar(done, total, width int) string {
	if total == 0 {
		total = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Truncate shortens s to at most max runes, appending "..." when it
// cuts. Byte slicing would split multibyte titles mid-rune.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Panel frames lines in the theme's border.
func (t Theme) Panel(lines []string) string {
	return t.Border.Render(strings.Join(lines, "\n"))
}

func (t Theme) OK(msg string) {
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

func (t Theme) Fail(msg string) {
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}
