package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/pagepal/internal/model"
)

func newReportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render a summary of both shelves",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var md strings.Builder
			md.WriteString("# PagePal report\n")
			for _, shelf := range model.Shelves() {
				items, err := st.Load(cmd.Context(), shelf.Key())
				if err != nil {
					return fmt.Errorf("load %s: %w", shelf, err)
				}
				md.WriteString(reportSection(shelf, items))
			}

			fmt.Println(renderMarkdown(md.String()))
			return nil
		},
	}
}

func reportSection(shelf model.Shelf, items []model.Item) string {
	done, pending := model.Stats(items)

	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n\n", shelf.Label())
	fmt.Fprintf(&b, "%d done, %d pending, %d total.\n\n", done, pending, len(items))
	if len(items) == 0 {
		b.WriteString("_Nothing here yet._\n")
		return b.String()
	}

	b.WriteString("| # | Title | Rating | Done |\n")
	b.WriteString("|---|-------|--------|------|\n")
	for i, it := range items {
		mark := " "
		if it.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "| %d | %s | %d/5 | %s |\n", i+1, it.Title, it.Rating, mark)
	}
	return b.String()
}

// renderMarkdown runs the report through glamour, falling back to the
// raw markdown when the renderer is unavailable. A fixed style avoids
// terminal capability queries that can block on some terminals.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
