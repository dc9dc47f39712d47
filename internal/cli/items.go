package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/pagepal/internal/model"
	"github.com/idilsaglam/pagepal/internal/ui"
)

func progressLine(done, total int) string {
	return ui.ProgressBar(done, total, 28)
}

func newLsCmd(rt *runtime) *cobra.Command {
	var hideDone bool

	cmd := &cobra.Command{
		Use:   "ls <shelf>",
		Short: "List the items on a shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shelf, err := model.ParseShelf(args[0])
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			items, err := st.Load(cmd.Context(), shelf.Key())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}

			t := rt.theme
			done, pending := model.Stats(items)
			lines := []string{
				fmt.Sprintf("%s  %s %d  %s %d  %s %d",
					t.Title.Render(shelf.Label()),
					t.Success.Render(t.SymOK), done,
					t.Pending.Render("•"), pending,
					t.Accent.Render("Total"), len(items),
				),
				t.Muted.Render(progressLine(done, len(items))),
				"",
			}
			lines = append(lines, itemLines(rt, model.Filter(items, hideDone))...)
			lines = append(lines, "", t.Help.Render("Tip: add with `pagepal add "+string(shelf)+" \"Dune\" --rating 4`"))
			fmt.Println(t.Panel(lines))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hideDone, "hide-done", false, "hide items already marked done")
	return cmd
}

func newAddCmd(rt *runtime) *cobra.Command {
	var rating string

	cmd := &cobra.Command{
		Use:   "add <shelf> <title...>",
		Short: "Add one item to a shelf",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shelf, err := model.ParseShelf(args[0])
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			items, err := st.Load(cmd.Context(), shelf.Key())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			items, err = model.Add(items, strings.Join(args[1:], " "), rating)
			if err != nil {
				return err
			}
			if err := st.Save(cmd.Context(), shelf.Key(), items); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			rt.theme.OK("added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "rating from 1 to 5")
	cmd.MarkFlagRequired("rating")
	return cmd
}

func newDoneCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "done <shelf> <index>",
		Short: "Toggle done for the item at a 1-based index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAt(rt, cmd, args, func(items []model.Item, idx int) []model.Item {
				return model.ToggleDone(items, idx)
			}, "toggled")
		},
	}
}

func newRmCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <shelf> <index>",
		Short: "Remove the item at a 1-based index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAt(rt, cmd, args, func(items []model.Item, idx int) []model.Item {
				out := make([]model.Item, 0, len(items)-1)
				out = append(out, items[:idx]...)
				return append(out, items[idx+1:]...)
			}, "removed")
		},
	}
}

func mutateAt(rt *runtime, cmd *cobra.Command, args []string, fn func([]model.Item, int) []model.Item, okMsg string) error {
	shelf, err := model.ParseShelf(args[0])
	if err != nil {
		return err
	}
	userIndex, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("not a number: %s", args[1])
	}

	st, err := rt.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.Load(cmd.Context(), shelf.Key())
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if userIndex < 1 || userIndex > len(items) {
		return fmt.Errorf("index out of range: have %d, got %d (run `pagepal ls %s`)", len(items), userIndex, shelf)
	}

	items = fn(items, userIndex-1)
	if err := st.Save(cmd.Context(), shelf.Key(), items); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	rt.theme.OK(okMsg)
	return nil
}

func itemLines(rt *runtime, items []model.Item) []string {
	t := rt.theme
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		title := ui.Truncate(it.Title, 60)
		if it.Done {
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Checkbox(it.Done),
			title,
			t.Pending.Render(t.Stars(it.Rating)),
		))
	}
	return out
}
