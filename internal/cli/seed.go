package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/pagepal/internal/model"
)

func newSeedCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <shelf|all>",
		Short: "Replace a shelf with items fetched from its public catalog",
		Long: `Fetches the configured catalog endpoint and overwrites the shelf
wholesale, discarding anything already stored. A failed fetch leaves
the shelf untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "all" {
				return seedAll(rt, cmd.Context())
			}
			shelf, err := model.ParseShelf(args[0])
			if err != nil {
				return err
			}
			n, err := seedShelf(rt, cmd.Context(), shelf)
			if err != nil {
				return err
			}
			rt.theme.OK(fmt.Sprintf("imported %d items into %s", n, shelf.Label()))
			return nil
		},
	}
}

func seedAll(rt *runtime, ctx context.Context) error {
	counts := make([]int, len(model.Shelves()))

	g, ctx := errgroup.WithContext(ctx)
	for i, shelf := range model.Shelves() {
		i, shelf := i, shelf
		g.Go(func() error {
			n, err := seedShelf(rt, ctx, shelf)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, shelf := range model.Shelves() {
		rt.theme.OK(fmt.Sprintf("imported %d items into %s", counts[i], shelf.Label()))
	}
	return nil
}

func seedShelf(rt *runtime, ctx context.Context, shelf model.Shelf) (int, error) {
	items, err := rt.importer().Fetch(ctx, shelf)
	if err != nil {
		return 0, err
	}
	st, err := rt.openStore()
	if err != nil {
		return 0, err
	}
	defer st.Close()

	if err := st.Save(ctx, shelf.Key(), items); err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}
	return len(items), nil
}

func newImportCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import shelf items from other sources",
	}
	cmd.AddCommand(newImportCalibreCmd(rt))
	return cmd
}

func newImportCalibreCmd(rt *runtime) *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "calibre",
		Short: "Replace the Books shelf from a calibre-web listing page",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := rt.importer().FetchCalibre(cmd.Context(), pageURL)
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), model.Books.Key(), items); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			rt.theme.OK(fmt.Sprintf("imported %d books", len(items)))
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "calibre-web page to scrape")
	cmd.MarkFlagRequired("url")
	return cmd
}
