package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/pagepal/internal/config"
	"github.com/idilsaglam/pagepal/internal/seed"
	"github.com/idilsaglam/pagepal/internal/store"
	"github.com/idilsaglam/pagepal/internal/tui"
	"github.com/idilsaglam/pagepal/internal/ui"
)

// runtime carries what every subcommand needs once the persistent
// flags are resolved.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	theme  ui.Theme

	configPath string
	dataDir    string
	backend    string
	themeName  string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "pagepal",
		Short: "pagepal - track the books you read and the movies you watch",
		Long: `pagepal keeps two shelves, Books and Movies, stored locally.

Run without arguments to open the interactive shelves. Each shelf is
seeded once from a public catalog when it opens; items you add live in
the same list and can be marked done or hidden from view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			if rt.dataDir != "" {
				cfg.DataDir = rt.dataDir
			}
			if rt.backend != "" {
				cfg.Backend = rt.backend
			}
			if rt.themeName != "" {
				cfg.Theme = rt.themeName
			}
			rt.cfg = cfg
			rt.theme = ui.ByName(cfg.Theme)

			// A live logger would write over the TUI, so diagnostics
			// are opt-in.
			if rt.verbose {
				zc := zap.NewProductionConfig()
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				rt.logger, err = zc.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
			} else {
				rt.logger = zap.NewNop()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShelves(rt)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&rt.dataDir, "data-dir", "", "override the data directory")
	pf.StringVar(&rt.backend, "backend", "", "store backend (json or sqlite)")
	pf.StringVar(&rt.themeName, "theme", "", "theme (classic, neon, mono)")
	pf.BoolVarP(&rt.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLsCmd(rt),
		newAddCmd(rt),
		newDoneCmd(rt),
		newRmCmd(rt),
		newSeedCmd(rt),
		newImportCmd(rt),
		newReportCmd(rt),
	)
	return root
}

func (rt *runtime) openStore() (store.Store, error) {
	return store.Open(rt.cfg.Backend, rt.cfg.DataDir, rt.logger)
}

func (rt *runtime) importer() *seed.Importer {
	return seed.New(rt.cfg.Seed, rt.logger)
}

// runShelves opens the interactive TUI.
func runShelves(rt *runtime) error {
	st, err := rt.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var watcher *store.Watcher
	if rt.cfg.Backend == "" || rt.cfg.Backend == store.BackendJSON {
		// Best effort; the TUI works without external-change reloads.
		_ = os.MkdirAll(rt.cfg.DataDir, 0o755)
		if w, err := store.NewWatcher(rt.cfg.DataDir, rt.logger); err == nil {
			watcher = w
			defer w.Close()
		} else {
			rt.logger.Warn("data dir watcher unavailable", zap.Error(err))
		}
	}

	app := tui.New(rt.cfg, st, rt.importer(), watcher, rt.logger)
	return tui.Run(app)
}
