package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/logger"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/variant"
)

// loadConfig reads configuration honouring the persistent --config and --db
// flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Path = p
	}
	return cfg, nil
}

// newLogger builds the file logger, falling back to a no-op logger so a bad
// log path never blocks a lesson.
func newLogger(cfg config.Config) *logger.Logger {
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return logger.Nop()
	}
	return log
}

// openReports opens the report database. A failure disables report history
// instead of aborting.
func openReports(cfg config.Config, log *logger.Logger) (*store.Store, store.ReportRepo) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Report history unavailable:", err)
		log.Warn("open store", "path", cfg.Database.Path, "error", err)
		return nil, nil
	}
	return st, st.ReportRepo()
}

// loadCatalog reads the configured lesson directory, or offers the master
// template alone when none is configured.
func loadCatalog(ctx context.Context, cfg config.Config, b *variant.Builder) (*catalog.Catalog, error) {
	if cfg.Lessons.Dir == "" {
		return catalog.New(b.Template())
	}
	return catalog.LoadDir(ctx, cfg.Lessons.Dir)
}
