package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/slot"
	"github.com/abhisek/lexiz/internal/speech"
	"github.com/abhisek/lexiz/internal/variant"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
// With files, the catalog holds exactly those lessons and the first one
// opens straight away.
func runApp(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	builder, err := variant.Default()
	if err != nil {
		return fmt.Errorf("load lesson template: %w", err)
	}

	var cat *catalog.Catalog
	if len(files) > 0 {
		cat, err = catalog.LoadFiles(ctx, files)
	} else {
		cat, err = loadCatalog(ctx, cfg, builder)
	}
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	st, reports := openReports(cfg, log)
	if st != nil {
		defer st.Close()
	}

	opts := app.Options{
		Catalog:   cat,
		Builder:   builder,
		Slot:      slot.New(),
		Reports:   reports,
		ExportDir: cfg.Export.Dir,
		Speaker:   speech.FromConfig(cfg.Speech.Command, log),
		Logger:    log,
		Runner: runner.Config{
			IdleDelay:      cfg.Hint.IdleDelay,
			MisTapsToForce: cfg.Hint.MisTapsToForce,
		},
	}
	if len(files) > 0 && cat.Len() > 0 {
		opts.Initial = cat.Lessons[0]
	}

	log.Info("starting", "lessons", cat.Len(), "export_dir", cfg.Export.Dir)
	return app.Run(opts)
}
