package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sproutlabs/sprout/internal/config"
	"github.com/sproutlabs/sprout/internal/database"
	"github.com/sproutlabs/sprout/internal/database/repository"
	"github.com/sproutlabs/sprout/internal/logging"
	"github.com/sproutlabs/sprout/internal/tour"
	"github.com/sproutlabs/sprout/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repos := tui.Repos{
		Kids:   repository.NewKidRepo(db),
		Events: repository.NewEventRepo(db),
		Goals:  repository.NewGoalRepo(db),
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn("falling back to local timezone", zap.Error(err))
		loc = time.Local
	}

	// The notifier and change hook need the running program, which needs the
	// model, which needs the manager. Close over a late-bound pointer.
	var program *tea.Program
	send := func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	}

	catalog := tour.DefaultCatalog()
	targets := tour.NewRegistry()
	mgr := tour.NewManager(catalog, repository.NewTourFlagRepo(db),
		tour.WithLogger(logger),
		tour.WithDelay(time.Duration(cfg.Tour.StartDelayMS)*time.Millisecond),
		tour.WithNotifier(tour.NotifierFunc(func(k tour.Kind) {
			send(tui.TourFeedbackMsg{Kind: k})
		})),
		tour.WithOnChange(func() {
			send(tui.TourChangedMsg{})
		}),
	)

	app := tui.New(ctx, cfg, repos, mgr, targets, catalog, logger, loc)
	program = tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("sprout starting", zap.String("db", cfg.Database.Path))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sprout: %v\n", err)
		os.Exit(1)
	}
}
